package reports

import (
	"fmt"
	"strings"

	"max.ks1230/finances-ai/internal/entity/chat"
	"max.ks1230/finances-ai/internal/entity/transaction"
)

const (
	dateLayout         = "02/01/2006"
	currencySymbol     = "R$"
	transactionsJoiner = ";"
)

const promptPreamble = "Gere um relatório sobre as minhas finanças, com dicas e orientações para melhorar a minha situação financeira. " +
	"As transações estão divididas por ponto e vírgula. " +
	"A estrutura de cada uma é {DATA}-{VALOR}-{TIPO}-{CATEGORIA}. São elas:"

const advisorInstruction = "Você é um especialista em gestão de finanças pessoais. " +
	"Você ajuda as pessoas a organizarem suas finanças e a tomarem decisões financeiras melhores."

// FormatTransaction renders one record as {dd/mm/yyyy}-R${amount}-{type}-{category}.
func FormatTransaction(tx transaction.Transaction) string {
	return fmt.Sprintf("%s-%s%s-%s-%s",
		tx.Date.Format(dateLayout),
		currencySymbol,
		tx.Amount.String(),
		tx.Type,
		tx.Category,
	)
}

// FormatPrompt builds the user message: the preamble, a newline and every
// transaction joined by semicolons.
func FormatPrompt(txs []transaction.Transaction) string {
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, FormatTransaction(tx))
	}
	return promptPreamble + "\n" + strings.Join(lines, transactionsJoiner)
}

func Messages(prompt string) []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: advisorInstruction},
		{Role: chat.RoleUser, Content: prompt},
	}
}
