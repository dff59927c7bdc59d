package messages

import (
	"fmt"
	"strings"
	"time"

	"max.ks1230/finances-ai/internal/entity/transaction"
)

const commandParts = 2

func location() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	split := strings.SplitN(text, " ", commandParts)
	if len(split) == commandParts {
		return split[0], strings.TrimSpace(split[1])
	}
	return text, ""
}

func formatTransactions(txs []transaction.Transaction) string {
	res := make([]string, 0, len(txs))
	for _, tx := range txs {
		res = append(res, fmt.Sprintf("%s %s %s R$%s %s",
			tx.Date.Format(dateLayout), tx.Type, tx.Category, tx.Amount.StringFixed(2), tx.Name))
	}
	return strings.Join(res, "\n")
}
