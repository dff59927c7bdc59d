package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"max.ks1230/finances-ai/internal/entity/chat"
	"max.ks1230/finances-ai/internal/entity/transaction"
)

func tx(year int, month time.Month, day int, amount string, typ, category string) transaction.Transaction {
	return transaction.Transaction{
		Date:     time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString(amount),
		Type:     transaction.Type(typ),
		Category: transaction.Category(category),
	}
}

func Test_FormatTransaction_ShouldUseLocaleDateAndPlainAmount(t *testing.T) {
	got := FormatTransaction(tx(2024, time.March, 5, "150.50", "expense", "food"))

	assert.Equal(t, "05/03/2024-R$150.5-expense-food", got)
}

func Test_FormatTransaction_EdgeAmountsAndLabels(t *testing.T) {
	assert.Equal(t, "31/12/2024-R$0-DEPOSIT-SALARY", FormatTransaction(tx(2024, time.December, 31, "0.00", "DEPOSIT", "SALARY")))
	assert.Equal(t, "01/01/2025-R$-12.3-EXPENSE-OTHER", FormatTransaction(tx(2025, time.January, 1, "-12.30", "EXPENSE", "OTHER")))
	assert.Equal(t, "29/02/2024-R$1000000-INVESTMENT-a;b-c", FormatTransaction(tx(2024, time.February, 29, "1000000", "INVESTMENT", "a;b-c")))
}

func Test_FormatPrompt_EmptyShouldOnlyHavePreamble(t *testing.T) {
	got := FormatPrompt(nil)

	assert.Equal(t, promptPreamble+"\n", got)
	assert.False(t, strings.Contains(got, ";"))
}

func Test_FormatPrompt_ShouldJoinWithSemicolons(t *testing.T) {
	got := FormatPrompt([]transaction.Transaction{
		tx(2024, time.March, 5, "150.50", "EXPENSE", "FOOD"),
		tx(2024, time.March, 10, "5000", "DEPOSIT", "SALARY"),
	})

	assert.Equal(t, promptPreamble+"\n05/03/2024-R$150.5-EXPENSE-FOOD;10/03/2024-R$5000-DEPOSIT-SALARY", got)
	assert.False(t, strings.HasSuffix(got, ";"))
}

func Test_Messages_ShouldPutPersonaFirst(t *testing.T) {
	msgs := Messages("prompt")

	assert.Equal(t, []chat.Message{
		{Role: chat.RoleSystem, Content: advisorInstruction},
		{Role: chat.RoleUser, Content: "prompt"},
	}, msgs)
}
