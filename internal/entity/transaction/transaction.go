package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Deposit    Type = "DEPOSIT"
	Expense    Type = "EXPENSE"
	Investment Type = "INVESTMENT"
)

var Types = []Type{Deposit, Expense, Investment}

type Category string

const (
	Housing        Category = "HOUSING"
	Transportation Category = "TRANSPORTATION"
	Food           Category = "FOOD"
	Entertainment  Category = "ENTERTAINMENT"
	Health         Category = "HEALTH"
	Utility        Category = "UTILITY"
	Salary         Category = "SALARY"
	Education      Category = "EDUCATION"
	Other          Category = "OTHER"
)

var Categories = []Category{
	Housing, Transportation, Food, Entertainment, Health, Utility, Salary, Education, Other,
}

type PaymentMethod string

const (
	CreditCard   PaymentMethod = "CREDIT_CARD"
	DebitCard    PaymentMethod = "DEBIT_CARD"
	BankTransfer PaymentMethod = "BANK_TRANSFER"
	BankSlip     PaymentMethod = "BANK_SLIP"
	Cash         PaymentMethod = "CASH"
	Pix          PaymentMethod = "PIX"
	OtherMethod  PaymentMethod = "OTHER"
)

var PaymentMethods = []PaymentMethod{CreditCard, DebitCard, BankTransfer, BankSlip, Cash, Pix, OtherMethod}

// Transaction is owned by UserID. Date is a calendar date stored at UTC midnight.
type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	Type          Type            `json:"type"`
	Category      Category        `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Types {
		if t == known {
			return t, true
		}
	}
	return "", false
}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
