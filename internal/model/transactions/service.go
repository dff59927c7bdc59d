package transactions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const dependencyName = "storage"

type transactionsStorage interface {
	ListTransactions(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error)
	CountCreatedTransactions(ctx context.Context, userID string, from, to time.Time) (int, error)
	SaveTransaction(ctx context.Context, rec transaction.Transaction, monthLimit int) error
}

type gate interface {
	Caller(ctx context.Context) (user.Profile, error)
}

type config interface {
	FreeMonthlyTransactions() int
}

// Page is what the transactions screen needs.
type Page struct {
	Transactions      []transaction.Transaction `json:"transactions"`
	CanAddTransaction bool                      `json:"canAddTransaction"`
}

type Input struct {
	Name          string
	Type          string
	Category      string
	PaymentMethod string
	Amount        string
	Date          time.Time
}

type Service struct {
	gate      gate
	storage   transactionsStorage
	freeLimit int
}

func NewService(config config, gate gate, storage transactionsStorage) *Service {
	return &Service{
		gate:      gate,
		storage:   storage,
		freeLimit: config.FreeMonthlyTransactions(),
	}
}

// Page lists the caller's transactions newest first. limit <= 0 means all.
func (s *Service) Page(ctx context.Context, limit int) (Page, error) {
	profile, err := s.gate.Caller(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "transactions page")
	}

	txs, err := s.storage.ListTransactions(ctx, profile.ID, limit)
	if err != nil {
		return Page{}, customerr.Dependency(dependencyName, errors.Wrap(err, "transactions page"))
	}

	canAdd, err := s.canAdd(ctx, profile)
	if err != nil {
		return Page{}, err
	}
	return Page{Transactions: txs, CanAddTransaction: canAdd}, nil
}

// canAdd: premium is unlimited, free users get freeLimit transactions per calendar month.
func (s *Service) canAdd(ctx context.Context, profile user.Profile) (bool, error) {
	if profile.IsPremium() {
		return true, nil
	}
	from := now.BeginningOfMonth()
	count, err := s.storage.CountCreatedTransactions(ctx, profile.ID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return false, customerr.Dependency(dependencyName, errors.Wrap(err, "count transactions"))
	}
	return count < s.freeLimit, nil
}

func (s *Service) Add(ctx context.Context, in Input) (transaction.Transaction, error) {
	profile, err := s.gate.Caller(ctx)
	if err != nil {
		return transaction.Transaction{}, errors.Wrap(err, "add transaction")
	}

	rec, err := build(profile.ID, in)
	if err != nil {
		return transaction.Transaction{}, err
	}

	limit := s.freeLimit
	if profile.IsPremium() {
		limit = 0
	}
	err = s.storage.SaveTransaction(ctx, rec, limit)
	if errors.Is(err, customerr.ErrLimitExceeded) {
		logger.Info("transaction limit reached", zap.String("userID", profile.ID))
		return transaction.Transaction{}, err
	}
	if err != nil {
		return transaction.Transaction{}, customerr.Dependency(dependencyName, errors.Wrap(err, "add transaction"))
	}
	return rec, nil
}

func build(userID string, in Input) (transaction.Transaction, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "name", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.IsPositive() {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	typ, ok := transaction.ParseType(in.Type)
	if !ok {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "type", Reason: "is unknown"}
	}
	category, ok := transaction.ParseCategory(in.Category)
	if !ok {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "category", Reason: "is unknown"}
	}
	method, ok := transaction.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "paymentMethod", Reason: "is unknown"}
	}
	if in.Date.IsZero() {
		return transaction.Transaction{}, &customerr.ValidationError{Field: "date", Reason: "is required"}
	}

	return transaction.Transaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Type:          typ,
		Category:      category,
		PaymentMethod: method,
		Amount:        amount.Round(2),
		Date:          transaction.DateOf(in.Date),
		CreatedAt:     time.Now(),
	}, nil
}
