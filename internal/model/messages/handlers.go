package messages

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/clients/auth"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/transactions"
)

const (
	dateLayout         = "02.01.2006"
	transactionsOnPage = 10
	addMinArgs         = 3
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am FinancesAI bot 🤖\n" +
		"Link your account with /start <session token>, then use\n" +
		"/transactions, /add <type> <category> <amount> [dd.mm.yyyy] [name]\n" +
		"and /aireport <MM> [YYYY]"
	loveToTalkMessage     = "I would love to talk about it more!"
	linkedMessage         = "Your account is linked!"
	okMessage             = "Gotcha!"
	noTransactionsMessage = "You have no transactions yet"
	limitReachedMessage   = "Free plan limit for this month reached"
	reportQueuedMessage   = "Your report is being generated, it will arrive shortly"
	incorrectUsageMessage = "That is an incorrect command usage"
	invalidSessionMessage = "This session token is not valid, sign in again to get a new one"
)

const (
	startCommand        = "/start"
	transactionsCommand = "/transactions"
	addCommand          = "/add"
	aiReportCommand     = "/aireport"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (userID string, ok bool, err error)
	AuthenticateTelegram(ctx context.Context, telegramID int64) (userID string, ok bool, err error)
	LinkTelegram(ctx context.Context, userID string, telegramID int64) error
}

type transactionsService interface {
	Page(ctx context.Context, limit int) (transactions.Page, error)
	Add(ctx context.Context, in transactions.Input) (transaction.Transaction, error)
}

type reportRequester interface {
	RequestReport(ctx context.Context, job reports.Job) error
}

type handler func(ctx context.Context, arg string, telegramID int64) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap  handlerMap
	auth         authenticator
	transactions transactionsService
	requester    reportRequester
	now          func() time.Time
}

func newHandler(auth authenticator, txs transactionsService, requester reportRequester) *HandlerService {
	res := &HandlerService{
		auth:         auth,
		transactions: txs,
		requester:    requester,
		now:          time.Now,
	}
	res.handlersMap = newMap(res)
	return res
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[transactionsCommand] = s.signedIn(s.handleTransactions)
	m[addCommand] = s.signedIn(s.handleAdd)
	m[aiReportCommand] = s.signedIn(s.handleAIReport)

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, telegramID int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, telegramID)
	}
	return dontUnderstandMessage, nil
}

// signedIn resolves the linked account and runs next as that caller.
func (s *HandlerService) signedIn(next handler) handler {
	return func(ctx context.Context, arg string, telegramID int64) (string, error) {
		userID, ok, err := s.auth.AuthenticateTelegram(ctx, telegramID)
		if err != nil {
			return "", errors.Wrap(err, "authenticate")
		}
		if !ok {
			return "", customerr.ErrUnauthenticated
		}
		return next(auth.WithCaller(ctx, userID), arg, telegramID)
	}
}

func (s *HandlerService) handleStart(ctx context.Context, token string, telegramID int64) (string, error) {
	if token == "" {
		return helloMessage, nil
	}

	userID, ok, err := s.auth.Authenticate(ctx, token)
	if err != nil {
		return "", errors.Wrap(err, "handle start")
	}
	if !ok {
		return invalidSessionMessage, nil
	}
	if err = s.auth.LinkTelegram(ctx, userID, telegramID); err != nil {
		return "", customerr.Dependency("identity", errors.Wrap(err, "handle start"))
	}
	logger.Info("telegram linked", zap.String("userID", userID), zap.Int64("telegramID", telegramID))
	return linkedMessage, nil
}

func (s *HandlerService) handleTransactions(ctx context.Context, _ string, _ int64) (string, error) {
	page, err := s.transactions.Page(ctx, transactionsOnPage)
	if err != nil {
		return "", errors.Wrap(err, "handle transactions")
	}
	if len(page.Transactions) == 0 {
		return noTransactionsMessage, nil
	}

	res := formatTransactions(page.Transactions)
	if !page.CanAddTransaction {
		res += "\n\n" + limitReachedMessage
	}
	return res, nil
}

func (s *HandlerService) handleAdd(ctx context.Context, arg string, _ int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) < addMinArgs {
		return incorrectUsageMessage, nil
	}

	in := transactions.Input{
		Type:          args[0],
		Category:      args[1],
		Amount:        strings.ReplaceAll(args[2], ",", "."),
		PaymentMethod: string(transaction.OtherMethod),
		Name:          args[1],
		Date:          s.now().In(location()),
	}
	rest := args[addMinArgs:]
	if len(rest) > 0 {
		if date, err := time.ParseInLocation(dateLayout, rest[0], location()); err == nil {
			in.Date = date
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		in.Name = strings.Join(rest, " ")
	}

	if _, err := s.transactions.Add(ctx, in); err != nil {
		return "", errors.Wrap(err, "handle add")
	}
	return okMessage, nil
}

func (s *HandlerService) handleAIReport(ctx context.Context, arg string, telegramID int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) == 0 || len(args) > 2 {
		return incorrectUsageMessage, nil
	}
	if _, err := reports.ParseMonth(args[0]); err != nil {
		return "", err
	}

	year := s.now().In(location()).Year()
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return "", &customerr.ValidationError{Field: "year", Reason: "must be a number"}
		}
		year = parsed
	}
	if err := reports.ValidateYear(year); err != nil {
		return "", err
	}

	userID, _ := auth.CallerFromContext(ctx)
	err := s.requester.RequestReport(ctx, reports.Job{
		UserID: userID,
		ChatID: telegramID,
		Month:  args[0],
		Year:   year,
	})
	if err != nil {
		return "", customerr.Dependency("queue", errors.Wrap(err, "handle ai report"))
	}
	return reportQueuedMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ int64) (string, error) {
	return loveToTalkMessage, nil
}
