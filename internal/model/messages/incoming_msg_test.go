package messages

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/clients/auth"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/model/customerr"
	"max.ks1230/finances-ai/internal/model/messages/mock"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/transactions"
)

const chatID = int64(123)

type deps struct {
	sender    *mock.MessageSenderMock
	auth      *mock.AuthenticatorMock
	txs       *mock.TransactionsServiceMock
	requester *mock.ReportRequesterMock
}

func newDeps() deps {
	return deps{
		sender:    &mock.MessageSenderMock{},
		auth:      &mock.AuthenticatorMock{},
		txs:       &mock.TransactionsServiceMock{},
		requester: &mock.ReportRequesterMock{},
	}
}

func (d deps) service() *Service {
	return NewService(d.sender, d.auth, d.txs, d.requester)
}

func (d deps) linked(userID string) {
	d.auth.On("AuthenticateTelegram", tmock.Anything, chatID).Return(userID, true, nil)
}

func (d deps) expectReply(text string) {
	d.sender.On("SendMessage", text, chatID).Return(nil).Once()
}

func (d deps) assert(t *testing.T) {
	d.sender.AssertExpectations(t)
	d.auth.AssertExpectations(t)
	d.txs.AssertExpectations(t)
	d.requester.AssertExpectations(t)
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	d := newDeps()
	d.expectReply(helloMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/start", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	d := newDeps()
	d.expectReply(dontUnderstandMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/none", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnPlainText_ShouldAnswerWithTalkMessage(t *testing.T) {
	d := newDeps()
	d.expectReply(loveToTalkMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "hi there", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnStartWithToken_ShouldLinkAccount(t *testing.T) {
	d := newDeps()
	d.auth.On("Authenticate", tmock.Anything, "tok").Return("user_1", true, nil)
	d.auth.On("LinkTelegram", tmock.Anything, "user_1", chatID).Return(nil)
	d.expectReply(linkedMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/start tok", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnStartWithUnknownToken_ShouldNotLink(t *testing.T) {
	d := newDeps()
	d.auth.On("Authenticate", tmock.Anything, "bad").Return("", false, nil)
	d.expectReply(invalidSessionMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/start bad", UserID: chatID})

	assert.NoError(t, err)
	d.auth.AssertNotCalled(t, "LinkTelegram", tmock.Anything, tmock.Anything, tmock.Anything)
	d.assert(t)
}

func Test_OnUnlinkedUser_ShouldAskToSignIn(t *testing.T) {
	d := newDeps()
	d.auth.On("AuthenticateTelegram", tmock.Anything, chatID).Return("", false, nil)
	d.expectReply(customerr.SignInMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/transactions", UserID: chatID})

	assert.ErrorIs(t, err, customerr.ErrUnauthenticated)
	d.assert(t)
}

func Test_OnTransactionsCommand_ShouldListAsCaller(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	page := transactions.Page{
		Transactions: []transaction.Transaction{{
			Name:     "Rent",
			Type:     transaction.Expense,
			Category: transaction.Housing,
			Amount:   decimal.RequireFromString("1500.5"),
			Date:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		}},
		CanAddTransaction: false,
	}
	d.txs.On("Page", tmock.MatchedBy(func(ctx context.Context) bool {
		id, ok := auth.CallerFromContext(ctx)
		return ok && id == "user_1"
	}), transactionsOnPage).Return(page, nil)
	d.expectReply("01.03.2024 EXPENSE HOUSING R$1500.50 Rent\n\n" + limitReachedMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/transactions", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnTransactionsCommand_EmptyShouldSayNoTransactions(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.txs.On("Page", tmock.Anything, transactionsOnPage).Return(transactions.Page{CanAddTransaction: true}, nil)
	d.expectReply(noTransactionsMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/transactions", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnAddCommand_ShouldParseArguments(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.txs.On("Add", tmock.Anything, tmock.MatchedBy(func(in transactions.Input) bool {
		return in.Type == "expense" &&
			in.Category == "food" &&
			in.Amount == "12.50" &&
			in.PaymentMethod == string(transaction.OtherMethod) &&
			in.Name == "lunch with team" &&
			in.Date.Year() == 2024 && in.Date.Month() == time.March && in.Date.Day() == 2
	})).Return(transaction.Transaction{}, nil)
	d.expectReply(okMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{
		Text:   "/add expense food 12,50 02.03.2024 lunch with team",
		UserID: chatID,
	})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnAddCommand_WithoutDateShouldUseCategoryAsName(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.txs.On("Add", tmock.Anything, tmock.MatchedBy(func(in transactions.Input) bool {
		return in.Name == "food" && !in.Date.IsZero()
	})).Return(transaction.Transaction{}, nil)
	d.expectReply(okMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/add expense food 10", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnAddCommand_LimitShouldBeReported(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.txs.On("Add", tmock.Anything, tmock.Anything).
		Return(transaction.Transaction{}, &customerr.LimitError{Err: "monthly limit reached"})
	d.expectReply(customerr.LimitMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/add expense food 10", UserID: chatID})

	assert.ErrorIs(t, err, customerr.ErrLimitExceeded)
	d.assert(t)
}

func Test_OnAddCommand_MissingArgumentsShouldExplainUsage(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.expectReply(incorrectUsageMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/add expense", UserID: chatID})

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnAIReportCommand_ShouldEnqueueJob(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.requester.On("RequestReport", tmock.Anything, reports.Job{
		UserID: "user_1",
		ChatID: chatID,
		Month:  "02",
		Year:   2023,
	}).Return(nil)

	h := newHandler(d.auth, d.txs, d.requester)
	resp, err := h.HandleMessage(context.Background(), "/aireport 02 2023", chatID)

	assert.NoError(t, err)
	assert.Equal(t, reportQueuedMessage, resp)
	d.assert(t)
}

func Test_OnAIReportCommand_WithoutYearShouldUseCurrentYear(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.requester.On("RequestReport", tmock.Anything, tmock.MatchedBy(func(job reports.Job) bool {
		return job.Year == 2024 && job.Month == "3"
	})).Return(nil)

	h := newHandler(d.auth, d.txs, d.requester)
	h.now = fixedNow
	_, err := h.HandleMessage(context.Background(), "/aireport 3", chatID)

	assert.NoError(t, err)
	d.assert(t)
}

func Test_OnAIReportCommand_InvalidMonthShouldNotEnqueue(t *testing.T) {
	d := newDeps()
	d.linked("user_1")

	h := newHandler(d.auth, d.txs, d.requester)
	_, err := h.HandleMessage(context.Background(), "/aireport 13", chatID)

	assert.ErrorIs(t, err, customerr.ErrValidation)
	d.requester.AssertNotCalled(t, "RequestReport", tmock.Anything, tmock.Anything)
}

func Test_OnAIReportCommand_QueueFailureShouldAskToRetry(t *testing.T) {
	d := newDeps()
	d.linked("user_1")
	d.requester.On("RequestReport", tmock.Anything, tmock.Anything).Return(errors.New("broker down"))
	d.expectReply(customerr.RetryMessage)

	err := d.service().HandleIncomingMessage(context.Background(), Message{Text: "/aireport 01 2024", UserID: chatID})

	assert.ErrorIs(t, err, customerr.ErrDependencyUnavailable)
	d.assert(t)
}

func Test_ParseCommand(t *testing.T) {
	cmd, arg := parseCommand("/add  expense food 10 ")
	assert.Equal(t, "/add", cmd)
	assert.Equal(t, "expense food 10", arg)

	cmd, arg = parseCommand("/transactions")
	assert.Equal(t, "/transactions", cmd)
	assert.Empty(t, arg)

	cmd, arg = parseCommand("hello")
	assert.Empty(t, cmd)
	assert.Equal(t, "hello", arg)

	cmd, arg = parseCommand("hi there /add")
	assert.Empty(t, cmd)
	assert.Equal(t, "hi there /add", arg)
}
