package reports

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tmock "github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/model/customerr"
	"max.ks1230/finances-ai/internal/model/entitlement"
	gatemock "max.ks1230/finances-ai/internal/model/entitlement/mock"
	"max.ks1230/finances-ai/internal/model/reports/mock"
)

const testModel = "gpt-4o-mini"

var march2024 = []transaction.Transaction{
	{
		ID:       "tx_1",
		UserID:   "user_1",
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString("150.50"),
		Type:     "expense",
		Category: "food",
	},
}

func newGenerator(cfg mock.Config, identity *gatemock.IdentityProviderMock, storage *mock.TransactionsStorageMock, llm *mock.CompleterMock) *Generator {
	return NewGenerator(cfg, cfg, entitlement.NewGate(identity), storage, llm)
}

func Test_OnGenerateAIReport_ShouldSendFormattedTransactions(t *testing.T) {
	ctx := context.Background()
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	llm := &mock.CompleterMock{}

	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	storage.On("FindTransactions", tmock.Anything, "user_1", from, to).Return(march2024, nil)
	llm.On("Complete", tmock.Anything, testModel, Messages(promptPreamble+"\n05/03/2024-R$150.5-expense-food")).
		Return([]string{"Your report", "Second choice"}, nil)

	generator := newGenerator(mock.Config{Credential: true, Model: testModel}, identity, storage, llm)
	report, err := generator.GenerateAIReport(ctx, Request{Month: "03", Year: 2024})

	require.NoError(t, err)
	assert.Equal(t, "Your report", report)
	storage.AssertExpectations(t)
	llm.AssertExpectations(t)
}

func Test_OnGenerateAIReport_FebruaryShouldEndOnFirstOfMarch(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	llm := &mock.CompleterMock{}

	storage.On("FindTransactions", tmock.Anything, "user_1",
		time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
	).Return([]transaction.Transaction{}, nil)
	llm.On("Complete", tmock.Anything, testModel, Messages(promptPreamble+"\n")).Return([]string{"empty month"}, nil)

	generator := newGenerator(mock.Config{Credential: true, Model: testModel}, identity, storage, llm)
	report, err := generator.GenerateAIReport(context.Background(), Request{Month: "2", Year: 2023})

	require.NoError(t, err)
	assert.Equal(t, "empty month", report)
	storage.AssertExpectations(t)
}

func Test_OnGenerateAIReport_WithoutCredentialShouldReturnPlaceholderAfterDelay(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	llm := &mock.CompleterMock{}
	storage.On("FindTransactions", tmock.Anything, "user_1", tmock.Anything, tmock.Anything).Return(march2024, nil)

	delay := 30 * time.Millisecond
	generator := newGenerator(mock.Config{Model: testModel, Delay: delay}, identity, storage, llm)

	for i := 0; i < 2; i++ {
		start := time.Now()
		report, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

		require.NoError(t, err)
		assert.Equal(t, PlaceholderReport, report)
		assert.GreaterOrEqual(t, time.Since(start), delay)
	}
	llm.AssertNotCalled(t, "Complete", tmock.Anything, tmock.Anything, tmock.Anything)
}

func Test_OnGenerateAIReport_PlaceholderShouldStopOnCancel(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	storage.On("FindTransactions", tmock.Anything, "user_1", tmock.Anything, tmock.Anything).Return(march2024, nil)

	generator := newGenerator(mock.Config{Delay: time.Hour}, identity, storage, &mock.CompleterMock{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := generator.GenerateAIReport(ctx, Request{Month: "03", Year: 2024})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, customerr.ErrGenerationFailed)
}

func Test_OnGenerateAIReport_FreePlanShouldFailBeforeQuery(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanFree)
	storage := &mock.TransactionsStorageMock{}
	llm := &mock.CompleterMock{}

	generator := newGenerator(mock.Config{Credential: true, Model: testModel}, identity, storage, llm)
	_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

	assert.ErrorIs(t, err, customerr.ErrPlanRequired)
	storage.AssertNotCalled(t, "FindTransactions", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
	llm.AssertNotCalled(t, "Complete", tmock.Anything, tmock.Anything, tmock.Anything)
}

func Test_OnGenerateAIReport_AnonymousShouldBeUnauthenticated(t *testing.T) {
	storage := &mock.TransactionsStorageMock{}

	generator := newGenerator(mock.Config{Credential: true}, gatemock.Anonymous(), storage, &mock.CompleterMock{})
	_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

	assert.ErrorIs(t, err, customerr.ErrUnauthenticated)
	storage.AssertNotCalled(t, "FindTransactions", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
}

func Test_OnGenerateAIReport_InvalidMonthShouldFailBeforeCollaborators(t *testing.T) {
	for _, month := range []string{"13", "00"} {
		identity := &gatemock.IdentityProviderMock{}
		storage := &mock.TransactionsStorageMock{}
		llm := &mock.CompleterMock{}

		generator := newGenerator(mock.Config{Credential: true}, identity, storage, llm)
		_, err := generator.GenerateAIReport(context.Background(), Request{Month: month, Year: 2024})

		assert.ErrorIs(t, err, customerr.ErrValidation, month)
		identity.AssertNotCalled(t, "CallerIdentity", tmock.Anything)
		storage.AssertNotCalled(t, "FindTransactions", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything)
		llm.AssertNotCalled(t, "Complete", tmock.Anything, tmock.Anything, tmock.Anything)
	}
}

func Test_OnGenerateAIReport_MissingYearShouldFailValidation(t *testing.T) {
	identity := &gatemock.IdentityProviderMock{}

	generator := newGenerator(mock.Config{}, identity, &mock.TransactionsStorageMock{}, &mock.CompleterMock{})
	_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03"})

	assert.ErrorIs(t, err, customerr.ErrValidation)
	identity.AssertNotCalled(t, "CallerIdentity", tmock.Anything)
}

func Test_OnGenerateAIReport_StorageFailureShouldBeDependencyUnavailable(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	cause := errors.New("connection reset")
	storage.On("FindTransactions", tmock.Anything, "user_1", tmock.Anything, tmock.Anything).Return(nil, cause)
	llm := &mock.CompleterMock{}

	generator := newGenerator(mock.Config{Credential: true}, identity, storage, llm)
	_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

	assert.ErrorIs(t, err, customerr.ErrDependencyUnavailable)
	assert.ErrorIs(t, err, cause)
	llm.AssertNotCalled(t, "Complete", tmock.Anything, tmock.Anything, tmock.Anything)
}

func Test_OnGenerateAIReport_CompletionFailureShouldBeGenerationFailed(t *testing.T) {
	identity := gatemock.Signed("user_1", user.PlanPremium)
	storage := &mock.TransactionsStorageMock{}
	storage.On("FindTransactions", tmock.Anything, "user_1", tmock.Anything, tmock.Anything).Return(march2024, nil)
	llm := &mock.CompleterMock{}
	llm.On("Complete", tmock.Anything, testModel, tmock.Anything).Return(nil, errors.New("429 rate limited"))

	generator := newGenerator(mock.Config{Credential: true, Model: testModel}, identity, storage, llm)
	_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

	assert.ErrorIs(t, err, customerr.ErrGenerationFailed)
}

func Test_OnGenerateAIReport_EmptyCompletionShouldBeGenerationFailed(t *testing.T) {
	for _, choices := range [][]string{{}, {"   "}} {
		identity := gatemock.Signed("user_1", user.PlanPremium)
		storage := &mock.TransactionsStorageMock{}
		storage.On("FindTransactions", tmock.Anything, "user_1", tmock.Anything, tmock.Anything).Return(march2024, nil)
		llm := &mock.CompleterMock{}
		llm.On("Complete", tmock.Anything, testModel, tmock.Anything).Return(choices, nil)

		generator := newGenerator(mock.Config{Credential: true, Model: testModel}, identity, storage, llm)
		_, err := generator.GenerateAIReport(context.Background(), Request{Month: "03", Year: 2024})

		assert.ErrorIs(t, err, customerr.ErrGenerationFailed)
	}
}
