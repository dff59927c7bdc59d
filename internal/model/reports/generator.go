package reports

import (
	"context"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/chat"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

// PlaceholderReport is served when no language-model credential is configured.
const PlaceholderReport = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed non risus. " +
	"Suspendisse lectus tortor, dignissim sit amet, adipiscing nec, ultricies sed, dolor."

type gate interface {
	RequirePlan(ctx context.Context, plan user.Plan) (user.Profile, error)
}

type transactionsStorage interface {
	FindTransactions(ctx context.Context, userID string, from, to time.Time) ([]transaction.Transaction, error)
}

type completer interface {
	Complete(ctx context.Context, model string, messages []chat.Message) ([]string, error)
}

type llmConfig interface {
	HasCredential() bool
	ReportModel() string
}

type appConfig interface {
	PlaceholderDelay() time.Duration
}

type Request struct {
	Month string
	Year  int
}

type Generator struct {
	gate             gate
	storage          transactionsStorage
	completer        completer
	hasCredential    bool
	model            string
	placeholderDelay time.Duration
}

func NewGenerator(llm llmConfig, app appConfig, gate gate, storage transactionsStorage, completer completer) *Generator {
	return &Generator{
		gate:             gate,
		storage:          storage,
		completer:        completer,
		hasCredential:    llm.HasCredential(),
		model:            llm.ReportModel(),
		placeholderDelay: app.PlaceholderDelay(),
	}
}

// GenerateAIReport validates the request, checks the premium entitlement,
// loads the caller's transactions for the month and asks the language model
// for a report.
func (g *Generator) GenerateAIReport(ctx context.Context, req Request) (report string, err error) {
	logger.Info("GenerateAIReport - start", zap.String("month", req.Month), zap.Int("year", req.Year))
	defer logger.Info("GenerateAIReport - end")

	span, ctx := opentracing.StartSpanFromContext(ctx, "generateAIReport")
	defer span.Finish()
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
		}
	}()

	month, err := ParseMonth(req.Month)
	if err != nil {
		return "", err
	}
	if err = ValidateYear(req.Year); err != nil {
		return "", err
	}

	profile, err := g.gate.RequirePlan(ctx, user.PlanPremium)
	if err != nil {
		return "", errors.Wrap(err, "generate report")
	}

	txs, err := g.fetch(ctx, profile.ID, req.Year, month)
	if err != nil {
		return "", err
	}

	return g.generate(ctx, FormatPrompt(txs))
}

func (g *Generator) fetch(ctx context.Context, userID string, year int, month time.Month) ([]transaction.Transaction, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "fetchTransactions")
	defer span.Finish()

	from, to := MonthRange(year, month)
	txs, err := g.storage.FindTransactions(ctx, userID, from, to)
	if err != nil {
		ext.Error.Set(span, true)
		return nil, customerr.Dependency("storage", errors.Wrap(err, "find transactions"))
	}
	span.SetTag("transactions", len(txs))
	return txs, nil
}

func (g *Generator) generate(ctx context.Context, prompt string) (report string, err error) {
	mode := modeCompletion
	if !g.hasCredential {
		mode = modePlaceholder
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "generate")
	defer span.Finish()
	span.SetTag("mode", mode)

	start := time.Now()
	defer func() {
		observeGeneration(mode, time.Since(start), err != nil)
	}()

	if !g.hasCredential {
		return g.placeholder(ctx)
	}

	choices, err := g.completer.Complete(ctx, g.model, Messages(prompt))
	if err != nil {
		logger.Error("completion failed", zap.Error(err))
		return "", &customerr.GenerationError{Err: err}
	}
	if len(choices) == 0 || strings.TrimSpace(choices[0]) == "" {
		return "", &customerr.GenerationError{Err: errors.New("empty completion")}
	}
	return choices[0], nil
}

func (g *Generator) placeholder(ctx context.Context) (string, error) {
	timer := time.NewTimer(g.placeholderDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "placeholder report")
	case <-timer.C:
		return PlaceholderReport, nil
	}
}
