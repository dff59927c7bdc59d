package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/transactions"
)

const (
	loginPath  = "/login"
	dateLayout = "2006-01-02"
)

type handlers struct {
	transactions transactionsService
	generator    reportGenerator
}

type addTransactionRequest struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
}

// monthValue accepts both "03" and 3.
type monthValue string

func (m *monthValue) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*m = monthValue(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.New("month must be a string or a number")
	}
	*m = monthValue(strconv.Itoa(n))
	return nil
}

type aiReportRequest struct {
	Month monthValue `json:"month"`
	Year  int        `json:"year"`
}

func (h *handlers) listTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.transactions.Page(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) addTransaction(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, &customerr.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		abortWithError(c, &customerr.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
		return
	}

	rec, err := h.transactions.Add(c.Request.Context(), transactions.Input{
		Name:          req.Name,
		Type:          req.Type,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount.String(),
		Date:          date,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *handlers) generateAIReport(c *gin.Context) {
	var req aiReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, &customerr.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	report, err := h.generator.GenerateAIReport(c.Request.Context(), reports.Request{
		Month: string(req.Month),
		Year:  req.Year,
	})
	if err != nil {
		logger.Error("ai report failed", zap.Error(err))
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, customerr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, customerr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, customerr.ErrPlanRequired), errors.Is(err, customerr.ErrLimitExceeded):
		return http.StatusForbidden
	case errors.Is(err, customerr.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, customerr.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
