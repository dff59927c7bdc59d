package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/transactions"
)

const (
	readTimeout  = 10 * time.Second
	idleTimeout  = 60 * time.Second
	writeTimeout = 2 * time.Minute
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (userID string, ok bool, err error)
}

type transactionsService interface {
	Page(ctx context.Context, limit int) (transactions.Page, error)
	Add(ctx context.Context, in transactions.Input) (transaction.Transaction, error)
}

type reportGenerator interface {
	GenerateAIReport(ctx context.Context, req reports.Request) (string, error)
}

type Server struct {
	engine *gin.Engine
	srv    *http.Server
}

func NewServer(addr string, auth authenticator, txs transactionsService, generator reportGenerator) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), observe())

	h := &handlers{transactions: txs, generator: generator}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/", authenticate(auth))
	api.GET("/transactions", h.listTransactions)
	api.POST("/transactions", h.addTransaction)
	api.POST("/reports/ai", h.generateAIReport)

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: readTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
