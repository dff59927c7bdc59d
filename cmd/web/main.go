package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/bootstrap"
	"max.ks1230/finances-ai/internal/config"
	apihttp "max.ks1230/finances-ai/internal/http"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	defer logger.Sync()
	logger.Info("Web init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.Tracing())
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	components, err := bootstrap.New(conf)
	if err != nil {
		logger.Fatal("failed to init components:", zap.Error(err))
	}
	defer components.Close()

	if os.Getenv("LOG_ENV") == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := apihttp.NewServer(conf.HTTP().Addr(), components.Auth, components.Transactions, components.Reports)

	logger.Info("Web init - end", zap.String("addr", conf.HTTP().Addr()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", zap.Error(err))
	}
	logger.Info("Web stopped")
}
