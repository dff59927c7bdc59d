package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/bootstrap"
	"max.ks1230/finances-ai/internal/clients/kafka"
	"max.ks1230/finances-ai/internal/clients/tg"
	"max.ks1230/finances-ai/internal/config"
	"max.ks1230/finances-ai/internal/grpcserver"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Reporter init - start")

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

	sender, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init telegram client:", zap.Error(err))
	}

	consumer, err := kafka.NewConsumer(conf.Kafka(), components.Reports, sender)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	healthServer, err := grpcserver.New(conf.GRPC().Addr())
	if err != nil {
		logger.Fatal("failed to init grpc server", zap.Error(err))
	}
	go healthServer.Serve()
	defer healthServer.Shutdown()

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	healthServer.SetServing(true)
	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Error("failed to consume", zap.Error(err))
	}
	healthServer.SetServing(false)
}
