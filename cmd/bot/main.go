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
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/messages"
	"max.ks1230/finances-ai/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	closer, err := tracing.Init(conf.Tracing())
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}

	components, err := bootstrap.New(conf)
	if err != nil {
		logger.Fatal("failed to init components:", zap.Error(err))
	}
	defer components.Close()

	producer, err := kafka.NewProducer(conf.Kafka())
	if err != nil {
		logger.Fatal("failed to init kafka producer", zap.Error(err))
	}
	defer producer.Close()

	msgService := messages.NewService(client, components.Auth, components.Transactions, producer)

	logger.Info("Bot init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client.ListenUpdates(ctx, msgService)
}
