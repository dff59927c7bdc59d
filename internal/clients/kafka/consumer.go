package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/clients/auth"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
	"max.ks1230/finances-ai/internal/model/reports"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type reportGenerator interface {
	GenerateAIReport(ctx context.Context, req reports.Request) (string, error)
}

type reportSender interface {
	SendMessage(text string, userID int64) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	generator     reportGenerator
	sender        reportSender
}

func NewConsumer(cfg consumerConfig, generator reportGenerator, sender reportSender) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.ReportsTopic(),
		generator:     generator,
		sender:        sender,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Close() {
	if err := c.consumerGroup.Close(); err != nil {
		logger.Error("failed to close consumer group", zap.Error(err))
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var job reports.Job
		err := json.Unmarshal(message.Value, &job)
		if err != nil {
			logger.Error("cannot unmarshal kafka message", zap.Error(err))
		} else {
			logger.Info(
				"received report request",
				zap.ByteString("key", message.Key),
				zap.String("userID", job.UserID),
				zap.String("month", job.Month),
				zap.Int("year", job.Year),
			)
			c.processRequest(session.Context(), job)
		}
		session.MarkMessage(message, "")
	}

	return nil
}

// processRequest runs the report as the job's user and delivers either the
// report or the user-facing error text to the job's chat.
func (c *Consumer) processRequest(ctx context.Context, job reports.Job) {
	ctx = auth.WithCaller(ctx, job.UserID)

	text, err := c.generator.GenerateAIReport(ctx, job.Request())
	if err != nil {
		logger.Warn("report generation failed", zap.String("userID", job.UserID), zap.Error(err))
		text = customerr.UserMessage(err)
	}

	if err = c.sender.SendMessage(text, job.ChatID); err != nil {
		logger.Error("failed to send report", zap.Error(err))
	}
}
