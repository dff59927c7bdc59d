package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"max.ks1230/finances-ai/internal/model/reports"
)

func Test_RequestReport_ShouldProduceJSONJob(t *testing.T) {
	sp := mocks.NewSyncProducer(t, sarama.NewConfig())
	job := reports.Job{UserID: "user_1", ChatID: 42, Month: "03", Year: 2024}
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got reports.Job
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got != job {
			return errors.Errorf("unexpected job %+v", got)
		}
		return nil
	})

	p := newProducer(sp, "ai-reports")
	err := p.RequestReport(context.Background(), job)

	assert.NoError(t, err)
	p.Close()
}

func Test_RequestReport_BrokerFailureShouldReturnError(t *testing.T) {
	sp := mocks.NewSyncProducer(t, sarama.NewConfig())
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(sp, "ai-reports")
	err := p.RequestReport(context.Background(), reports.Job{UserID: "user_1"})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	p.Close()
}
