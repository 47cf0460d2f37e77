package mailer

import (
	"fmt"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// StartWorker consumes the mailer queue and delivers each payload over SMTP.
// The returned stop function cancels the consumer.
func StartWorker(service contracts.MailerService, logger *zap.Logger) (func(), error) {
	svc, ok := service.(*mailerService)
	if !ok {
		return nil, fmt.Errorf("mailer worker requires the rabbitmq-backed mailer service")
	}
	return svc.startWorker(logger)
}

func (svc *mailerService) startWorker(logger *zap.Logger) (func(), error) {
	deliveries, err := svc.Channel.Consume(svc.Queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				payload := new(requests.EmailPayload)
				if err := json.Unmarshal(delivery.Body, payload); err != nil {
					logger.Error("mailerService.StartWorker cannot parse queued payload", zap.Error(err))
					delivery.Nack(false, false)
					continue
				}
				if err := svc.deliver(payload); err != nil {
					logger.Error("mailerService.StartWorker delivery failed",
						zap.Strings("to", payload.To),
						zap.Error(err),
					)
					delivery.Nack(false, false)
					continue
				}
				delivery.Ack(false)
			}
		}
	}()

	return func() { close(done) }, nil
}
