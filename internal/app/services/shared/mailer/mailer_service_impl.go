package mailer

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/drivers/mailer"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/exceptions"
	"net/smtp"
	"regexp"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

var (
	mailerServiceInstance contracts.MailerService
	onceMailerService     sync.Once
)

type mailerService struct {
	Channel *amqp091.Channel
	Client  *mailer.SMTPClient
	Queue   string
}

func NewMailerService(client *mailer.SMTPClient, rabbitMQConnection *amqp091.Connection, queue string) (contracts.MailerService, error) {
	var initErr error
	onceMailerService.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			initErr = err
			return
		}
		_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
		if err != nil {
			initErr = err
			return
		}
		mailerServiceInstance = &mailerService{
			Channel: channel,
			Client:  client,
			Queue:   queue,
		}
	})
	return mailerServiceInstance, initErr
}

// SendEmail enqueues the payload; delivery happens in the queue worker so a
// slow SMTP host never blocks the request path.
func (svc *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = svc.Channel.PublishWithContext(ctx, "", svc.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, svc.Queue)
	}
	return nil
}

func (svc *mailerService) ValidateEmail(email string) bool {
	re := regexp.MustCompile(constvars.RegexEmail)
	return re.MatchString(email)
}

func (svc *mailerService) deliver(payload *requests.EmailPayload) error {
	from := payload.From
	if from == "" {
		from = svc.Client.EmailSender
	}

	addr := fmt.Sprintf("%s:%d", svc.Client.Host, svc.Client.Port)
	for _, to := range payload.To {
		msg := []byte(fmt.Sprintf(constvars.EmailSendHTMLSubjectFormat, to, payload.Subject, payload.HTMLCode))
		err := smtp.SendMail(addr, svc.Client.Auth, from, []string{to}, msg)
		if err != nil {
			return exceptions.ErrSMTPSendEmail(err, svc.Client.Host)
		}
	}
	return nil
}
