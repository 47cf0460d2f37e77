package mailer

import (
	"learnhub-service/internal/app/config"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

type SMTPClient struct {
	Host        string
	Port        int
	Username    string
	Password    string
	EmailSender string
	Auth        smtp.Auth
}

func NewSMTPClient(driverConfig *config.DriverConfig, log *logrus.Logger) *SMTPClient {
	auth := smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	log.WithField("host", driverConfig.SMTP.Host).Info("SMTP client initialized")
	return &SMTPClient{
		Host:        driverConfig.SMTP.Host,
		Port:        driverConfig.SMTP.Port,
		Username:    driverConfig.SMTP.Username,
		Password:    driverConfig.SMTP.Password,
		EmailSender: driverConfig.SMTP.EmailSender,
		Auth:        auth,
	}
}
