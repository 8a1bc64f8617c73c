package email

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/designpro/designpro/internal/usecase"
)

func NewEmailProvider(
	smtpHost, smtpUser, smtpPassword, smtpPort string) *EmailProvider {

	if smtpHost == "" || smtpUser == "" || smtpPassword == "" || smtpPort == "" {
		panic("email: SMTP host, user, and password must be provided")
	}

	var (
		smtpPortInt int
		err         error
	)
	if smtpPortInt, err = strconv.Atoi(smtpPort); err != nil {
		panic("email: invalid SMTP port: " + err.Error())
	}

	client, err := mail.NewClient(
		smtpHost,
		mail.WithPort(smtpPortInt),
		mail.WithUsername(smtpUser),
		mail.WithPassword(smtpPassword),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
	)
	if err != nil {
		panic("email: failed to create SMTP client: " + err.Error())
	}

	emailChan := make(chan *mail.Msg, 100)

	provider := &EmailProvider{
		c:      emailChan,
		client: client,
		from:   smtpUser,
	}

	go provider.sendEmailWorker()

	return provider
}

type EmailProvider struct {
	c      chan *mail.Msg
	client *mail.Client
	from   string
}

// SendEmail queues the message; a background worker delivers it.
func (e *EmailProvider) SendEmail(_ context.Context, email usecase.Email) error {
	msg := mail.NewMsg()

	from := email.From
	if from == "" {
		from = e.from
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(email.To...); err != nil {
		return err
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.Body)

	e.c <- msg
	return nil
}

func (e *EmailProvider) sendEmailWorker() {
	for msg := range e.c {
		if err := e.client.DialAndSend(msg); err != nil {
			slog.Error("failed to send email", slog.String("err", err.Error()))
		}
	}
}
