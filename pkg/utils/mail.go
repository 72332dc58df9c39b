package utils

import (
	"bytes"
	"context"
	"html/template"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends one HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer relays mail through an authenticated SMTP server.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// LogMailer only logs. Used when MAIL_HOST is not configured.
type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.Log.Info().Str("to", to).Str("subject", subject).Msg("mail relay not configured, email not sent")
	return nil
}

const ConfirmationSubject = "Confirm your dependent registration"

var confirmationTmpl = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif;">
    <p>Hello {{.Name}},</p>
    <p>You were added as a dependent on a medical records account. Click the link below to confirm.</p>
    <p><a href="{{.Link}}">Confirm registration</a></p>
    <p>This link expires in 24 hours. If you did not expect this email you can ignore it.</p>
  </body>
</html>
`))

// RenderConfirmationEmail builds the HTML body of a confirmation email.
func RenderConfirmationEmail(name, link string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name string
		Link string
	}{name, link})
	return buf.String(), err
}
