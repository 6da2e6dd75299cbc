package reminders

import (
	"context"
	"fmt"
	"html"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// Sender delivers an HTML e-mail
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends e-mails through an SMTP server
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send sends an e-mail using gopkg.in/mail.v2
func (s *SMTPSender) Send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Worker processes reminder tasks
type Worker struct {
	logger *zap.Logger
	sender Sender
	appURL string
}

// NewWorker creates a new worker instance
//
// appURL is linked from the e-mail body and may be empty.
func NewWorker(logger *zap.Logger, sender Sender, appURL string) *Worker {
	return &Worker{
		logger: logger,
		sender: sender,
		appURL: appURL,
	}
}

// Register adds the worker's handlers to mux
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeReminderEmail, w.HandleReminderTask)
}

// HandleReminderTask sends one reminder e-mail
//
// Malformed payloads are not retried.
func (w *Worker) HandleReminderTask(ctx context.Context, t *asynq.Task) error {
	payload, err := ParseReminderTask(t)
	if err != nil {
		w.logger.Error("dropping reminder task", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	subject, body := reminderMessage(payload, w.appURL)
	if err := w.sender.Send(payload.Email, subject, body); err != nil {
		w.logger.Error("failed to send reminder",
			zap.String("owner_id", payload.OwnerID),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("reminder sent",
		zap.String("owner_id", payload.OwnerID),
		zap.String("day", payload.Day),
		zap.Int("streak", payload.Streak),
	)
	return nil
}

func reminderMessage(p ReminderPayload, appURL string) (subject, body string) {
	subject = fmt.Sprintf("🔥 Keep your %d-day streak alive!", p.Streak)

	name := p.DisplayName
	if name == "" {
		name = "there"
	}

	body = fmt.Sprintf("<p>Hi %s,</p>\n<p>You watched videos yesterday. Continue your momentum today to maintain your learning streak.</p>\n",
		html.EscapeString(name))
	if appURL != "" {
		body += fmt.Sprintf("<p><a href=\"%s\">Continue Learning</a></p>\n", html.EscapeString(appURL))
	}
	return subject, body
}
