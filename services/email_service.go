package services

import (
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"
	"fmt"
	"html"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce sync.Once
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.Email.ApiKey != "" {
		es.client = getEmailClient(cfg.Email.ApiKey)
	}
	return es
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

// Enabled reports whether an API key was configured.
func (es *EmailService) Enabled() bool {
	return es.client != nil
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	if !es.Enabled() {
		es.logger.Debug("Email disabled, skipping send", gecho.Field("subject", subject), gecho.Field("to", to))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := es.client.Emails.SendWithContext(ctx, params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(ctx context.Context, user *tables.User) error {
	subject := fmt.Sprintf("Welcome to %s", es.cfg.Server.AppName)
	return es.SendEmail(ctx, []string{user.Email}, subject, welcomeBody(es.cfg.Server.AppName, es.cfg.Server.FrontendURL, user.Name))
}

func welcomeBody(appName, frontendURL, name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1>Hello %s,</h1>
		<p>your %s account is ready. You can now list items for sale and search offers in your city.</p>
		<p><a href="%s">Start browsing</a></p>
	</div>
</body>
</html>`, html.EscapeString(name), html.EscapeString(appName), html.EscapeString(frontendURL))
}
