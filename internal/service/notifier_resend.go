package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends transactional account emails. Construction returns nil
// when unconfigured; callers treat a nil Notifier as "notifications off".
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey string, from string) *ResendNotifier {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return nil
	}
	return &ResendNotifier{client: resend.NewClient(apiKey), from: from}
}

func (n *ResendNotifier) SendWelcome(ctx context.Context, email string, username string) error {
	subject := "Welcome to Coinfolio"
	html := fmt.Sprintf("<p>Hi %s, your account is ready.</p>", username)
	text := fmt.Sprintf("Hi %s, your account is ready.", username)
	return n.send(email, subject, html, text)
}

func (n *ResendNotifier) SendBanNotice(ctx context.Context, email string, reason string) error {
	subject := "Your account has been suspended"
	html := fmt.Sprintf("<p>Your account was suspended. Reason: %s</p>", reason)
	text := fmt.Sprintf("Your account was suspended. Reason: %s", reason)
	return n.send(email, subject, html, text)
}

func (n *ResendNotifier) send(to string, subject string, html string, text string) error {
	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	return err
}
