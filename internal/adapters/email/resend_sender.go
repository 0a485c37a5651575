package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

// ResendSender delivers transactional mail through Resend.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewResendSender builds the Resend-backed sender.
func NewResendSender(apiKey, fromEmail, fromName string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if fromEmail == "" {
		fromEmail = "noreply@luxevisionshop.com"
	}
	if fromName == "" {
		fromName = "LuxeVision"
	}
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (s *ResendSender) SendDeliveryEmail(_ context.Context, msg ports.DeliveryEmail) (string, error) {
	request := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{msg.To},
		Subject: fmt.Sprintf("🎬 Your %s Is Ready!", msg.ProductName),
		Html:    deliveryEmailHTML(msg),
	}
	sent, err := s.client.Emails.Send(request)
	if err != nil {
		return "", fmt.Errorf("send delivery email: %w", err)
	}
	return sent.Id, nil
}
