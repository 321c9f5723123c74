package sendgrid

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

type Option func(*sendgrid.Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(url string) Option {
	return func(c *sendgrid.Client) {
		c.Request.BaseURL = url
	}
}

func NewEmailService(apiKey string, fromEmail string, fromName string, opts ...Option) EmailService {
	client := sendgrid.NewSendClient(apiKey)

	for _, opt := range opts {
		opt(client)
	}

	return &emailService{client: client, fromEmail: fromEmail, fromName: fromName}
}

// Send delivers one message. The HTML part is only attached when present.
func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))
	personalization.Subject = req.Subject

	for key, value := range req.CustomArgs {
		personalization.SetCustomArg(key, value)
	}

	message.AddPersonalizations(personalization)
	message.AddCategories(req.Categories...)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
