package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-checkout/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	// SendOrderConfirmation emails the buyer and records the attempt. The
	// returned error is informational, the order stands either way.
	SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	logger := middleware.LoggerFromContext(ctx)

	orderID := order.ID
	subject, text, html := orderConfirmation(user, order)

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    user.ID,
		OrderID:   &orderID,
		Type:      models.NotificationTypeEmail,
		Recipient: user.Email,
		Subject:   subject,
		Content:   text,
		Status:    models.StatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	sendErr := n.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:          user.Email,
		Subject:     subject,
		Content:     text,
		HTMLContent: html,
		Categories:  []string{models.CategoryOrderConfirmation},
		CustomArgs:  map[string]string{"order_id": order.ID.String()},
	})

	status, errMsg := models.StatusSent, ""
	if sendErr != nil {
		status, errMsg = models.StatusFailed, sendErr.Error()
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, status, errMsg); err != nil {
		logger.Warn("Failed to update notification status",
			slog.String("notificationId", notification.ID.String()),
			slog.String("error", err.Error()))
	}

	if sendErr != nil {
		return fmt.Errorf("failed to send order confirmation: %w", sendErr)
	}

	logger.Info("Order confirmation sent", slog.String("orderId", order.ID.String()))

	return nil
}

func orderConfirmation(user *models.User, order *models.Order) (string, string, string) {
	subject := fmt.Sprintf("Order %s confirmed", order.ID.String()[:8])

	var text strings.Builder

	fmt.Fprintf(&text, "Hi %s,\n\nThanks for your order.\n\n", user.Name)
	fmt.Fprintf(&text, "Items: %d\n", len(order.Items))
	fmt.Fprintf(&text, "Shipping (%s): %.2f\n", order.ShippingMethod, order.ShippingPrice)
	fmt.Fprintf(&text, "Tax: %.2f\n", order.TaxPrice)
	fmt.Fprintf(&text, "Total: %.2f\n", order.TotalOrderPrice)
	fmt.Fprintf(&text, "Payment: %s\n", order.PaymentMethodType)

	html := fmt.Sprintf("<p>Hi %s,</p><p>Thanks for your order.</p><p>Total: <strong>%.2f</strong></p>",
		template.HTMLEscapeString(user.Name), order.TotalOrderPrice)

	return subject, text.String(), html
}
