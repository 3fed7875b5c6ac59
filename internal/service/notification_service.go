// Package service provides business logic for the application.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
	"github.com/biftracker/backend/pkg/currency"
)

// EmailSender defines the interface for sending emails
type EmailSender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// NotificationService matches detected price drops against subscriber alerts
// and dispatches email notifications.
type NotificationService struct {
	alertRepo   repository.AlertRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	updateRepo  repository.PriceUpdateRepositoryInterface
	emailSender EmailSender
	frontendURL string
	logger      *slog.Logger
	now         func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	alertRepo repository.AlertRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	updateRepo repository.PriceUpdateRepositoryInterface,
	emailSender EmailSender,
	frontendURL string,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		alertRepo:   alertRepo,
		userRepo:    userRepo,
		updateRepo:  updateRepo,
		emailSender: emailSender,
		frontendURL: frontendURL,
		logger:      logger,
		now:         time.Now,
	}
}

// NotifySubscribers evaluates each reachable subscriber's active alerts
// against the drop, emails each matching user at most once, and records a
// delivery receipt per successful send. The update's notifications_sent flag
// is set only when at least one delivery succeeded.
func (s *NotificationService) NotifySubscribers(ctx context.Context, item *model.Item, update *model.PriceUpdate) (int, error) {
	alerts, err := s.alertRepo.ListActiveByItem(ctx, item.ID)
	if err != nil {
		return 0, fmt.Errorf("list alerts: %w", err)
	}

	// One email per user regardless of how many of their alerts match.
	userOrder := []uuid.UUID{}
	userAlerts := map[uuid.UUID][]model.Alert{}
	for _, alert := range alerts {
		if _, seen := userAlerts[alert.UserID]; !seen {
			userOrder = append(userOrder, alert.UserID)
		}
		userAlerts[alert.UserID] = append(userAlerts[alert.UserID], alert)
	}

	notified := 0
	for _, userID := range userOrder {
		// A user the notifier cannot reach is skipped entirely; their
		// alerts are not evaluated and keep their last_triggered.
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil || user.Email == "" {
			s.logger.Debug("Skipping subscriber without email",
				slog.String("user_id", userID.String()),
			)
			continue
		}

		matched := false
		for _, alert := range userAlerts[userID] {
			if !alert.Matches(update.NewPrice, update.PercentageChange) {
				continue
			}
			matched = true
			if err := s.alertRepo.UpdateLastTriggered(ctx, alert.ID, s.now()); err != nil {
				s.logger.Error("Failed to stamp alert",
					slog.Int64("alert_id", alert.ID),
					slog.String("error", err.Error()),
				)
			}
		}
		if !matched {
			continue
		}

		if err := s.sendPriceDropEmail(user, item, update); err != nil {
			s.logger.Error("Failed to send price drop email",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		receipt := &model.DeliveryReceipt{
			PriceUpdateID: update.ID,
			UserID:        userID,
			SentAt:        s.now(),
		}
		if err := s.updateRepo.AppendReceipt(ctx, receipt); err != nil {
			s.logger.Error("Failed to record delivery receipt",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
		update.UsersNotified = append(update.UsersNotified, *receipt)
		notified++
	}

	if notified > 0 {
		if err := s.updateRepo.SetNotificationsSent(ctx, update.ID); err != nil {
			return notified, fmt.Errorf("mark notifications sent: %w", err)
		}
		update.NotificationsSent = true
	}

	return notified, nil
}

func (s *NotificationService) sendPriceDropEmail(user *model.User, item *model.Item, update *model.PriceUpdate) error {
	oldPrice := currency.FormatUSD(update.OldPrice)
	newPrice := currency.FormatUSD(update.NewPrice)
	savings := currency.FormatUSD(update.Savings())
	pct := update.PercentageChange.StringFixed(1)
	itemURL := fmt.Sprintf("%s/items/%s", s.frontendURL, item.ID)

	subject := fmt.Sprintf("Price Drop: %s is now %s at %s", item.Title, newPrice, update.Retailer)

	textBody := fmt.Sprintf(`Hi %s,

Good news! An item you're tracking just dropped in price.

%s at %s:

- Was: %s
- Now: %s
- You save: %s (%s%% off)

See price history and other retailers:
%s

---
BuyItForLife Sale Tracker
`,
		user.Name,
		item.Title,
		update.Retailer,
		oldPrice,
		newPrice,
		savings,
		pct,
		itemURL,
	)

	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Price Drop Alert</h2>
  <p>Hi %s,</p>
  <p>An item you're tracking just dropped in price.</p>
  <h3>%s at %s</h3>
  <ul>
    <li>Was: <s>%s</s></li>
    <li>Now: <strong>%s</strong></li>
    <li>You save: %s (%s%% off)</li>
  </ul>
  <p><a href="%s">See price history and other retailers</a></p>
  <hr>
  <p style="color: #888; font-size: 12px;">BuyItForLife Sale Tracker</p>
</body>
</html>`,
		user.Name,
		item.Title,
		update.Retailer,
		oldPrice,
		newPrice,
		savings,
		pct,
		itemURL,
	)

	return s.emailSender.Send(user.Email, subject, htmlBody, textBody)
}
