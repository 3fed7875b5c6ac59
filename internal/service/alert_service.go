package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/apperror"
	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
)

// AlertService handles alert subscriptions on tracked items.
type AlertService struct {
	alertRepo repository.AlertRepositoryInterface
	itemRepo  repository.ItemRepositoryInterface
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo repository.AlertRepositoryInterface, itemRepo repository.ItemRepositoryInterface) *AlertService {
	return &AlertService{alertRepo: alertRepo, itemRepo: itemRepo}
}

type SubscribeInput struct {
	PriceThreshold      *decimal.Decimal `json:"priceThreshold,omitempty"`
	PriceDropPercentage *decimal.Decimal `json:"priceDropPercentage,omitempty"`
}

type UpdateAlertInput struct {
	PriceThreshold      *decimal.Decimal `json:"priceThreshold,omitempty"`
	PriceDropPercentage *decimal.Decimal `json:"priceDropPercentage,omitempty"`
	IsActive            *bool            `json:"isActive,omitempty"`
}

// Subscribe adds the user to the item's subscriber list and creates (or
// re-arms) their alert with the given criteria. An alert with no criteria
// fires on every drop.
func (s *AlertService) Subscribe(ctx context.Context, userID, itemID uuid.UUID, input SubscribeInput) (*model.Alert, error) {
	if err := validateCriteria(input.PriceThreshold, input.PriceDropPercentage); err != nil {
		return nil, err
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if err == repository.ErrItemNotFound {
			return nil, apperror.NotFound("item")
		}
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}

	if err := s.itemRepo.Subscribe(ctx, itemID, userID); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	alert := &model.Alert{
		UserID:              userID,
		ItemID:              itemID,
		PriceThreshold:      input.PriceThreshold,
		PriceDropPercentage: input.PriceDropPercentage,
		IsActive:            true,
	}
	if err := s.alertRepo.Upsert(ctx, alert); err != nil {
		return nil, fmt.Errorf("upsert alert: %w", err)
	}
	return alert, nil
}

// Unsubscribe deactivates the user's alert on the item and removes them from
// the subscriber list.
func (s *AlertService) Unsubscribe(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.alertRepo.Deactivate(ctx, userID, itemID); err != nil {
		if err == repository.ErrAlertNotFound {
			return apperror.NotFound("alert")
		}
		return fmt.Errorf("deactivate alert: %w", err)
	}
	if err := s.itemRepo.Unsubscribe(ctx, itemID, userID); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// List returns all of the user's alerts, newest first.
func (s *AlertService) List(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	alerts, err := s.alertRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts for user %s: %w", userID, err)
	}
	return alerts, nil
}

// Update modifies an existing alert's criteria or active state.
// Returns a not-found error if the alert belongs to another user.
func (s *AlertService) Update(ctx context.Context, userID uuid.UUID, alertID int64, input UpdateAlertInput) (*model.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		if err == repository.ErrAlertNotFound {
			return nil, apperror.NotFound("alert")
		}
		return nil, fmt.Errorf("get alert %d: %w", alertID, err)
	}

	if alert.UserID != userID {
		return nil, apperror.NotFound("alert")
	}

	if err := validateCriteria(input.PriceThreshold, input.PriceDropPercentage); err != nil {
		return nil, err
	}

	alert.PriceThreshold = input.PriceThreshold
	alert.PriceDropPercentage = input.PriceDropPercentage
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("update alert %d: %w", alertID, err)
	}
	return alert, nil
}

func validateCriteria(threshold, percentage *decimal.Decimal) error {
	if threshold != nil && !threshold.IsPositive() {
		return apperror.ValidationError("priceThreshold", "must be positive")
	}
	if percentage != nil {
		if !percentage.IsPositive() || percentage.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.ValidationError("priceDropPercentage", "must be between 0 and 100")
		}
	}
	return nil
}
