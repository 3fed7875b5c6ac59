package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
	"github.com/biftracker/backend/internal/scraper"
	"github.com/biftracker/backend/internal/service"
)

// ItemServiceInterface for handler testing
type ItemServiceInterface interface {
	Create(ctx context.Context, input service.CreateItemInput) (*model.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filters repository.ItemFilters) ([]model.Item, error)
	AddLink(ctx context.Context, itemID uuid.UUID, input service.RetailerLinkInput) (*model.RetailerLink, error)
	GetPriceHistory(ctx context.Context, itemID uuid.UUID, days int) ([]model.PricePoint, error)
	GetPriceUpdates(ctx context.Context, itemID uuid.UUID, limit int) ([]model.PriceUpdate, error)
	GetRecentPriceUpdates(ctx context.Context, limit int) ([]model.PriceUpdate, error)
}

// UserServiceInterface for handler testing
type UserServiceInterface interface {
	Register(ctx context.Context, userID uuid.UUID, input service.RegisterInput) (*model.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// AlertServiceInterface for handler testing
type AlertServiceInterface interface {
	Subscribe(ctx context.Context, userID, itemID uuid.UUID, input service.SubscribeInput) (*model.Alert, error)
	Unsubscribe(ctx context.Context, userID, itemID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]model.Alert, error)
	Update(ctx context.Context, userID uuid.UUID, alertID int64, input service.UpdateAlertInput) (*model.Alert, error)
}

// PriceTrackerInterface for handler testing
type PriceTrackerInterface interface {
	CheckAllTrackedItems(ctx context.Context) (service.CheckSummary, error)
	GetHealthStatus(nextRunTime time.Time) scraper.HealthStatus
}
