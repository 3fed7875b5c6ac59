package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

//go:generate mockery --name=UserRepositoryInterface --output=../mocks --outpkg=mocks
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

//go:generate mockery --name=ItemRepositoryInterface --output=../mocks --outpkg=mocks
type ItemRepositoryInterface interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, filters ItemFilters) ([]model.Item, error)
	ListTracked(ctx context.Context) ([]model.Item, error)
	UpdateItemPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, onSale bool) error
	AddLink(ctx context.Context, link *model.RetailerLink) error
	UpdateLink(ctx context.Context, link *model.RetailerLink) error
	AppendPricePoint(ctx context.Context, point *model.PricePoint) error
	GetPriceHistory(ctx context.Context, itemID uuid.UUID, days int) ([]model.PricePoint, error)
	Subscribe(ctx context.Context, itemID, userID uuid.UUID) error
	Unsubscribe(ctx context.Context, itemID, userID uuid.UUID) error
	ListSubscribers(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error)
}

//go:generate mockery --name=AlertRepositoryInterface --output=../mocks --outpkg=mocks
type AlertRepositoryInterface interface {
	Upsert(ctx context.Context, alert *model.Alert) error
	GetByID(ctx context.Context, id int64) (*model.Alert, error)
	ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]model.Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Alert, error)
	Update(ctx context.Context, alert *model.Alert) error
	Deactivate(ctx context.Context, userID, itemID uuid.UUID) error
	UpdateLastTriggered(ctx context.Context, id int64, at time.Time) error
}

//go:generate mockery --name=PriceUpdateRepositoryInterface --output=../mocks --outpkg=mocks
type PriceUpdateRepositoryInterface interface {
	Create(ctx context.Context, update *model.PriceUpdate) error
	SetNotificationsSent(ctx context.Context, id int64) error
	AppendReceipt(ctx context.Context, receipt *model.DeliveryReceipt) error
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.PriceUpdate, error)
	ListRecent(ctx context.Context, limit int) ([]model.PriceUpdate, error)
}
