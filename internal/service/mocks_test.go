package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
)

// MockItemRepo for testing
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepo) List(ctx context.Context, filters repository.ItemFilters) ([]model.Item, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepo) ListTracked(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepo) UpdateItemPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, onSale bool) error {
	args := m.Called(ctx, id, price, onSale)
	return args.Error(0)
}

func (m *MockItemRepo) AddLink(ctx context.Context, link *model.RetailerLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockItemRepo) UpdateLink(ctx context.Context, link *model.RetailerLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockItemRepo) AppendPricePoint(ctx context.Context, point *model.PricePoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockItemRepo) GetPriceHistory(ctx context.Context, itemID uuid.UUID, days int) ([]model.PricePoint, error) {
	args := m.Called(ctx, itemID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PricePoint), args.Error(1)
}

func (m *MockItemRepo) Subscribe(ctx context.Context, itemID, userID uuid.UUID) error {
	args := m.Called(ctx, itemID, userID)
	return args.Error(0)
}

func (m *MockItemRepo) Unsubscribe(ctx context.Context, itemID, userID uuid.UUID) error {
	args := m.Called(ctx, itemID, userID)
	return args.Error(0)
}

func (m *MockItemRepo) ListSubscribers(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockAlertRepo for testing
type MockAlertRepo struct {
	mock.Mock
}

func (m *MockAlertRepo) Upsert(ctx context.Context, alert *model.Alert) error {
	args := m.Called(ctx, alert)
	if alert.ID == 0 {
		alert.ID = 1
	}
	return args.Error(0)
}

func (m *MockAlertRepo) GetByID(ctx context.Context, id int64) (*model.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Alert), args.Error(1)
}

func (m *MockAlertRepo) ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]model.Alert, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Alert), args.Error(1)
}

func (m *MockAlertRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Alert), args.Error(1)
}

func (m *MockAlertRepo) Update(ctx context.Context, alert *model.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepo) Deactivate(ctx context.Context, userID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockAlertRepo) UpdateLastTriggered(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockUserRepo for testing
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockPriceUpdateRepo for testing
type MockPriceUpdateRepo struct {
	mock.Mock
}

func (m *MockPriceUpdateRepo) Create(ctx context.Context, update *model.PriceUpdate) error {
	args := m.Called(ctx, update)
	if update.ID == 0 {
		update.ID = 1
	}
	return args.Error(0)
}

func (m *MockPriceUpdateRepo) SetNotificationsSent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPriceUpdateRepo) AppendReceipt(ctx context.Context, receipt *model.DeliveryReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockPriceUpdateRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.PriceUpdate, error) {
	args := m.Called(ctx, itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceUpdate), args.Error(1)
}

func (m *MockPriceUpdateRepo) ListRecent(ctx context.Context, limit int) ([]model.PriceUpdate, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceUpdate), args.Error(1)
}

// MockFetcher for testing
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockExtractor for testing
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(retailer model.Retailer, pageContent []byte) (decimal.Decimal, bool) {
	args := m.Called(retailer, pageContent)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

// MockNotifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySubscribers(ctx context.Context, item *model.Item, update *model.PriceUpdate) (int, error) {
	args := m.Called(ctx, item, update)
	return args.Int(0), args.Error(1)
}

// MockEmailSender for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(to, subject, htmlBody, textBody string) error {
	args := m.Called(to, subject, htmlBody, textBody)
	return args.Error(0)
}
