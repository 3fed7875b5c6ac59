package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/biftracker/backend/internal/apperror"
	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
)

func TestItemService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      CreateItemInput
		setupMock  func(*MockItemRepo)
		wantErr    bool
		wantStatus int
	}{
		{
			name: "success",
			input: CreateItemInput{
				Title:     "Cast Iron Skillet",
				SourceID:  "abc123",
				SourceURL: "https://reddit.com/r/bifl/abc123",
				RetailerLinks: []RetailerLinkInput{
					{Retailer: model.RetailerAmazon, URL: "https://amazon.com/p/1"},
				},
			},
			setupMock: func(m *MockItemRepo) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(item *model.Item) bool {
					return item.Title == "Cast Iron Skillet" && len(item.RetailerLinks) == 1
				})).Return(nil)
			},
		},
		{
			name:       "missing title",
			input:      CreateItemInput{},
			setupMock:  func(m *MockItemRepo) {},
			wantErr:    true,
			wantStatus: 400,
		},
		{
			name: "invalid link url",
			input: CreateItemInput{
				Title: "Skillet",
				RetailerLinks: []RetailerLinkInput{
					{Retailer: model.RetailerAmazon, URL: "not a url"},
				},
			},
			setupMock:  func(m *MockItemRepo) {},
			wantErr:    true,
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			itemRepo := new(MockItemRepo)
			updateRepo := new(MockPriceUpdateRepo)
			tt.setupMock(itemRepo)

			svc := NewItemService(itemRepo, updateRepo)
			item, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, item)
				assert.Equal(t, tt.wantStatus, apperror.GetStatusCode(err))
				itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
			}
			itemRepo.AssertExpectations(t)
		})
	}
}

func TestItemService_Get(t *testing.T) {
	t.Parallel()

	t.Run("not found maps to 404", func(t *testing.T) {
		t.Parallel()

		itemRepo := new(MockItemRepo)
		updateRepo := new(MockPriceUpdateRepo)
		id := uuid.New()
		itemRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrItemNotFound)

		svc := NewItemService(itemRepo, updateRepo)
		item, err := svc.Get(context.Background(), id)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, 404, apperror.GetStatusCode(err))
	})
}

func TestItemService_List_ClampsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero uses default", limit: 0, wantLimit: 50},
		{name: "negative uses default", limit: -5, wantLimit: 50},
		{name: "over max uses default", limit: 500, wantLimit: 50},
		{name: "in range passes through", limit: 25, wantLimit: 25},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			itemRepo := new(MockItemRepo)
			updateRepo := new(MockPriceUpdateRepo)
			itemRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ItemFilters) bool {
				return f.Limit == tt.wantLimit
			})).Return([]model.Item{}, nil)

			svc := NewItemService(itemRepo, updateRepo)
			_, err := svc.List(context.Background(), repository.ItemFilters{Limit: tt.limit})

			assert.NoError(t, err)
			itemRepo.AssertExpectations(t)
		})
	}
}

func TestItemService_AddLink(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		itemRepo := new(MockItemRepo)
		updateRepo := new(MockPriceUpdateRepo)
		itemID := uuid.New()

		itemRepo.On("GetByID", mock.Anything, itemID).Return(&model.Item{ID: itemID}, nil)
		itemRepo.On("AddLink", mock.Anything, mock.MatchedBy(func(l *model.RetailerLink) bool {
			return l.ItemID == itemID && l.Retailer == model.RetailerTarget
		})).Return(nil)

		svc := NewItemService(itemRepo, updateRepo)
		link, err := svc.AddLink(context.Background(), itemID, RetailerLinkInput{
			Retailer: model.RetailerTarget,
			URL:      "https://target.com/p/2",
		})

		assert.NoError(t, err)
		assert.Equal(t, itemID, link.ItemID)
		itemRepo.AssertExpectations(t)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		itemRepo := new(MockItemRepo)
		updateRepo := new(MockPriceUpdateRepo)

		svc := NewItemService(itemRepo, updateRepo)
		link, err := svc.AddLink(context.Background(), uuid.New(), RetailerLinkInput{URL: "nope"})

		assert.Error(t, err)
		assert.Nil(t, link)
		assert.Equal(t, 400, apperror.GetStatusCode(err))
		itemRepo.AssertNotCalled(t, "AddLink", mock.Anything, mock.Anything)
	})
}

func TestItemService_GetPriceHistory_ClampsDays(t *testing.T) {
	t.Parallel()

	itemRepo := new(MockItemRepo)
	updateRepo := new(MockPriceUpdateRepo)
	itemID := uuid.New()

	itemRepo.On("GetPriceHistory", mock.Anything, itemID, 90).Return([]model.PricePoint{}, nil)

	svc := NewItemService(itemRepo, updateRepo)
	_, err := svc.GetPriceHistory(context.Background(), itemID, 400)

	assert.NoError(t, err)
	itemRepo.AssertExpectations(t)
}

func TestItemService_GetPriceUpdates_ClampsLimit(t *testing.T) {
	t.Parallel()

	itemRepo := new(MockItemRepo)
	updateRepo := new(MockPriceUpdateRepo)
	itemID := uuid.New()

	updateRepo.On("ListByItem", mock.Anything, itemID, 20).Return([]model.PriceUpdate{}, nil)

	svc := NewItemService(itemRepo, updateRepo)
	_, err := svc.GetPriceUpdates(context.Background(), itemID, 0)

	assert.NoError(t, err)
	updateRepo.AssertExpectations(t)
}
