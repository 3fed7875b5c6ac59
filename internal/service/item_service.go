package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/apperror"
	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
)

// ItemService handles the tracked-item catalog.
type ItemService struct {
	itemRepo   repository.ItemRepositoryInterface
	updateRepo repository.PriceUpdateRepositoryInterface
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepositoryInterface, updateRepo repository.PriceUpdateRepositoryInterface) *ItemService {
	return &ItemService{itemRepo: itemRepo, updateRepo: updateRepo}
}

type CreateItemInput struct {
	Title         string              `json:"title"`
	Description   *string             `json:"description,omitempty"`
	SourceID      string              `json:"sourceId"`
	SourceURL     string              `json:"sourceUrl"`
	Category      *string             `json:"category,omitempty"`
	ImageURL      *string             `json:"imageUrl,omitempty"`
	Currency      string              `json:"currency"`
	RetailerLinks []RetailerLinkInput `json:"retailerLinks"`
}

type RetailerLinkInput struct {
	Retailer model.Retailer `json:"retailer"`
	URL      string         `json:"url"`
}

// Create adds a new item to the catalog with its retailer links.
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) (*model.Item, error) {
	if input.Title == "" {
		return nil, apperror.ValidationError("title", "is required")
	}
	for _, link := range input.RetailerLinks {
		if _, err := url.ParseRequestURI(link.URL); err != nil {
			return nil, apperror.ValidationError("retailerLinks", fmt.Sprintf("invalid URL %q", link.URL))
		}
	}

	item := &model.Item{
		Title:       input.Title,
		Description: input.Description,
		SourceID:    input.SourceID,
		SourceURL:   input.SourceURL,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Currency:    input.Currency,
	}
	for _, link := range input.RetailerLinks {
		item.RetailerLinks = append(item.RetailerLinks, model.RetailerLink{
			Retailer: link.Retailer,
			URL:      link.URL,
		})
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

// Get retrieves an item with its links and recent price history.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrItemNotFound {
			return nil, apperror.NotFound("item")
		}
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return item, nil
}

// List retrieves items matching the filters.
func (s *ItemService) List(ctx context.Context, filters repository.ItemFilters) ([]model.Item, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	items, err := s.itemRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// AddLink attaches a retailer link to an existing item.
func (s *ItemService) AddLink(ctx context.Context, itemID uuid.UUID, input RetailerLinkInput) (*model.RetailerLink, error) {
	if _, err := url.ParseRequestURI(input.URL); err != nil {
		return nil, apperror.ValidationError("url", "invalid URL")
	}
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if err == repository.ErrItemNotFound {
			return nil, apperror.NotFound("item")
		}
		return nil, fmt.Errorf("getting item %s: %w", itemID, err)
	}

	link := &model.RetailerLink{
		ItemID:   itemID,
		Retailer: input.Retailer,
		URL:      input.URL,
	}
	if err := s.itemRepo.AddLink(ctx, link); err != nil {
		return nil, fmt.Errorf("adding link: %w", err)
	}
	return link, nil
}

// GetPriceHistory returns the item's price points over the last days.
func (s *ItemService) GetPriceHistory(ctx context.Context, itemID uuid.UUID, days int) ([]model.PricePoint, error) {
	if days <= 0 || days > 365 {
		days = 90
	}
	history, err := s.itemRepo.GetPriceHistory(ctx, itemID, days)
	if err != nil {
		return nil, fmt.Errorf("getting price history for %s: %w", itemID, err)
	}
	return history, nil
}

// GetRecentPriceUpdates returns the latest recorded drops across all items.
func (s *ItemService) GetRecentPriceUpdates(ctx context.Context, limit int) ([]model.PriceUpdate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	updates, err := s.updateRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("getting recent price updates: %w", err)
	}
	return updates, nil
}

// GetPriceUpdates returns the item's recent recorded drops.
func (s *ItemService) GetPriceUpdates(ctx context.Context, itemID uuid.UUID, limit int) ([]model.PriceUpdate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	updates, err := s.updateRepo.ListByItem(ctx, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("getting price updates for %s: %w", itemID, err)
	}
	return updates, nil
}
