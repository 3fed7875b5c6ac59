package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/repository"
	"github.com/biftracker/backend/internal/scraper"
)

// ErrNoPriceFound is reported when a retailer page was fetched but no price
// could be extracted from its markup.
var ErrNoPriceFound = errors.New("no price found on page")

// PageFetcher retrieves the raw HTML of a retailer product page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PriceExtractor pulls a price out of fetched page content.
type PriceExtractor interface {
	Extract(retailer model.Retailer, pageContent []byte) (decimal.Decimal, bool)
}

// SubscriberNotifier fans a detected drop out to the item's subscribers.
// It returns the number of users actually notified.
type SubscriberNotifier interface {
	NotifySubscribers(ctx context.Context, item *model.Item, update *model.PriceUpdate) (int, error)
}

// CheckSummary is the result of one full check cycle.
type CheckSummary struct {
	ItemsChecked    int `json:"items_checked"`
	PriceDropsFound int `json:"price_drops_found"`
}

// PriceTrackerService runs the periodic price check over every tracked item.
type PriceTrackerService struct {
	itemRepo   repository.ItemRepositoryInterface
	updateRepo repository.PriceUpdateRepositoryInterface
	fetcher    PageFetcher
	extractor  PriceExtractor
	notifier   SubscriberNotifier
	metrics    *scraper.MetricsCollector
	logger     *slog.Logger
	now        func() time.Time
}

// NewPriceTrackerService creates a new price tracker service
func NewPriceTrackerService(
	itemRepo repository.ItemRepositoryInterface,
	updateRepo repository.PriceUpdateRepositoryInterface,
	fetcher PageFetcher,
	extractor PriceExtractor,
	notifier SubscriberNotifier,
	logger *slog.Logger,
) *PriceTrackerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceTrackerService{
		itemRepo:   itemRepo,
		updateRepo: updateRepo,
		fetcher:    fetcher,
		extractor:  extractor,
		notifier:   notifier,
		metrics:    scraper.NewMetricsCollector(),
		logger:     logger,
		now:        time.Now,
	}
}

// CheckAllTrackedItems runs one check cycle over every item that has retailer
// links. A failure on one link never aborts the cycle; only the inability to
// load the catalog itself does.
func (s *PriceTrackerService) CheckAllTrackedItems(ctx context.Context) (CheckSummary, error) {
	items, err := s.itemRepo.ListTracked(ctx)
	if err != nil {
		return CheckSummary{}, fmt.Errorf("list tracked items: %w", err)
	}

	s.logger.Info("Starting price check cycle",
		slog.Int("item_count", len(items)),
	)

	summary := CheckSummary{}
	for i := range items {
		select {
		case <-ctx.Done():
			s.metrics.FinishCycle()
			return summary, ctx.Err()
		default:
		}

		drops := s.checkItem(ctx, &items[i])
		summary.ItemsChecked++
		summary.PriceDropsFound += drops
	}

	s.metrics.FinishCycle()

	s.logger.Info("Price check cycle completed",
		slog.Int("items_checked", summary.ItemsChecked),
		slog.Int("price_drops_found", summary.PriceDropsFound),
	)
	return summary, nil
}

// checkItem checks every retailer link of an item, rolls the lowest link
// price up into the item, and dispatches notifications for detected drops.
func (s *PriceTrackerService) checkItem(ctx context.Context, item *model.Item) int {
	drops := 0
	for i := range item.RetailerLinks {
		update, err := s.checkLink(ctx, &item.RetailerLinks[i])
		if err != nil {
			s.logger.Warn("Link check failed",
				slog.String("item_id", item.ID.String()),
				slog.String("retailer", string(item.RetailerLinks[i].Retailer)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if update == nil {
			continue
		}

		drops++
		item.IsOnSale = true
		notified, err := s.notifier.NotifySubscribers(ctx, item, update)
		if err != nil {
			s.logger.Error("Notification dispatch failed",
				slog.String("item_id", item.ID.String()),
				slog.String("error", err.Error()),
			)
		} else {
			s.logger.Info("Price drop dispatched",
				slog.String("item_id", item.ID.String()),
				slog.String("retailer", string(update.Retailer)),
				slog.String("old_price", update.OldPrice.String()),
				slog.String("new_price", update.NewPrice.String()),
				slog.Int("users_notified", notified),
			)
		}
	}

	if lowest := item.LowestLinkPrice(); lowest != nil {
		changed := item.CurrentPrice == nil || !item.CurrentPrice.Equal(*lowest)
		if changed || drops > 0 {
			if err := s.itemRepo.UpdateItemPrice(ctx, item.ID, *lowest, item.IsOnSale); err != nil {
				s.logger.Error("Item price rollup failed",
					slog.String("item_id", item.ID.String()),
					slog.String("error", err.Error()),
				)
			} else {
				item.CurrentPrice = lowest
			}
		}
	}
	return drops
}

// checkLink fetches one retailer page and applies the price transition rules:
// first observation and a strictly lower price update the link and append to
// price history, with the lower price additionally recording a drop. An
// increase updates only the link, and an unchanged price or a failed
// extraction writes nothing at all.
func (s *PriceTrackerService) checkLink(ctx context.Context, link *model.RetailerLink) (*model.PriceUpdate, error) {
	s.metrics.RecordCheck(link.Retailer)

	body, err := s.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		s.metrics.RecordFailure(link.Retailer, err)
		return nil, fmt.Errorf("fetch %s: %w", link.URL, err)
	}

	price, ok := s.extractor.Extract(link.Retailer, body)
	if !ok {
		s.metrics.RecordFailure(link.Retailer, ErrNoPriceFound)
		return nil, ErrNoPriceFound
	}
	s.metrics.RecordPrice(link.Retailer)

	old := link.CurrentPrice
	if old != nil && price.Equal(*old) {
		return nil, nil
	}

	checkedAt := s.now()
	var update *model.PriceUpdate

	if old != nil && price.LessThan(*old) {
		pct := old.Sub(price).Div(*old).Mul(decimal.NewFromInt(100))
		link.PriceDropped = true
		update = &model.PriceUpdate{
			ItemID:           link.ItemID,
			Retailer:         link.Retailer,
			OldPrice:         *old,
			NewPrice:         price,
			PercentageChange: pct,
		}
	}

	link.CurrentPrice = &price
	link.LastChecked = &checkedAt
	if err := s.itemRepo.UpdateLink(ctx, link); err != nil {
		s.metrics.RecordFailure(link.Retailer, err)
		return nil, fmt.Errorf("update link: %w", err)
	}

	if old == nil || price.LessThan(*old) {
		point := &model.PricePoint{ItemID: link.ItemID, Price: price, RecordedAt: checkedAt}
		if err := s.itemRepo.AppendPricePoint(ctx, point); err != nil {
			s.metrics.RecordFailure(link.Retailer, err)
			return nil, fmt.Errorf("append price point: %w", err)
		}
	}

	if update != nil {
		if err := s.updateRepo.Create(ctx, update); err != nil {
			s.metrics.RecordFailure(link.Retailer, err)
			return nil, fmt.Errorf("record price update: %w", err)
		}
		s.metrics.RecordDrop(link.Retailer)
	}
	return update, nil
}

// GetHealthStatus returns the tracker's health as of the last cycle.
func (s *PriceTrackerService) GetHealthStatus(nextRunTime time.Time) scraper.HealthStatus {
	return s.metrics.GetHealthStatus(nextRunTime)
}
