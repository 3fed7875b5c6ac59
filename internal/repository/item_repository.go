package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

// ItemFilters narrows the item listing.
type ItemFilters struct {
	Category string
	OnSale   *bool
	Search   string
	Limit    int
	Offset   int
}

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (id, title, description, source_id, source_url, category, image_url,
		                   current_price, currency, is_on_sale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	item.ID = uuid.New()
	if item.Currency == "" {
		item.Currency = "USD"
	}
	if err := r.db.QueryRowxContext(ctx, query,
		item.ID, item.Title, item.Description, item.SourceID, item.SourceURL,
		item.Category, item.ImageURL, item.CurrentPrice, item.Currency, item.IsOnSale,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	for i := range item.RetailerLinks {
		item.RetailerLinks[i].ItemID = item.ID
		if err := r.AddLink(ctx, &item.RetailerLinks[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads an item with its retailer links and recent price history.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	query := `SELECT * FROM items WHERE id = $1`
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if err := r.loadLinks(ctx, &item); err != nil {
		return nil, err
	}
	history, err := r.GetPriceHistory(ctx, item.ID, 90)
	if err != nil {
		return nil, err
	}
	item.PriceHistory = history
	return &item, nil
}

// List returns items matching the filters, newest first.
func (r *ItemRepository) List(ctx context.Context, filters ItemFilters) ([]model.Item, error) {
	query := `
		SELECT id, title, description, source_id, source_url, category, image_url,
		       current_price, currency, is_on_sale, created_at, updated_at
		FROM items
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filters.Category)
		argNum++
	}

	if filters.OnSale != nil {
		query += fmt.Sprintf(" AND is_on_sale = $%d", argNum)
		args = append(args, *filters.OnSale)
		argNum++
	}

	if filters.Search != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", argNum)
		args = append(args, "%"+filters.Search+"%")
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	var items []model.Item
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListTracked returns every item that has at least one retailer link, with
// links and subscriber IDs attached. This is the check cycle's working set.
func (r *ItemRepository) ListTracked(ctx context.Context) ([]model.Item, error) {
	query := `
		SELECT DISTINCT i.id, i.title, i.description, i.source_id, i.source_url, i.category,
		       i.image_url, i.current_price, i.currency, i.is_on_sale, i.created_at, i.updated_at
		FROM items i
		INNER JOIN retailer_links rl ON rl.item_id = i.id
		ORDER BY i.created_at ASC
	`

	var items []model.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list tracked items: %w", err)
	}

	for i := range items {
		if err := r.loadLinks(ctx, &items[i]); err != nil {
			return nil, err
		}
		subs, err := r.ListSubscribers(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Subscribers = subs
	}
	return items, nil
}

func (r *ItemRepository) loadLinks(ctx context.Context, item *model.Item) error {
	query := `
		SELECT id, item_id, retailer, url, current_price, price_dropped, last_checked
		FROM retailer_links
		WHERE item_id = $1
		ORDER BY id ASC
	`
	if err := r.db.SelectContext(ctx, &item.RetailerLinks, query, item.ID); err != nil {
		return fmt.Errorf("load retailer links: %w", err)
	}
	return nil
}

// UpdateItemPrice sets the item's rolled-up price and sale flag.
func (r *ItemRepository) UpdateItemPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, onSale bool) error {
	query := `
		UPDATE items
		SET current_price = $2, is_on_sale = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, price, onSale)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) AddLink(ctx context.Context, link *model.RetailerLink) error {
	query := `
		INSERT INTO retailer_links (item_id, retailer, url, current_price, price_dropped, last_checked)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id, url) DO UPDATE SET retailer = EXCLUDED.retailer
		RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		link.ItemID, link.Retailer, link.URL, link.CurrentPrice, link.PriceDropped, link.LastChecked,
	).Scan(&link.ID); err != nil {
		return fmt.Errorf("add retailer link: %w", err)
	}
	return nil
}

// UpdateLink persists a link's price state after a check.
func (r *ItemRepository) UpdateLink(ctx context.Context, link *model.RetailerLink) error {
	query := `
		UPDATE retailer_links
		SET current_price = $2, price_dropped = $3, last_checked = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, link.ID, link.CurrentPrice, link.PriceDropped, link.LastChecked)
	if err != nil {
		return fmt.Errorf("update retailer link: %w", err)
	}
	return nil
}

func (r *ItemRepository) AppendPricePoint(ctx context.Context, point *model.PricePoint) error {
	query := `
		INSERT INTO price_history (item_id, price, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		point.ItemID, point.Price, point.RecordedAt,
	).Scan(&point.ID); err != nil {
		return fmt.Errorf("append price point: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetPriceHistory(ctx context.Context, itemID uuid.UUID, days int) ([]model.PricePoint, error) {
	query := `
		SELECT id, item_id, price, recorded_at
		FROM price_history
		WHERE item_id = $1
		  AND recorded_at >= NOW() - INTERVAL '%d days'
		ORDER BY recorded_at ASC
	`

	var history []model.PricePoint
	if err := r.db.SelectContext(ctx, &history, fmt.Sprintf(query, days), itemID); err != nil {
		return nil, fmt.Errorf("get price history: %w", err)
	}
	return history, nil
}

func (r *ItemRepository) Subscribe(ctx context.Context, itemID, userID uuid.UUID) error {
	query := `
		INSERT INTO item_subscribers (item_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (item_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("subscribe to item: %w", err)
	}
	return nil
}

func (r *ItemRepository) Unsubscribe(ctx context.Context, itemID, userID uuid.UUID) error {
	query := `DELETE FROM item_subscribers WHERE item_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("unsubscribe from item: %w", err)
	}
	return nil
}

func (r *ItemRepository) ListSubscribers(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM item_subscribers WHERE item_id = $1 ORDER BY user_id`

	var subscribers []uuid.UUID
	if err := r.db.SelectContext(ctx, &subscribers, query, itemID); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subscribers, nil
}
