package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/biftracker/backend/internal/model"
)

type PriceUpdateRepository struct {
	db *sqlx.DB
}

func NewPriceUpdateRepository(db *sqlx.DB) *PriceUpdateRepository {
	return &PriceUpdateRepository{db: db}
}

func (r *PriceUpdateRepository) Create(ctx context.Context, update *model.PriceUpdate) error {
	query := `
		INSERT INTO price_updates (item_id, retailer, old_price, new_price, percentage_change, notifications_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	if err := r.db.QueryRowxContext(ctx, query,
		update.ItemID, update.Retailer, update.OldPrice, update.NewPrice,
		update.PercentageChange, update.NotificationsSent,
	).Scan(&update.ID, &update.CreatedAt); err != nil {
		return fmt.Errorf("create price update: %w", err)
	}
	return nil
}

func (r *PriceUpdateRepository) SetNotificationsSent(ctx context.Context, id int64) error {
	query := `UPDATE price_updates SET notifications_sent = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set notifications sent: %w", err)
	}
	return nil
}

func (r *PriceUpdateRepository) AppendReceipt(ctx context.Context, receipt *model.DeliveryReceipt) error {
	query := `
		INSERT INTO price_update_receipts (price_update_id, user_id, sent_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		receipt.PriceUpdateID, receipt.UserID, receipt.SentAt,
	).Scan(&receipt.ID); err != nil {
		return fmt.Errorf("append delivery receipt: %w", err)
	}
	return nil
}

func (r *PriceUpdateRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]model.PriceUpdate, error) {
	query := `
		SELECT id, item_id, retailer, old_price, new_price, percentage_change, notifications_sent, created_at
		FROM price_updates
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var updates []model.PriceUpdate
	if err := r.db.SelectContext(ctx, &updates, query, itemID, limit); err != nil {
		return nil, fmt.Errorf("list price updates: %w", err)
	}
	return updates, nil
}

func (r *PriceUpdateRepository) ListRecent(ctx context.Context, limit int) ([]model.PriceUpdate, error) {
	query := `
		SELECT id, item_id, retailer, old_price, new_price, percentage_change, notifications_sent, created_at
		FROM price_updates
		ORDER BY created_at DESC
		LIMIT $1
	`

	var updates []model.PriceUpdate
	if err := r.db.SelectContext(ctx, &updates, query, limit); err != nil {
		return nil, fmt.Errorf("list recent price updates: %w", err)
	}
	return updates, nil
}
