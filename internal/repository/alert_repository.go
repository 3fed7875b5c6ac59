package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/biftracker/backend/internal/model"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Upsert creates an alert, or reactivates and re-arms the existing one for
// the same (user, item) pair.
func (r *AlertRepository) Upsert(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (user_id, item_id, price_threshold, price_drop_percentage, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET
			price_threshold = EXCLUDED.price_threshold,
			price_drop_percentage = EXCLUDED.price_drop_percentage,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowxContext(ctx, query,
		alert.UserID, alert.ItemID, alert.PriceThreshold, alert.PriceDropPercentage, alert.IsActive,
	).Scan(&alert.ID, &alert.CreatedAt, &alert.UpdatedAt); err != nil {
		return fmt.Errorf("upsert alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*model.Alert, error) {
	var alert model.Alert
	query := `SELECT * FROM alerts WHERE id = $1`
	err := r.db.GetContext(ctx, &alert, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlertNotFound
	}
	return &alert, err
}

// ListActiveByItem returns the active alerts for an item, oldest first.
func (r *AlertRepository) ListActiveByItem(ctx context.Context, itemID uuid.UUID) ([]model.Alert, error) {
	query := `
		SELECT id, user_id, item_id, price_threshold, price_drop_percentage,
		       is_active, last_triggered, created_at, updated_at
		FROM alerts
		WHERE item_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	var alerts []model.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, itemID); err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	return alerts, nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Alert, error) {
	query := `
		SELECT id, user_id, item_id, price_threshold, price_drop_percentage,
		       is_active, last_triggered, created_at, updated_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var alerts []model.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, userID); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *model.Alert) error {
	query := `
		UPDATE alerts
		SET price_threshold = $2, price_drop_percentage = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		alert.ID, alert.PriceThreshold, alert.PriceDropPercentage, alert.IsActive,
	).Scan(&alert.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAlertNotFound
	}
	return err
}

// Deactivate turns off the alert for a (user, item) pair without deleting it,
// preserving last_triggered history.
func (r *AlertRepository) Deactivate(ctx context.Context, userID, itemID uuid.UUID) error {
	query := `
		UPDATE alerts
		SET is_active = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND item_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, itemID)
	if err != nil {
		return fmt.Errorf("deactivate alert: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepository) UpdateLastTriggered(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE alerts SET last_triggered = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("update last triggered: %w", err)
	}
	return nil
}
