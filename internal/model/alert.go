package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alert is a per-user, per-item subscription to price-drop notifications.
// At most one alert exists per (user, item) pair; the pair uniqueness is
// enforced where alerts are created, not by the tracker core.
type Alert struct {
	ID                  int64            `db:"id" json:"id"`
	UserID              uuid.UUID        `db:"user_id" json:"userId"`
	ItemID              uuid.UUID        `db:"item_id" json:"itemId"`
	PriceThreshold      *decimal.Decimal `db:"price_threshold" json:"priceThreshold,omitempty"`
	PriceDropPercentage *decimal.Decimal `db:"price_drop_percentage" json:"priceDropPercentage,omitempty"`
	IsActive            bool             `db:"is_active" json:"isActive"`
	LastTriggered       *time.Time       `db:"last_triggered" json:"lastTriggered,omitempty"`
	CreatedAt           time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updatedAt"`
}

// IsBare reports whether the alert has no trigger criteria, which makes it
// match every drop on its item.
func (a *Alert) IsBare() bool {
	return a.PriceThreshold == nil && a.PriceDropPercentage == nil
}

// Matches evaluates the alert against a drop to newPrice with the given
// percentage change.
func (a *Alert) Matches(newPrice, percentageChange decimal.Decimal) bool {
	if a.PriceThreshold != nil && newPrice.LessThanOrEqual(*a.PriceThreshold) {
		return true
	}
	if a.PriceDropPercentage != nil && percentageChange.GreaterThanOrEqual(*a.PriceDropPercentage) {
		return true
	}
	return a.IsBare()
}

// PriceUpdate is an immutable record of one detected drop. It is created by
// the drop detector and mutated only by the dispatcher, which sets
// NotificationsSent and appends delivery receipts.
type PriceUpdate struct {
	ID                int64           `db:"id" json:"id"`
	ItemID            uuid.UUID       `db:"item_id" json:"itemId"`
	Retailer          Retailer        `db:"retailer" json:"retailer"`
	OldPrice          decimal.Decimal `db:"old_price" json:"oldPrice"`
	NewPrice          decimal.Decimal `db:"new_price" json:"newPrice"`
	PercentageChange  decimal.Decimal `db:"percentage_change" json:"percentageChange"`
	NotificationsSent bool            `db:"notifications_sent" json:"notificationsSent"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`

	UsersNotified []DeliveryReceipt `db:"-" json:"usersNotified"`
}

// Savings returns the absolute amount saved by the drop.
func (u *PriceUpdate) Savings() decimal.Decimal {
	return u.OldPrice.Sub(u.NewPrice)
}

// DeliveryReceipt records one successful notification delivery.
type DeliveryReceipt struct {
	ID            int64     `db:"id" json:"-"`
	PriceUpdateID int64     `db:"price_update_id" json:"-"`
	UserID        uuid.UUID `db:"user_id" json:"userId"`
	SentAt        time.Time `db:"sent_at" json:"sentAt"`
}
