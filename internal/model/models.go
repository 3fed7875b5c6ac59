package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Retailer identifies a supported retailer. The set is closed; anything
// else falls through to the generic extraction strategy.
type Retailer string

const (
	RetailerAmazon  Retailer = "Amazon"
	RetailerWalmart Retailer = "Walmart"
	RetailerTarget  Retailer = "Target"
	RetailerBestBuy Retailer = "Best Buy"
)

// KnownRetailers lists the retailers with a dedicated extraction strategy.
var KnownRetailers = []Retailer{
	RetailerAmazon,
	RetailerWalmart,
	RetailerTarget,
	RetailerBestBuy,
}

// IsKnown reports whether r has a dedicated extraction strategy.
func (r Retailer) IsKnown() bool {
	for _, known := range KnownRetailers {
		if r == known {
			return true
		}
	}
	return false
}

// RetailerLink is one (retailer, URL) pairing tracked for an item.
// PriceDropped is sticky: once a drop is recorded it stays set.
type RetailerLink struct {
	ID           int64            `db:"id" json:"id"`
	ItemID       uuid.UUID        `db:"item_id" json:"itemId"`
	Retailer     Retailer         `db:"retailer" json:"retailer"`
	URL          string           `db:"url" json:"url"`
	CurrentPrice *decimal.Decimal `db:"current_price" json:"currentPrice,omitempty"`
	PriceDropped bool             `db:"price_dropped" json:"priceDropped"`
	LastChecked  *time.Time       `db:"last_checked" json:"lastChecked,omitempty"`
}

// PricePoint is one entry in an item's append-only price history.
type PricePoint struct {
	ID         int64           `db:"id" json:"id"`
	ItemID     uuid.UUID       `db:"item_id" json:"itemId"`
	Price      decimal.Decimal `db:"price" json:"price"`
	RecordedAt time.Time       `db:"recorded_at" json:"recordedAt"`
}

// Item is a tracked catalog item. CurrentPrice is the lowest known price
// across its retailer links; IsOnSale is set on the first recorded drop and
// never cleared here.
type Item struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	Title        string           `db:"title" json:"title"`
	Description  *string          `db:"description" json:"description,omitempty"`
	SourceID     string           `db:"source_id" json:"sourceId"`
	SourceURL    string           `db:"source_url" json:"sourceUrl"`
	Category     *string          `db:"category" json:"category,omitempty"`
	ImageURL     *string          `db:"image_url" json:"imageUrl,omitempty"`
	CurrentPrice *decimal.Decimal `db:"current_price" json:"currentPrice,omitempty"`
	Currency     string           `db:"currency" json:"currency"`
	IsOnSale     bool             `db:"is_on_sale" json:"isOnSale"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updatedAt"`

	RetailerLinks []RetailerLink `db:"-" json:"retailerLinks"`
	PriceHistory  []PricePoint   `db:"-" json:"priceHistory"`
	Subscribers   []uuid.UUID    `db:"-" json:"-"`
}

// LowestLinkPrice returns the minimum non-nil price across retailer links,
// or nil if no link has a known price.
func (i *Item) LowestLinkPrice() *decimal.Decimal {
	var lowest *decimal.Decimal
	for idx := range i.RetailerLinks {
		p := i.RetailerLinks[idx].CurrentPrice
		if p == nil {
			continue
		}
		if lowest == nil || p.LessThan(*lowest) {
			v := *p
			lowest = &v
		}
	}
	return lowest
}
