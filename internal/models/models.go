package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is the canonical, deduplicated representation of a catalog item.
// ExternalID is the identifier assigned by the upstream catalog provider
// and is the sole reconciliation key: one external id maps to at most one
// Card, ever. The sync pipeline creates a Card on first sight of a new
// external id and mutates it in place afterwards; it never deletes cards.
type Card struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null;index:idx_card_name"`
	SetName string `json:"set_name" gorm:"not null;index:idx_set_name"`
	Number  *string `json:"number"`
	Rarity  Rarity `json:"rarity" gorm:"type:varchar(50)"`

	// Operator-supplied fields. The sync pipeline must never clobber these
	// with absent source values; only a present, non-blank override wins.
	ImageURL         string `json:"image_url" gorm:"size:1000"`
	UploadedImageURL string `json:"uploaded_image_url" gorm:"size:1000"`
	SalePrice        *int64 `json:"sale_price"` // asking price in KRW

	ExternalID string    `json:"external_id" gorm:"uniqueIndex;size:191"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UnknownSetName is stored when the source record carries no set block.
const UnknownSetName = "Unknown Set"

// DisplayImageURL prefers the operator-uploaded image over the catalog one.
func (c *Card) DisplayImageURL() string {
	if c.UploadedImageURL != "" {
		return c.UploadedImageURL
	}
	return c.ImageURL
}

// MarketPrice holds the single latest known market price for a card.
// At most one row exists per card; later observations update Price in
// place rather than inserting a second row.
type MarketPrice struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	CardID   uint            `json:"card_id" gorm:"uniqueIndex;not null"`
	Card     Card            `json:"card" gorm:"foreignKey:CardID"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Currency string          `json:"currency" gorm:"size:8"`
	Source   string          `json:"source" gorm:"size:64"` // e.g. cardmarket

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceHistory is one immutable, dated price observation. Every sync run
// that observes a price appends a row, even when the amount is unchanged
// from the previous entry; history is a time series of observations, not
// a set of distinct values.
type PriceHistory struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	CardID     uint            `json:"card_id" gorm:"index;not null"`
	Card       Card            `json:"card" gorm:"foreignKey:CardID"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	RecordedAt time.Time       `json:"recorded_at" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
}

// Sync run status values.
const (
	SyncRunRunning   = "running"
	SyncRunCompleted = "completed"
	SyncRunAborted   = "aborted" // a page fetch exhausted its retries
)

// SyncRun records one orchestrator invocation for operator visibility.
// An aborted run keeps everything committed up to the failed page.
type SyncRun struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RunID      string    `json:"run_id" gorm:"uniqueIndex;size:36"`
	Query      string    `json:"query" gorm:"size:500"`
	Status     string    `json:"status" gorm:"size:16;index"`
	Pages      int       `json:"pages"`
	Successes  int       `json:"successes"`
	Failures   int       `json:"failures"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
