package services

import (
	"fmt"
	"time"

	"tcg-market/internal/models"

	"github.com/shopspring/decimal"
)

// priceSource names where observed amounts come from. The catalog API's
// price block is the European cardmarket feed.
const priceSource = "cardmarket"

// PriceLedger maintains the single current-price row per card and the
// append-only observation history. For every non-absent observation both
// writes happen together: the current price is created or updated in
// place, and one dated history entry is appended unconditionally — even
// when the amount is unchanged.
type PriceLedger struct {
	store CardStore
	now   func() time.Time
}

func NewPriceLedger(store CardStore) *PriceLedger {
	return &PriceLedger{store: store, now: time.Now}
}

// Record persists one price observation for a card. A nil amount is a
// successful no-op; records without a price block are normal.
func (l *PriceLedger) Record(card *models.Card, amount *decimal.Decimal, currency string) error {
	if amount == nil {
		return nil
	}

	current, err := l.store.FindMarketPrice(card.ID)
	if err != nil {
		return fmt.Errorf("lookup current price for card %d: %w", card.ID, err)
	}

	if current == nil {
		current = &models.MarketPrice{
			CardID:   card.ID,
			Price:    *amount,
			Currency: currency,
			Source:   priceSource,
		}
	} else {
		current.Price = *amount
	}
	if err := l.store.SaveMarketPrice(current); err != nil {
		return fmt.Errorf("save current price for card %d: %w", card.ID, err)
	}

	entry := &models.PriceHistory{
		CardID:     card.ID,
		Price:      *amount,
		RecordedAt: l.now(),
	}
	if err := l.store.AppendPriceHistory(entry); err != nil {
		return fmt.Errorf("append price history for card %d: %w", card.ID, err)
	}

	return nil
}
