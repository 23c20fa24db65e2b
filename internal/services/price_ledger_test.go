package services

import (
	"testing"
	"time"

	"tcg-market/internal/models"

	"github.com/shopspring/decimal"
)

func TestRecordNilAmountIsNoop(t *testing.T) {
	store := newFakeStore()
	ledger := NewPriceLedger(store)
	card := &models.Card{ID: 1, ExternalID: "sv3pt5-7"}

	if err := ledger.Record(card, nil, "EUR"); err != nil {
		t.Fatalf("Record(nil): %v", err)
	}
	if len(store.prices) != 0 || len(store.history) != 0 {
		t.Errorf("no-op wrote rows: %d prices, %d history", len(store.prices), len(store.history))
	}
}

func TestRecordKeepsSingleCurrentPrice(t *testing.T) {
	store := newFakeStore()
	ledger := NewPriceLedger(store)
	card := &models.Card{ID: 3, ExternalID: "sv3pt5-7"}

	first := decimal.RequireFromString("12.50")
	if err := ledger.Record(card, &first, "EUR"); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	created := store.prices[card.ID]
	if created == nil {
		t.Fatal("first observation did not create a current price")
	}

	second := decimal.RequireFromString("13.75")
	if err := ledger.Record(card, &second, "EUR"); err != nil {
		t.Fatalf("second Record: %v", err)
	}

	if len(store.prices) != 1 {
		t.Fatalf("current price rows = %d, want exactly 1", len(store.prices))
	}
	updated := store.prices[card.ID]
	if updated.ID != created.ID {
		t.Errorf("second observation created row %d instead of updating row %d", updated.ID, created.ID)
	}
	if !updated.Price.Equal(second) {
		t.Errorf("current price = %s, want %s", updated.Price, second)
	}
}

func TestRecordAlwaysAppendsHistory(t *testing.T) {
	store := newFakeStore()
	ledger := NewPriceLedger(store)
	ledger.now = func() time.Time { return time.Date(2026, 8, 29, 4, 0, 0, 0, time.UTC) }
	card := &models.Card{ID: 5, ExternalID: "sv3pt5-7"}

	// Identical amounts must still each leave an observation: history is
	// a time series, not a deduplicated set.
	amount := decimal.RequireFromString("9.99")
	for i := 0; i < 3; i++ {
		if err := ledger.Record(card, &amount, "EUR"); err != nil {
			t.Fatalf("Record #%d: %v", i+1, err)
		}
	}

	entries := store.historyFor(card.ID)
	if len(entries) != 3 {
		t.Fatalf("history rows = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if !e.Price.Equal(amount) {
			t.Errorf("history amount = %s, want %s", e.Price, amount)
		}
		if e.RecordedAt.IsZero() {
			t.Error("history entry has no observation date")
		}
	}
}
