package services

import (
	"fmt"

	"tcg-market/internal/models"
	"tcg-market/internal/services/tcgio"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory CardStore. SaveCard can be made to fail for
// chosen external ids to exercise per-record failure handling.
type fakeStore struct {
	nextCardID  uint
	cards       map[string]*models.Card // keyed by external id
	prices      map[uint]*models.MarketPrice
	history     []models.PriceHistory
	runs        []*models.SyncRun
	failCardIDs map[string]bool

	cardSaves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards:       make(map[string]*models.Card),
		prices:      make(map[uint]*models.MarketPrice),
		failCardIDs: make(map[string]bool),
	}
}

func (s *fakeStore) FindCardByExternalID(externalID string) (*models.Card, error) {
	if card, ok := s.cards[externalID]; ok {
		return card, nil
	}
	return nil, nil
}

func (s *fakeStore) SaveCard(card *models.Card) error {
	if s.failCardIDs[card.ExternalID] {
		return fmt.Errorf("forced failure for %s", card.ExternalID)
	}
	if card.ID == 0 {
		s.nextCardID++
		card.ID = s.nextCardID
	}
	s.cards[card.ExternalID] = card
	s.cardSaves++
	return nil
}

func (s *fakeStore) FindMarketPrice(cardID uint) (*models.MarketPrice, error) {
	if p, ok := s.prices[cardID]; ok {
		return p, nil
	}
	return nil, nil
}

func (s *fakeStore) SaveMarketPrice(price *models.MarketPrice) error {
	if price.ID == 0 {
		price.ID = uint(len(s.prices) + 1)
	}
	s.prices[price.CardID] = price
	return nil
}

func (s *fakeStore) AppendPriceHistory(entry *models.PriceHistory) error {
	s.history = append(s.history, *entry)
	return nil
}

func (s *fakeStore) CreateSyncRun(run *models.SyncRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *fakeStore) UpdateSyncRun(run *models.SyncRun) error {
	return nil
}

func (s *fakeStore) historyFor(cardID uint) []models.PriceHistory {
	var out []models.PriceHistory
	for _, h := range s.history {
		if h.CardID == cardID {
			out = append(out, h)
		}
	}
	return out
}

// fakeFetcher serves a fixed sequence of pages. Setting errPage makes the
// fetch of that page fail, as if the client exhausted its retries.
type fakeFetcher struct {
	pages   []*tcgio.SearchResponse
	errPage int
	calls   int
}

func (f *fakeFetcher) FetchPage(query string, page, pageSize int) (*tcgio.SearchResponse, error) {
	f.calls++
	if f.errPage != 0 && page == f.errPage {
		return nil, fmt.Errorf("retries exhausted for page %d", page)
	}
	if page < 1 || page > len(f.pages) {
		return &tcgio.SearchResponse{Page: page, PageSize: pageSize}, nil
	}
	return f.pages[page-1], nil
}

func record(id, name string) tcgio.CardData {
	return tcgio.CardData{
		ID:     id,
		Name:   name,
		Number: "7",
		Rarity: "Rare Holo",
		Set:    &tcgio.SetData{ID: "sv3pt5", Name: "151"},
	}
}

func recordWithPrice(id, name, amount string) tcgio.CardData {
	rec := record(id, name)
	price := decimal.RequireFromString(amount)
	rec.Cardmarket = &tcgio.CardmarketData{Prices: &tcgio.CardmarketPrices{TrendPrice: &price}}
	return rec
}

func page(total *int, records ...tcgio.CardData) *tcgio.SearchResponse {
	count := len(records)
	return &tcgio.SearchResponse{
		Data:       records,
		Count:      &count,
		TotalCount: total,
	}
}

func intPtr(n int) *int { return &n }
