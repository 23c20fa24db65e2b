package services

import (
	"tcg-market/internal/models"
)

// CardStore is the persistence collaborator the sync pipeline writes
// through. All operations are durable and immediately consistent within a
// single call. Find methods return (nil, nil) on a miss.
type CardStore interface {
	FindCardByExternalID(externalID string) (*models.Card, error)
	SaveCard(card *models.Card) error

	FindMarketPrice(cardID uint) (*models.MarketPrice, error)
	SaveMarketPrice(price *models.MarketPrice) error
	AppendPriceHistory(entry *models.PriceHistory) error

	CreateSyncRun(run *models.SyncRun) error
	UpdateSyncRun(run *models.SyncRun) error
}
