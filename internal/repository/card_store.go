package repository

import (
	"errors"

	"tcg-market/internal/models"

	"gorm.io/gorm"
)

// CardStore is the MySQL-backed persistence collaborator for the sync
// pipeline. It satisfies services.CardStore.
type CardStore struct {
	db *gorm.DB
}

func NewCardStore(db *gorm.DB) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) FindCardByExternalID(externalID string) (*models.Card, error) {
	var card models.Card
	err := s.db.Where("external_id = ?", externalID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardStore) SaveCard(card *models.Card) error {
	return s.db.Save(card).Error
}

func (s *CardStore) FindMarketPrice(cardID uint) (*models.MarketPrice, error) {
	var price models.MarketPrice
	err := s.db.Where("card_id = ?", cardID).First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (s *CardStore) SaveMarketPrice(price *models.MarketPrice) error {
	return s.db.Save(price).Error
}

func (s *CardStore) AppendPriceHistory(entry *models.PriceHistory) error {
	return s.db.Create(entry).Error
}

func (s *CardStore) CreateSyncRun(run *models.SyncRun) error {
	return s.db.Create(run).Error
}

func (s *CardStore) UpdateSyncRun(run *models.SyncRun) error {
	return s.db.Save(run).Error
}
