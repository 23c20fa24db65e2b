package services

import (
	"fmt"
	"log"
	"strings"

	"tcg-market/internal/models"
	"tcg-market/internal/services/tcgio"
)

// Overrides carries optional operator-supplied values intended for exactly
// one record of a sync run: an uploaded image URL and an asking price that
// a human attaches alongside a broader catalog query. A nil field means
// "not supplied"; an override is only ever applied when it is present and
// non-blank, so an absent source value can never clobber an existing one.
type Overrides struct {
	ImageURL  *string
	SalePrice *int64
}

func (o Overrides) HasImageURL() bool {
	return o.ImageURL != nil && strings.TrimSpace(*o.ImageURL) != ""
}

func (o Overrides) HasSalePrice() bool {
	return o.SalePrice != nil
}

func (o Overrides) Empty() bool {
	return !o.HasImageURL() && !o.HasSalePrice()
}

// Reconciler decides, for one incoming catalog record, whether to create a
// new canonical card or reuse the existing one. Lookup is keyed solely on
// the record's external id.
type Reconciler struct {
	store CardStore
}

func NewReconciler(store CardStore) *Reconciler {
	return &Reconciler{store: store}
}

// Upsert reconciles one raw record. On a miss it constructs a new card
// with sentinel defaults for absent optional fields and persists it; on a
// hit the existing card is reused unchanged except for override
// application. Returns the persisted card and whether it was created.
func (r *Reconciler) Upsert(record tcgio.CardData, overrides Overrides) (*models.Card, bool, error) {
	if record.ID == "" {
		return nil, false, fmt.Errorf("record has no external id (name %q)", record.Name)
	}

	card, err := r.store.FindCardByExternalID(record.ID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup by external id %s: %w", record.ID, err)
	}

	if card == nil {
		card = newCardFromRecord(record, overrides)
		if err := r.store.SaveCard(card); err != nil {
			return nil, false, fmt.Errorf("create card %s: %w", record.ID, err)
		}
		return card, true, nil
	}

	changed := false
	if overrides.HasImageURL() {
		card.UploadedImageURL = *overrides.ImageURL
		changed = true
		log.Printf("[SYNC] applied uploaded image to card %d (%s)", card.ID, card.ExternalID)
	}
	if overrides.HasSalePrice() {
		card.SalePrice = overrides.SalePrice
		changed = true
		log.Printf("[SYNC] applied sale price to card %d (%s)", card.ID, card.ExternalID)
	}
	if changed {
		if err := r.store.SaveCard(card); err != nil {
			return nil, false, fmt.Errorf("update card %s: %w", record.ID, err)
		}
	}

	return card, false, nil
}

func newCardFromRecord(record tcgio.CardData, overrides Overrides) *models.Card {
	setName := models.UnknownSetName
	if record.Set != nil && record.Set.Name != "" {
		setName = record.Set.Name
	}

	var number *string
	if record.Number != "" {
		n := record.Number
		number = &n
	}

	card := &models.Card{
		ExternalID: record.ID,
		Name:       record.Name,
		SetName:    setName,
		Number:     number,
		Rarity:     models.ClassifyRarity(record.Rarity),
	}
	if overrides.HasImageURL() {
		card.UploadedImageURL = *overrides.ImageURL
	}
	if overrides.HasSalePrice() {
		card.SalePrice = overrides.SalePrice
	}
	return card
}
