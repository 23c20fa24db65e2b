package models

import (
	"log"
	"strings"
)

// Rarity is the closed internal rarity taxonomy. Stored as a string enum
// column; UNKNOWN is the catch-all for labels the table cannot place.
type Rarity string

const (
	RarityCommon           Rarity = "COMMON"
	RarityUncommon         Rarity = "UNCOMMON"
	RarityRare             Rarity = "RARE"
	RarityHoloRare         Rarity = "HOLO_RARE"
	RarityDoubleRare       Rarity = "DOUBLE_RARE" // V, EX, GX base tiers
	RarityUltraRare        Rarity = "ULTRA_RARE"  // VMAX, VSTAR, full art
	RarityIllustrationRare Rarity = "ILLUSTRATION_RARE" // AR, SAR, CHR
	RaritySecretRare       Rarity = "SECRET_RARE"
	RarityPromo            Rarity = "PROMO"
	RarityUnknown          Rarity = "UNKNOWN"
)

// rarityByLabel maps the catalog provider's free-text rarity labels onto
// the internal taxonomy. The table is read-only after initialization; new
// provider tiers land in the substring fallback until the table is
// extended.
var rarityByLabel = map[string]Rarity{
	// base tiers
	"Common":   RarityCommon,
	"Uncommon": RarityUncommon,
	"Rare":     RarityRare,

	// holo tiers
	"Rare Holo":        RarityHoloRare,
	"Rare Holo Galaxy": RarityHoloRare,
	"Prism Rare":       RarityHoloRare,

	// double rare (V, EX, GX base tiers)
	"Double Rare":        RarityDoubleRare,
	"Rare Holo V":        RarityDoubleRare,
	"Rare Holo EX":       RarityDoubleRare,
	"Rare Holo GX":       RarityDoubleRare,
	"Classic Collection": RarityDoubleRare,

	// ultra rare (VMAX, VSTAR, full art)
	"Ultra Rare":      RarityUltraRare,
	"Rare Ultra":      RarityUltraRare,
	"Rare Holo VMAX":  RarityUltraRare,
	"Rare Holo VSTAR": RarityUltraRare,
	"Rare Holo LV.X":  RarityUltraRare,
	"LEGEND":          RarityUltraRare,
	"Rare Prime":      RarityUltraRare,
	"Rare BREAK":      RarityUltraRare,

	// illustration rare (AR, SAR, CHR)
	"Illustration Rare":         RarityIllustrationRare,
	"Special Illustration Rare": RarityIllustrationRare,
	"Trainer Gallery Rare Holo": RarityIllustrationRare,
	"Shiny Rare":                RarityIllustrationRare,

	// secret rare (gold, rainbow, over-numbered)
	"Secret Rare":  RaritySecretRare,
	"Hyper Rare":   RaritySecretRare,
	"Rainbow Rare": RaritySecretRare,
	"Gold Rare":    RaritySecretRare,
	"Rare Secret":  RaritySecretRare,
	"Rare Shining": RaritySecretRare,
	"Amazing Rare": RaritySecretRare,

	// promo
	"Promo": RarityPromo,
}

// ClassifyRarity maps a free-text rarity label from the catalog provider
// onto the internal taxonomy. Unmapped labels containing "Rare" fall back
// to the generic RARE tier so new provider tiers keep syncing before the
// table is updated; the label is logged for operator visibility. Never
// returns an error.
func ClassifyRarity(label string) Rarity {
	label = strings.TrimSpace(label)
	if label == "" {
		return RarityUnknown
	}

	if r, ok := rarityByLabel[label]; ok {
		return r
	}

	log.Printf("[RARITY] unmapped rarity label: %q", label)
	if strings.Contains(label, "Rare") {
		return RarityRare
	}
	return RarityUnknown
}
