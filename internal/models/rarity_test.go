package models

import "testing"

func TestClassifyRarity(t *testing.T) {
	tests := []struct {
		label string
		want  Rarity
	}{
		// exact table matches
		{"Common", RarityCommon},
		{"Uncommon", RarityUncommon},
		{"Rare", RarityRare},
		{"Rare Holo", RarityHoloRare},
		{"Prism Rare", RarityHoloRare},
		{"Double Rare", RarityDoubleRare},
		{"Rare Holo V", RarityDoubleRare},
		{"Rare Holo VMAX", RarityUltraRare},
		{"LEGEND", RarityUltraRare},
		{"Special Illustration Rare", RarityIllustrationRare},
		{"Hyper Rare", RaritySecretRare},
		{"Amazing Rare", RaritySecretRare},
		{"Promo", RarityPromo},

		// whitespace is trimmed before lookup
		{"  Common  ", RarityCommon},

		// unmapped labels containing "Rare" fall back to the generic tier
		{"Something Totally New Rare", RarityRare},
		{"Mega Rare Deluxe", RarityRare},

		// the fallback is case-sensitive on purpose
		{"something totally new rare", RarityUnknown},

		// empty and unrecognized labels
		{"", RarityUnknown},
		{"   ", RarityUnknown},
		{"Mythic", RarityUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyRarity(tt.label); got != tt.want {
			t.Errorf("ClassifyRarity(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}
