package services

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyConverter produces display-currency amounts from provider
// amounts. The sync path never converts; it records amounts in the source
// currency (EUR from the catalog provider). Only presentation-side
// callers use this, with a fixed injected rate — rate sourcing is out of
// scope.
type CurrencyConverter struct {
	eurToUSD decimal.Decimal
}

func NewCurrencyConverter(eurToUSDRate string) *CurrencyConverter {
	rate, err := decimal.NewFromString(eurToUSDRate)
	if err != nil || rate.IsZero() {
		log.Printf("[CURRENCY] invalid EUR->USD rate %q, using 1.10", eurToUSDRate)
		rate = decimal.NewFromFloat(1.10)
	}
	return &CurrencyConverter{eurToUSD: rate}
}

// ToUSD converts an amount in the given currency to USD, rounded half-up
// to 2 decimal places. Unknown or missing currencies are assumed EUR,
// matching the provider default.
func (c *CurrencyConverter) ToUSD(amount decimal.Decimal, currency string) decimal.Decimal {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "USD":
		return amount
	default:
		return amount.Mul(c.eurToUSD).Round(2)
	}
}
