package tcgio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SearchResponse is the envelope returned by GET /cards. Count and
// TotalCount are pointers because the server omits them on some
// responses; the orchestrator treats a missing count as a last page.
type SearchResponse struct {
	Data       []CardData `json:"data"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	Count      *int       `json:"count"`
	TotalCount *int       `json:"totalCount"`
}

// CardData is one raw card record as delivered by the catalog API. It is
// consumed during reconciliation and never persisted as-is.
type CardData struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Number     string          `json:"number"`
	Rarity     string          `json:"rarity"`
	Set        *SetData        `json:"set"`
	Images     *ImageData      `json:"images"`
	Cardmarket *CardmarketData `json:"cardmarket"`
}

type SetData struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Series string `json:"series"`
}

type ImageData struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// CardmarketData carries the European market price block. Amounts are
// implicitly EUR.
type CardmarketData struct {
	URL    string            `json:"url"`
	Prices *CardmarketPrices `json:"prices"`
}

type CardmarketPrices struct {
	TrendPrice *decimal.Decimal `json:"trendPrice"`
}

// TrendPrice returns the cardmarket trend amount, or nil when the record
// carries no price block. Absence of a price is not an error condition.
func (c *CardData) TrendPrice() *decimal.Decimal {
	if c.Cardmarket == nil || c.Cardmarket.Prices == nil {
		return nil
	}
	return c.Cardmarket.Prices.TrendPrice
}

// SearchFilter is a structured card search. Query serializes it into the
// catalog API's text syntax (set.id:xxx number:nnn name:yyy).
type SearchFilter struct {
	Name   string
	SetID  string
	Number string
}

// Query builds the search string. Field order follows remote index cost:
// set.id is the cheapest filter, then number, then name. When both set id
// and number are supplied the name is omitted entirely; the pair already
// uniquely constrains the search and dropping name keeps the remote query
// cheap. Names containing a space or '-' are quoted for phrase search.
func (f SearchFilter) Query() (string, error) {
	setID := strings.TrimSpace(f.SetID)
	number := strings.TrimSpace(f.Number)
	name := strings.TrimSpace(f.Name)

	var parts []string
	if setID != "" {
		parts = append(parts, "set.id:"+setID)
	}
	if number != "" {
		parts = append(parts, "number:"+number)
	}
	if name != "" && !(setID != "" && number != "") {
		if strings.Contains(name, " ") || strings.Contains(name, "-") {
			parts = append(parts, fmt.Sprintf("name:%q", name))
		} else {
			parts = append(parts, "name:"+name)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("search filter needs at least a name, set id or card number")
	}
	return strings.Join(parts, " "), nil
}
