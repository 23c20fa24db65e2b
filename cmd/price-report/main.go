package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"tcg-market/internal/config"
	"tcg-market/internal/database"
	"tcg-market/internal/models"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
)

var (
	outPath = flag.String("out", "price-report.xlsx", "output workbook path")
	setName = flag.String("set", "", "restrict the report to one set")
	days    = flag.Int("days", 90, "how many days of history to include")
)

// price-report exports the observed price history into an Excel workbook:
// one Cards sheet with the current state, one History sheet with the raw
// observations.
func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var cards []models.Card
	q := db.Order("set_name, name")
	if *setName != "" {
		q = q.Where("set_name = ?", *setName)
	}
	if err := q.Find(&cards).Error; err != nil {
		log.Fatalf("failed to load cards: %v", err)
	}

	cardByID := make(map[uint]models.Card, len(cards))
	ids := make([]uint, 0, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
		ids = append(ids, c.ID)
	}

	var prices []models.MarketPrice
	if len(ids) > 0 {
		if err := db.Where("card_id IN ?", ids).Find(&prices).Error; err != nil {
			log.Fatalf("failed to load current prices: %v", err)
		}
	}
	priceByCard := make(map[uint]models.MarketPrice, len(prices))
	for _, p := range prices {
		priceByCard[p.CardID] = p
	}

	since := time.Now().AddDate(0, 0, -*days)
	var history []models.PriceHistory
	if len(ids) > 0 {
		if err := db.Where("card_id IN ? AND recorded_at >= ?", ids, since).
			Order("card_id, recorded_at").Find(&history).Error; err != nil {
			log.Fatalf("failed to load price history: %v", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Cards")
	headers := []string{"ID", "External ID", "Name", "Set", "Number", "Rarity", "Current Price", "Currency"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("Cards", cell, h)
	}
	for row, card := range cards {
		number := ""
		if card.Number != nil {
			number = *card.Number
		}
		values := []interface{}{card.ID, card.ExternalID, card.Name, card.SetName, number, string(card.Rarity), "", ""}
		if p, ok := priceByCard[card.ID]; ok {
			values[6], _ = p.Price.Float64()
			values[7] = p.Currency
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Cards", cell, v)
		}
	}

	f.NewSheet("History")
	histHeaders := []string{"Card", "Set", "Price", "Recorded At"}
	for i, h := range histHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue("History", cell, h)
	}
	for row, entry := range history {
		card := cardByID[entry.CardID]
		price, _ := entry.Price.Float64()
		values := []interface{}{card.Name, card.SetName, price, entry.RecordedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("History", cell, v)
		}
	}

	if err := f.SaveAs(*outPath); err != nil {
		log.Fatalf("failed to save workbook: %v", err)
	}
	fmt.Printf("wrote %s: %d cards, %d history rows\n", *outPath, len(cards), len(history))
}
