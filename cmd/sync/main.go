package main

import (
	"flag"
	"log"

	"tcg-market/internal/config"
	"tcg-market/internal/database"
	"tcg-market/internal/repository"
	"tcg-market/internal/services"
	"tcg-market/internal/services/tcgio"

	"github.com/joho/godotenv"
)

var (
	rawQuery  = flag.String("query", "", "pre-serialized search query (e.g. \"set.id:sv3pt5\")")
	name      = flag.String("name", "", "card name filter")
	setID     = flag.String("set", "", "set id filter (e.g. sv3pt5)")
	number    = flag.String("number", "", "card number filter")
	imageURL  = flag.String("image-url", "", "uploaded image URL for the first matched card")
	salePrice = flag.Int64("sale-price", 0, "asking price (KRW) for the first matched card")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	query := *rawQuery
	if query == "" {
		filter := tcgio.SearchFilter{Name: *name, SetID: *setID, Number: *number}
		q, err := filter.Query()
		if err != nil {
			log.Fatalf("invalid filter: %v", err)
		}
		query = q
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store := repository.NewCardStore(db)
	catalog := tcgio.NewClient(cfg.TCGAPIBaseURL, cfg.TCGAPIKey)
	syncSvc := services.NewSyncService(catalog, store, cfg.SyncPageSize, cfg.SyncPageDelay)

	var overrides services.Overrides
	if *imageURL != "" {
		overrides.ImageURL = imageURL
	}
	if *salePrice > 0 {
		overrides.SalePrice = salePrice
	}

	summary := syncSvc.Run(query, overrides)
	if summary.Aborted {
		log.Printf("run aborted at page %d; committed work is kept", summary.Pages+1)
	}
	log.Printf("done. pages: %d, success: %d, failed: %d", summary.Pages, summary.Successes, summary.Failures)
}
