package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tcg-market/internal/config"
	"tcg-market/internal/database"
	"tcg-market/internal/repository"
	"tcg-market/internal/services"
	"tcg-market/internal/services/tcgio"

	"github.com/joho/godotenv"
)

var (
	syncHour = flag.Int("hour", 4, "local hour of day to run the daily sync")
	runNow   = flag.Bool("now", false, "run one sync immediately on startup")
)

// The daily batch targets the configured query list instead of sweeping
// the whole catalog; a full sweep would burn the provider's rate limit.
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

	store := repository.NewCardStore(db)
	catalog := tcgio.NewClient(cfg.TCGAPIBaseURL, cfg.TCGAPIKey)
	syncSvc := services.NewSyncService(catalog, store, cfg.SyncPageSize, cfg.SyncPageDelay)

	queries := splitQueries(cfg.SyncQueries)
	if len(queries) == 0 {
		log.Fatal("SYNC_QUERIES is empty; nothing to schedule")
	}

	log.Printf("[Scheduler] daily price sync daemon started (PID %d), %d queries, fires at %02d:00", os.Getpid(), len(queries), *syncHour)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *runNow {
		runBatch(syncSvc, queries)
	}

	for {
		wait := untilNextRun(time.Now(), *syncHour)
		log.Printf("[Scheduler] next sync in %v", wait.Round(time.Second))

		select {
		case <-sigChan:
			log.Println("[Scheduler] shutdown signal received, exiting")
			return
		case <-time.After(wait):
			runBatch(syncSvc, queries)
		}
	}
}

func runBatch(syncSvc *services.SyncService, queries []string) {
	log.Println("[Scheduler] starting daily price sync batch")
	start := time.Now()

	for _, query := range queries {
		summary := syncSvc.Run(query, services.Overrides{})
		log.Printf("[Scheduler] query %q: pages %d, success %d, failed %d, aborted %v",
			query, summary.Pages, summary.Successes, summary.Failures, summary.Aborted)
	}

	log.Printf("[Scheduler] batch finished in %v", time.Since(start).Round(time.Millisecond))
}

func untilNextRun(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func splitQueries(s string) []string {
	var out []string
	for _, q := range strings.Split(s, ",") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
