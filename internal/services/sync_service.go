package services

import (
	"log"
	"strings"
	"time"

	"tcg-market/internal/models"
	"tcg-market/internal/services/tcgio"

	"github.com/google/uuid"
)

// PageFetcher is the catalog client seen by the orchestrator. Implemented
// by tcgio.Client.
type PageFetcher interface {
	FetchPage(query string, page, pageSize int) (*tcgio.SearchResponse, error)
}

// Progress is emitted after every processed page. The ops API fans these
// out to websocket subscribers.
type Progress struct {
	RunID     string `json:"run_id"`
	Query     string `json:"query"`
	Page      int    `json:"page"`
	Successes int    `json:"successes"`
	Failures  int    `json:"failures"`
	Status    string `json:"status"`
}

// SyncSummary is the aggregate outcome of one run. Partial failures never
// make a run an error: a run that commits 9 of 10 records is a completed
// run with one recorded failure. Aborted is set only when a page fetch
// exhausted its retries; everything committed before that page stays.
type SyncSummary struct {
	RunID      string    `json:"run_id"`
	Query      string    `json:"query"`
	Pages      int       `json:"pages"`
	Successes  int       `json:"successes"`
	Failures   int       `json:"failures"`
	Aborted    bool      `json:"aborted"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncService drives the page-by-page fetch loop for a search query and
// feeds every returned record through reconciliation and the price
// ledger. One run is single-threaded: fetches never overlap and the only
// suspension points are the HTTP call and the inter-page delay.
type SyncService struct {
	fetcher    PageFetcher
	store      CardStore
	reconciler *Reconciler
	ledger     *PriceLedger

	pageSize   int
	pageDelay  time.Duration
	sleep      func(time.Duration)
	onProgress func(Progress)
}

func NewSyncService(fetcher PageFetcher, store CardStore, pageSize int, pageDelay time.Duration) *SyncService {
	if pageSize <= 0 || pageSize > tcgio.MaxPageSize {
		pageSize = tcgio.MaxPageSize
	}
	return &SyncService{
		fetcher:    fetcher,
		store:      store,
		reconciler: NewReconciler(store),
		ledger:     NewPriceLedger(store),
		pageSize:   pageSize,
		pageDelay:  pageDelay,
		sleep:      time.Sleep,
	}
}

// SetProgressFunc registers an optional per-page progress callback.
func (s *SyncService) SetProgressFunc(fn func(Progress)) {
	s.onProgress = fn
}

// Run synchronizes every card matching query. The overrides are applied
// to at most the first record of the run whose reconciliation commits;
// subsequent records never receive them.
func (s *SyncService) Run(query string, overrides Overrides) SyncSummary {
	run := &models.SyncRun{
		RunID:     uuid.NewString(),
		Query:     query,
		Status:    models.SyncRunRunning,
		StartedAt: time.Now(),
	}
	if err := s.store.CreateSyncRun(run); err != nil {
		log.Printf("[SYNC] could not record sync run: %v", err)
	}

	log.Printf("[SYNC] starting price sync, query: %s (run %s)", query, run.RunID)
	if strings.Contains(query, "name:") && !strings.Contains(query, "set.id:") {
		log.Printf("[SYNC] broad query detected: %s — consider constraining to a set (e.g. name:pikachu set.id:sv3pt5)", query)
	}

	summary := SyncSummary{RunID: run.RunID, Query: query, StartedAt: run.StartedAt}
	overrideApplied := false

	page := 1
	for {
		// Respect the provider's implicit rate limit; page 1 goes out
		// immediately.
		if page > 1 {
			s.sleep(s.pageDelay)
		}

		resp, err := s.fetcher.FetchPage(query, page, s.pageSize)
		if err != nil {
			// The run stops at the last successfully fetched page instead
			// of rolling anything back.
			log.Printf("[SYNC] page %d fetch failed, stopping run: %v", page, err)
			summary.Aborted = true
			break
		}
		if resp == nil || len(resp.Data) == 0 {
			log.Printf("[SYNC] page %d is empty, done", page)
			break
		}

		pageSuccesses, pageFailures := 0, 0
		for i := range resp.Data {
			record := resp.Data[i]

			recOverrides := Overrides{}
			if !overrideApplied && !overrides.Empty() {
				recOverrides = overrides
			}

			card, _, err := s.reconciler.Upsert(record, recOverrides)
			if err != nil {
				pageFailures++
				log.Printf("[SYNC] record failed - id: %s, name: %s: %v", record.ID, record.Name, err)
				continue
			}
			if !recOverrides.Empty() {
				overrideApplied = true
			}

			if err := s.ledger.Record(card, record.TrendPrice(), "EUR"); err != nil {
				pageFailures++
				log.Printf("[SYNC] price record failed - id: %s: %v", record.ID, err)
				continue
			}
			pageSuccesses++
		}

		summary.Pages++
		summary.Successes += pageSuccesses
		summary.Failures += pageFailures
		log.Printf("[SYNC] page %d done. success: %d, failed: %d", page, pageSuccesses, pageFailures)

		s.reportProgress(run.RunID, query, page, summary)
		s.checkpointRun(run, summary, models.SyncRunRunning)

		if resp.TotalCount != nil && page*s.pageSize >= *resp.TotalCount {
			log.Printf("[SYNC] covered reported total of %d records", *resp.TotalCount)
			break
		}
		if resp.Count == nil || *resp.Count < s.pageSize {
			log.Printf("[SYNC] last page reached")
			break
		}
		page++
	}

	summary.FinishedAt = time.Now()
	status := models.SyncRunCompleted
	if summary.Aborted {
		status = models.SyncRunAborted
	}
	s.checkpointRun(run, summary, status)
	s.reportProgress(run.RunID, query, summary.Pages, summary)

	log.Printf("[SYNC] run %s finished (%s). total success: %d, total failed: %d",
		run.RunID, status, summary.Successes, summary.Failures)
	return summary
}

func (s *SyncService) reportProgress(runID, query string, page int, summary SyncSummary) {
	if s.onProgress == nil {
		return
	}
	status := models.SyncRunRunning
	if !summary.FinishedAt.IsZero() {
		status = models.SyncRunCompleted
		if summary.Aborted {
			status = models.SyncRunAborted
		}
	}
	s.onProgress(Progress{
		RunID:     runID,
		Query:     query,
		Page:      page,
		Successes: summary.Successes,
		Failures:  summary.Failures,
		Status:    status,
	})
}

func (s *SyncService) checkpointRun(run *models.SyncRun, summary SyncSummary, status string) {
	run.Status = status
	run.Pages = summary.Pages
	run.Successes = summary.Successes
	run.Failures = summary.Failures
	if !summary.FinishedAt.IsZero() {
		t := summary.FinishedAt
		run.FinishedAt = &t
	}
	if err := s.store.UpdateSyncRun(run); err != nil {
		log.Printf("[SYNC] could not update sync run %s: %v", run.RunID, err)
	}
}
