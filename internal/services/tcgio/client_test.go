package tcgio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testEnvelope = `{
	"data": [
		{
			"id": "sv3pt5-7",
			"name": "Squirtle",
			"number": "7",
			"rarity": "Common",
			"set": {"id": "sv3pt5", "name": "151", "series": "Scarlet & Violet"},
			"cardmarket": {"prices": {"trendPrice": 0.21}}
		},
		{
			"id": "sv3pt5-6",
			"name": "Charizard ex",
			"number": "6",
			"rarity": "Double Rare"
		}
	],
	"page": 1,
	"pageSize": 250,
	"count": 2,
	"totalCount": 207
}`

func TestFetchPage(t *testing.T) {
	var gotQuery, gotPage, gotPageSize, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotPage = r.URL.Query().Get("page")
		gotPageSize = r.URL.Query().Get("pageSize")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, testEnvelope)
	}))
	defer server.Close()

	client := newClient(server.URL, "test-key", time.Millisecond)
	// pageSize above the API maximum must be clamped before the request.
	resp, err := client.FetchPage("set.id:sv3pt5", 1, 9999)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if gotQuery != "set.id:sv3pt5" || gotPage != "1" || gotPageSize != "250" {
		t.Errorf("request params = q:%q page:%s pageSize:%s", gotQuery, gotPage, gotPageSize)
	}
	if gotKey != "test-key" {
		t.Errorf("X-Api-Key = %q, want test-key", gotKey)
	}

	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	if resp.TotalCount == nil || *resp.TotalCount != 207 {
		t.Errorf("TotalCount = %v, want 207", resp.TotalCount)
	}
	if resp.Count == nil || *resp.Count != 2 {
		t.Errorf("Count = %v, want 2", resp.Count)
	}

	squirtle := resp.Data[0]
	if squirtle.Set == nil || squirtle.Set.Name != "151" {
		t.Errorf("Set = %v, want name 151", squirtle.Set)
	}
	if p := squirtle.TrendPrice(); p == nil || p.String() != "0.21" {
		t.Errorf("TrendPrice = %v, want 0.21", p)
	}
	if resp.Data[1].TrendPrice() != nil {
		t.Error("record without a cardmarket block reported a price")
	}
}

func TestFetchPageRetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, testEnvelope)
	}))
	defer server.Close()

	client := newClient(server.URL, "test-key", time.Millisecond)
	resp, err := client.FetchPage("set.id:sv3pt5", 1, 250)
	if err != nil {
		t.Fatalf("FetchPage after retries: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("request attempts = %d, want 3", got)
	}
	if len(resp.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(resp.Data))
	}
}

func TestFetchPageExhaustsRetries(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClient(server.URL, "test-key", time.Millisecond)
	if _, err := client.FetchPage("set.id:sv3pt5", 1, 250); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if got := atomic.LoadInt32(&hits); got != maxAttempts {
		t.Errorf("request attempts = %d, want %d", got, maxAttempts)
	}
}

func TestFetchPageDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newClient(server.URL, "test-key", time.Millisecond)
	if _, err := client.FetchPage("q:::malformed", 1, 250); err == nil {
		t.Fatal("expected an error for a 4xx response")
	}
	// A malformed query cannot succeed on retry.
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("request attempts = %d, want 1", got)
	}
}
