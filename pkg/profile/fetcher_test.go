package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>The Old Abbey</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>The Old Abbey</h1>
<p>The abbey stood on the hill for centuries, and the monks who lived there kept bees and brewed ale for the village below.</p>
<p>Every spring the abbey opened its gardens, and the villagers stood among the herbs while the abbot read from the old books.</p>
<p>Nobody remembers when the last monk left the abbey, but the stones still stood when the railway came through the valley.</p>
</article>
</body></html>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	a, err := NewFetcher(5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(a.Title, "Abbey") {
		t.Errorf("unexpected title %q", a.Title)
	}
	if !strings.Contains(a.Text, "monks who lived there") {
		t.Errorf("article text missing body:\n%s", a.Text)
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewFetcher(5*time.Second).Fetch(context.Background(), srv.URL); err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked response: no Content-Length, so the read limit must catch it.
		w.(http.Flusher).Flush()
		w.Write([]byte(strings.Repeat("a", 2048)))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	f.MaxBodySize = 1024
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil || !strings.Contains(err.Error(), "maximum size") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestProfileURLs(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	urls := []string{srv.URL + "/ok", srv.URL + "/missing", srv.URL + "/ok"}
	results := ProfileURLs(context.Background(), NewFetcher(5*time.Second), testTable(), urls, 2)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if hits.Load() != 3 {
		t.Errorf("expected 3 requests, got %d", hits.Load())
	}
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("result %d out of order: %s", i, r.URL)
		}
	}
	if results[1].Err == nil {
		t.Error("expected error for /missing")
	}
	for _, i := range []int{0, 2} {
		r := results[i]
		if r.Err != nil {
			t.Fatalf("result %d: %v", i, r.Err)
		}
		if r.Report.Known == 0 || r.Report.Tokens <= r.Report.Known {
			t.Errorf("result %d: unexpected report %+v", i, r.Report)
		}
	}
}

func TestProfileURLs_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ProfileURLs(ctx, NewFetcher(time.Second), testTable(), []string{"http://127.0.0.1:1/a"}, 1)
	if results[0].Err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", results[0].Err)
	}
}
