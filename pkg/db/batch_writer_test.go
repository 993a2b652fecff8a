package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

func TestBatchWriterTransactions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bw := NewBatchWriter(context.Background(), db, "entries", 2)
	for _, w := range []string{"a", "b", "c"} {
		if err := bw.Submit(prevalence.Entry{Word: w, Prevalence: 1}); err != nil {
			t.Fatalf("submit %s: %v", w, err)
		}
	}

	// Close and wait for pending batches to be committed. Use a timeout to avoid hanging tests.
	doneCh := make(chan error, 1)
	go func() {
		doneCh <- bw.Close()
	}()
	select {
	case err := <-doneCh:
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for batch commit/close")
	}

	if bw.Written() != 3 {
		t.Fatalf("Written() = %d; want 3", bw.Written())
	}

	rows, err := db.Query("SELECT word FROM entries ORDER BY id")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	defer rows.Close()
	var got []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, w)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected rows in submission order, got %v", got)
	}
}

func TestBatchWriterRollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// A trigger makes the second insert of the first batch fail.
	if _, err := db.Exec(`CREATE TRIGGER reject_bad BEFORE INSERT ON entries
		WHEN NEW.word = 'bad' BEGIN SELECT RAISE(ABORT, 'rejected'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	var mu sync.Mutex
	var errs []error
	bw := NewBatchWriter(context.Background(), db, "entries", 2)
	bw.OnError = func(e error) {
		mu.Lock()
		errs = append(errs, e)
		mu.Unlock()
	}
	bw.Submit(prevalence.Entry{Word: "good", Prevalence: 1})
	bw.Submit(prevalence.Entry{Word: "bad", Prevalence: 1})
	bw.Submit(prevalence.Entry{Word: "later", Prevalence: 1})

	if err := bw.Close(); err == nil {
		t.Fatal("expected error from Close")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected failed batch rolled back and later batches dropped, got %d rows", count)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one OnError call, got %d", len(errs))
	}
}

func TestBatchWriterClosed(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bw := NewBatchWriter(context.Background(), db, "entries", 10)
	if err := bw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := bw.Submit(prevalence.Entry{Word: "x"}); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("expected ErrBatchWriterClosed, got %v", err)
	}
	if err := bw.Close(); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("expected ErrBatchWriterClosed on second close, got %v", err)
	}
}
