package db

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

var _ prevalence.Lookuper = (*CachedLookup)(nil)

func TestCachedLookup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if _, err := ImportTable(context.Background(), db, sampleTable(), 0, ""); err != nil {
		t.Fatalf("import: %v", err)
	}

	lk := NewCachedLookup(db)
	p, err := lk.PrevalenceFor("abbey")
	if err != nil || p != 5.42 {
		t.Fatalf("PrevalenceFor(abbey) = %v, %v", p, err)
	}
	if _, err := lk.PrevalenceFor("zzzznotaword"); !prevalence.IsWordNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if lk.Cached() != 2 {
		t.Fatalf("expected hit and miss cached, got %d", lk.Cached())
	}

	// Answers come from the cache once memoised.
	if _, err := db.Exec(`DELETE FROM entries`); err != nil {
		t.Fatalf("delete: %v", err)
	}
	p, err = lk.PrevalenceFor("abbey")
	if err != nil || p != 5.42 {
		t.Fatalf("cached PrevalenceFor(abbey) = %v, %v", p, err)
	}
	if _, err := lk.PrevalenceFor("zzzznotaword"); !prevalence.IsWordNotFound(err) {
		t.Fatalf("expected cached not found, got %v", err)
	}
}
