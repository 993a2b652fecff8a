package db

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenImportedMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")

	if _, err := OpenImported(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("OpenImported created %s", path)
	}
}

func TestOpenImportedEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	conn, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.Close()

	if _, err := OpenImported(path); !errors.Is(err, ErrNotImported) {
		t.Fatalf("expected ErrNotImported, got %v", err)
	}
}

func TestOpenImported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prevalence.db")
	conn, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := ImportTable(context.Background(), conn, sampleTable(), 0, "test.xlsx"); err != nil {
		t.Fatalf("import: %v", err)
	}
	conn.Close()

	conn, err = OpenImported(path)
	if err != nil {
		t.Fatalf("open imported: %v", err)
	}
	defer conn.Close()
	if got, err := LookupPrevalence(conn, "abbey"); err != nil || got != 5.42 {
		t.Fatalf("abbey = %v, %v; want 5.42", got, err)
	}
}
