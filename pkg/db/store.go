package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ImportTable replaces the stored entries with the rows of table, in source order.
// source is recorded alongside the import for provenance and may be empty.
//
// Rows are batched into entries_staging first and swapped into entries in a
// single transaction, so a failed import leaves the previous rows and import
// record untouched.
func ImportTable(ctx context.Context, conn *sql.DB, table *prevalence.Table, batchSize int, source string) (int, error) {
	if _, err := conn.ExecContext(ctx, `DELETE FROM entries_staging`); err != nil {
		return 0, fmt.Errorf("clear staging: %w", err)
	}

	bw := NewBatchWriter(ctx, conn, "entries_staging", batchSize)
	for _, e := range table.Entries() {
		if err := bw.Submit(e); err != nil {
			break
		}
		if bw.Err() != nil {
			break
		}
	}
	if err := bw.Close(); err != nil {
		// Background context: ctx may be the reason the import failed.
		_, _ = conn.ExecContext(context.Background(), `DELETE FROM entries_staging`)
		return 0, err
	}

	n := bw.Written()
	if err := swapStaging(ctx, conn, source, n); err != nil {
		_, _ = conn.ExecContext(context.Background(), `DELETE FROM entries_staging`)
		return 0, err
	}
	return n, nil
}

func swapStaging(ctx context.Context, conn *sql.DB, source string, n int) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin swap tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO entries (word, prevalence, pknown, nobs, freq_zipf_us)
		SELECT word, prevalence, pknown, nobs, freq_zipf_us FROM entries_staging ORDER BY id`); err != nil {
		return fmt.Errorf("copy staged entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries_staging`); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, entry_count, imported_at) VALUES (?, ?, ?)`,
		source, n, time.Now(),
	); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// LookupEntry returns the first stored entry whose word equals word exactly.
func LookupEntry(db DBExecutor, word string) (prevalence.Entry, error) {
	var e prevalence.Entry
	var pknown, zipf sql.NullFloat64
	var nobs sql.NullInt64
	err := db.QueryRow(
		`SELECT word, prevalence, pknown, nobs, freq_zipf_us FROM entries WHERE word = ? ORDER BY id LIMIT 1`,
		word,
	).Scan(&e.Word, &e.Prevalence, &pknown, &nobs, &zipf)
	if err == sql.ErrNoRows {
		return prevalence.Entry{}, &prevalence.WordNotFoundError{Word: word}
	}
	if err != nil {
		return prevalence.Entry{}, fmt.Errorf("lookup %q: %w", word, err)
	}
	e.PKnown = pknown.Float64
	e.Nobs = int(nobs.Int64)
	e.FreqZipfUS = zipf.Float64
	return e, nil
}

// LookupPrevalence returns the prevalence of the first stored entry for word.
func LookupPrevalence(db DBExecutor, word string) (float64, error) {
	e, err := LookupEntry(db, word)
	if err != nil {
		return 0, err
	}
	return e.Prevalence, nil
}

// HasWord reports whether any stored entry has exactly this word.
func HasWord(db DBExecutor, word string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM entries WHERE word = ? LIMIT 1`, word).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountEntries returns the number of stored rows, duplicates included.
func CountEntries(db DBExecutor) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// LastImport returns when the entries were last imported and from where.
// ok is false if nothing has been imported yet.
func LastImport(db DBExecutor) (source string, at time.Time, ok bool, err error) {
	var src sql.NullString
	err = db.QueryRow(`SELECT source, imported_at FROM imports ORDER BY id DESC LIMIT 1`).Scan(&src, &at)
	if err == sql.ErrNoRows {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, err
	}
	return src.String, at, true, nil
}
