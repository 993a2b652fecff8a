package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

// BatchWriter buffers entries and inserts them in batches, one transaction per batch.
// Batches are committed in submission order by a single goroutine, so row ids
// follow the order entries were submitted in.
type BatchWriter struct {
	mu     sync.Mutex
	buf    []prevalence.Entry
	cap    int
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	insert string

	commitCh chan []prevalence.Entry
	db       *sql.DB
	OnError  func(error)

	written atomic.Int64

	// lastErr stores the first asynchronous error seen by the writer. Protected by errMu.
	errMu   sync.Mutex
	lastErr error
}

// NewBatchWriter creates a new BatchWriter that inserts into table and flushes
// every bufferSize entries. table must have the columns of entries.
func NewBatchWriter(ctx context.Context, db *sql.DB, table string, bufferSize int) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 500
	}
	bw := &BatchWriter{
		buf:      make([]prevalence.Entry, 0, bufferSize),
		cap:      bufferSize,
		ctx:      ctx,
		insert:   fmt.Sprintf(`INSERT INTO %s (word, prevalence, pknown, nobs, freq_zipf_us) VALUES (?, ?, ?, ?, ?)`, table),
		commitCh: make(chan []prevalence.Entry, 2),
		db:       db,
	}

	bw.wg.Add(1)
	go bw.committer()
	return bw
}

// Submit enqueues an entry. It blocks while the committer is behind by more than
// two batches.
func (bw *BatchWriter) Submit(e prevalence.Entry) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, e)
	if len(bw.buf) >= bw.cap {
		bw.flushLocked()
	}
	return nil
}

// flushLocked assumes bw.mu is held.
func (bw *BatchWriter) flushLocked() {
	if len(bw.buf) == 0 {
		return
	}
	batch := bw.buf
	bw.buf = make([]prevalence.Entry, 0, bw.cap)
	bw.commitCh <- batch
}

func (bw *BatchWriter) committer() {
	defer bw.wg.Done()
	for batch := range bw.commitCh {
		// Once a batch has failed the rest are dropped so the table never has gaps
		// in the middle.
		if bw.Err() != nil {
			continue
		}
		if err := bw.executeBatch(batch); err != nil {
			bw.setErr(err)
			if bw.OnError != nil {
				bw.OnError(err)
			}
			continue
		}
		bw.written.Add(int64(len(batch)))
	}
}

func (bw *BatchWriter) executeBatch(batch []prevalence.Entry) error {
	tx, err := bw.db.BeginTx(bw.ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	stmt, err := tx.PrepareContext(bw.ctx, bw.insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(bw.ctx, e.Word, e.Prevalence, e.PKnown, e.Nobs, e.FreqZipfUS); err != nil {
			return fmt.Errorf("insert %q: %w", e.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch (%d items): %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) setErr(err error) {
	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	if bw.lastErr == nil {
		bw.lastErr = err
	}
}

// Err returns the first error seen by the committer, if any.
func (bw *BatchWriter) Err() error {
	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.lastErr
}

// Written is the number of entries committed so far.
func (bw *BatchWriter) Written() int { return int(bw.written.Load()) }

// Close flushes buffered entries, waits for pending batches and returns the
// first error seen.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	bw.flushLocked()
	bw.mu.Unlock()

	close(bw.commitCh)
	bw.wg.Wait()

	return bw.Err()
}

// ErrBatchWriterClosed is returned by Submit and Close after Close.
var ErrBatchWriterClosed = &BatchWriterError{"batch writer closed"}

// BatchWriterError is the typed error for BatchWriter lifecycle failures.
type BatchWriterError struct{ msg string }

func (e *BatchWriterError) Error() string { return e.msg }
