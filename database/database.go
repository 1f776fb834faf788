package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/NguyenHongSon4/app-02/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PersistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_persist_duration_seconds",
			Help:    "Time spent writing the document to its backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver"},
	)

	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_persist_failures_total",
			Help: "Number of failed document writes",
		},
		[]string{"driver"},
	)
)

const defaultSaveTimeout = 10 * time.Second

type Options struct {
	// CreateIfMissing initializes and persists an empty document when the
	// backend holds none.
	CreateIfMissing bool

	// Clock overrides time.Now.
	Clock func() time.Time

	SaveTimeout time.Duration
}

// Database is the document store. It holds the whole document in memory and
// serializes every read and write through one mutex; each Update that changes
// the document writes it back to the backend before returning.
type Database struct {
	mu          sync.Mutex
	doc         *models.Document
	backend     Backend
	clock       func() time.Time
	saveTimeout time.Duration
}

// Open loads the document from the backend.
func Open(ctx context.Context, backend Backend, opts Options) (*Database, error) {
	doc, err := backend.Load(ctx)
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		if !opts.CreateIfMissing {
			return nil, fmt.Errorf("failed to load document from %s backend: %w", backend.Name(), err)
		}
		log.Printf("No document in %s backend, initializing an empty one", backend.Name())
		doc = models.NewDocument()
		if err := backend.Save(ctx, doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersist, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load document from %s backend: %w", backend.Name(), err)
	}

	d := &Database{
		doc:         doc,
		backend:     backend,
		clock:       opts.Clock,
		saveTimeout: opts.SaveTimeout,
	}
	if d.clock == nil {
		d.clock = time.Now
	}
	if d.saveTimeout <= 0 {
		d.saveTimeout = defaultSaveTimeout
	}
	return d, nil
}

func (d *Database) Driver() string {
	return d.backend.Name()
}

// Ping checks the backend without touching the document.
func (d *Database) Ping(ctx context.Context) error {
	return d.backend.Ping(ctx)
}

func (d *Database) Close() error {
	return d.backend.Close()
}

func (d *Database) now() time.Time {
	return d.clock().UTC().Truncate(time.Millisecond)
}

// View runs fn against the document without persisting anything.
func (d *Database) View(fn func(tx *Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return fn(&Tx{doc: d.doc, now: d.now()})
}

// Update runs fn as a single critical section. When fn changed the document
// it is persisted; if fn or the write fails the in-memory document is
// restored to what it was before the call.
func (d *Database) Update(fn func(tx *Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := d.doc.Clone()
	tx := &Tx{doc: d.doc, now: d.now(), writable: true}

	if err := fn(tx); err != nil {
		d.doc = snapshot
		return err
	}
	if !tx.dirty {
		return nil
	}
	if err := d.persist(); err != nil {
		d.doc = snapshot
		return err
	}
	return nil
}

func (d *Database) persist() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.saveTimeout)
	defer cancel()

	driver := d.backend.Name()
	timer := prometheus.NewTimer(PersistDuration.WithLabelValues(driver))
	defer timer.ObserveDuration()

	if err := d.backend.Save(ctx, d.doc); err != nil {
		PersistFailures.WithLabelValues(driver).Inc()
		log.Printf("Failed to persist document to %s backend: %v", driver, err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Tx is the view of the document handed to View and Update callbacks. It
// must not be used after the callback returns.
type Tx struct {
	doc      *models.Document
	now      time.Time
	writable bool
	dirty    bool
}

// Now is the timestamp of the transaction, UTC with millisecond precision.
func (tx *Tx) Now() time.Time {
	return tx.now
}

// NextSequence advances and returns the counter for the named collection.
func (tx *Tx) NextSequence(name string) int {
	tx.markDirty()
	tx.doc.Sequences[name]++
	return tx.doc.Sequences[name]
}

func (tx *Tx) markDirty() {
	if !tx.writable {
		panic("database: write in a read-only transaction")
	}
	tx.dirty = true
}
