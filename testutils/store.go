package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/stretchr/testify/require"
)

// MemoryBackend keeps the serialized document in memory. Setting SaveErr
// makes every Save fail with it, and PingErr does the same for Ping.
type MemoryBackend struct {
	mu      sync.Mutex
	Data    []byte
	SaveErr error
	PingErr error
	Saves   int
}

func (b *MemoryBackend) Name() string {
	return "memory"
}

func (b *MemoryBackend) Load(ctx context.Context) (*models.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Data == nil {
		return nil, database.ErrDocumentNotFound
	}
	var doc models.Document
	if err := json.Unmarshal(b.Data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrMalformedDocument, err)
	}
	doc.Normalize()
	return &doc, nil
}

func (b *MemoryBackend) Save(ctx context.Context, doc *models.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SaveErr != nil {
		return b.SaveErr
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	b.Data = data
	b.Saves++
	return nil
}

func (b *MemoryBackend) SetSaveErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.SaveErr = err
}

func (b *MemoryBackend) Ping(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.PingErr
}

func (b *MemoryBackend) Close() error {
	return nil
}

// FixedClock returns a clock that starts at start and advances by step on
// every call.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// SetupTestDatabase opens a store backed by a JSON file in a temporary
// directory. It returns the store and the file path.
func SetupTestDatabase(t *testing.T) (*database.Database, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "db.json")
	db, err := database.Open(context.Background(), database.NewFileBackend(path), database.Options{
		CreateIfMissing: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, path
}
