package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NguyenHongSon4/app-02/models"
)

// DocumentName is the key the SQL and Mongo backends store the document under.
const DocumentName = "db"

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrMalformedDocument = errors.New("malformed document")
	ErrPersist           = errors.New("failed to persist document")
)

// Backend persists the whole document. Save replaces what was stored before.
type Backend interface {
	Name() string
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	// Ping reports whether the backend can currently be written to.
	Ping(ctx context.Context) error
	Close() error
}

func decodeDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	doc.Normalize()
	return &doc, nil
}

func encodeDocument(doc *models.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
