package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NguyenHongSon4/app-02/models"
)

// FileBackend keeps the document in a single JSON file.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (b *FileBackend) Name() string {
	return "file"
}

func (b *FileBackend) Load(ctx context.Context) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.Path, err)
	}
	return decodeDocument(data)
}

// Save writes the document to a temporary file next to the target and renames
// it into place, so readers never observe a partially written file.
func (b *FileBackend) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(b.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.Path, err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

// Ping checks that the directory holding the file is still there.
func (b *FileBackend) Ping(ctx context.Context) error {
	info, err := os.Stat(filepath.Dir(b.Path))
	if err != nil {
		return fmt.Errorf("file backend unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("file backend unavailable: %s is not a directory", filepath.Dir(b.Path))
	}
	return nil
}
