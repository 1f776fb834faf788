package database

import (
	"time"

	"github.com/NguyenHongSon4/app-02/models"
)

// Collection gives typed access to one of the document's record lists.
type Collection[T any] struct {
	name  string
	slice func(doc *models.Document) *[]T
	clone func(T) T
}

var Notes = Collection[models.Note]{
	name:  models.NotesCollection,
	slice: func(doc *models.Document) *[]models.Note { return &doc.Notes },
	clone: models.Note.Clone,
}

var Accounts = Collection[models.Account]{
	name:  models.AccountsCollection,
	slice: func(doc *models.Document) *[]models.Account { return &doc.Accounts },
	clone: func(a models.Account) models.Account { return a },
}

// toucher is implemented by records with an audit timestamp that every
// update must refresh.
type toucher interface {
	Touch(now time.Time)
}

func (c Collection[T]) Name() string {
	return c.name
}

// All returns copies of every record in insertion order.
func (c Collection[T]) All(tx *Tx) []T {
	items := *c.slice(tx.doc)
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, c.clone(item))
	}
	return out
}

func (c Collection[T]) Count(tx *Tx) int {
	return len(*c.slice(tx.doc))
}

// FindOne returns the first record matching the predicate.
func (c Collection[T]) FindOne(tx *Tx, match func(T) bool) (T, bool) {
	for _, item := range *c.slice(tx.doc) {
		if match(item) {
			return c.clone(item), true
		}
	}
	var zero T
	return zero, false
}

func (c Collection[T]) Insert(tx *Tx, rec T) {
	tx.markDirty()
	items := c.slice(tx.doc)
	*items = append(*items, c.clone(rec))
}

// UpdateOne applies fn to the first matching record and refreshes its audit
// timestamp. It returns a copy of the updated record.
func (c Collection[T]) UpdateOne(tx *Tx, match func(T) bool, fn func(*T)) (T, bool) {
	items := *c.slice(tx.doc)
	for i := range items {
		if !match(items[i]) {
			continue
		}
		tx.markDirty()
		fn(&items[i])
		if t, ok := any(&items[i]).(toucher); ok {
			t.Touch(tx.now)
		}
		return c.clone(items[i]), true
	}
	var zero T
	return zero, false
}

// RemoveWhere deletes every matching record and returns them.
func (c Collection[T]) RemoveWhere(tx *Tx, match func(T) bool) []T {
	items := c.slice(tx.doc)
	kept := make([]T, 0, len(*items))
	var removed []T
	for _, item := range *items {
		if match(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	if len(removed) > 0 {
		tx.markDirty()
		*items = kept
	}
	return removed
}
