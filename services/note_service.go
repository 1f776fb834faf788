package services

import (
	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/google/uuid"
)

type NoteServiceInterface interface {
	GetNotes(db *database.Database) ([]models.Note, error)
	GetNoteById(db *database.Database, id string) (models.Note, error)
	CreateNote(db *database.Database, input models.NotePatch) (models.Note, error)
	UpdateNote(db *database.Database, id string, patch models.NotePatch) (models.Note, error)
	DeleteNote(db *database.Database, id string) error
}

type NoteService struct {
	events EventServiceInterface
}

func NewNoteService(events EventServiceInterface) *NoteService {
	return &NoteService{events: events}
}

func noteByID(id string) func(models.Note) bool {
	return func(n models.Note) bool { return n.ID == id }
}

func (s *NoteService) GetNotes(db *database.Database) ([]models.Note, error) {
	var notes []models.Note
	err := db.View(func(tx *database.Tx) error {
		notes = database.Notes.All(tx)
		return nil
	})
	return notes, err
}

func (s *NoteService) GetNoteById(db *database.Database, id string) (models.Note, error) {
	var note models.Note
	err := db.View(func(tx *database.Tx) error {
		var ok bool
		if note, ok = database.Notes.FindOne(tx, noteByID(id)); !ok {
			return ErrNoteNotFound
		}
		return nil
	})
	return note, err
}

func (s *NoteService) CreateNote(db *database.Database, input models.NotePatch) (models.Note, error) {
	var note models.Note
	err := db.Update(func(tx *database.Tx) error {
		note = models.NewNote(uuid.NewString(), input, tx.Now())
		database.Notes.Insert(tx, note)
		return nil
	})
	if err != nil {
		return models.Note{}, err
	}

	s.publish(broker.NoteCreated, "create", note)
	return note, nil
}

// UpdateNote applies the patch to the stored note. Attributes that are
// missing or falsy in the patch keep their stored value; modifiedAt always
// advances.
func (s *NoteService) UpdateNote(db *database.Database, id string, patch models.NotePatch) (models.Note, error) {
	var note models.Note
	err := db.Update(func(tx *database.Tx) error {
		var ok bool
		note, ok = database.Notes.UpdateOne(tx, noteByID(id), func(n *models.Note) {
			patch.Apply(n)
		})
		if !ok {
			return ErrNoteNotFound
		}
		return nil
	})
	if err != nil {
		return models.Note{}, err
	}

	s.publish(broker.NoteUpdated, "update", note)
	return note, nil
}

func (s *NoteService) DeleteNote(db *database.Database, id string) error {
	err := db.Update(func(tx *database.Tx) error {
		if removed := database.Notes.RemoveWhere(tx, noteByID(id)); len(removed) == 0 {
			return ErrNoteNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(broker.NoteDeleted, "delete", map[string]string{"id": id})
	return nil
}

func (s *NoteService) publish(eventType broker.EventType, operation string, data interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, "note", operation, "", data)
	}
}

var NoteServiceInstance NoteServiceInterface
