package models

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	DefaultNotePriority = 1
	DefaultNoteColor    = "#FFFFFF"
)

type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Tags       Tags      `json:"tags"`
	Color      string    `json:"color"`
	ImagePath  *string   `json:"imagePath"`
}

// Tags holds a note's tags as the client sent them. Clients are free to send
// a list, a single string, or any other JSON value. The value is kept in
// compact form and nil stands for null.
type Tags json.RawMessage

// StringTags builds a Tags list from plain strings.
func StringTags(tags ...string) Tags {
	data, _ := json.Marshal(tags)
	return Tags(data)
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return t, nil
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*t = nil
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Tags(buf.Bytes())
	return nil
}

// IsFalsy reports whether the value is null, false, zero, an empty string or
// an empty list.
func (t Tags) IsFalsy() bool {
	if len(t) == 0 {
		return true
	}
	var v interface{}
	if err := json.Unmarshal(t, &v); err != nil {
		return true
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	}
	return false
}

func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	return append(Tags(nil), t...)
}

// NotePatch carries the attributes a client may set on a note. A nil field
// means "not provided"; Normalize also turns falsy values into nil so that
// they never override what is stored.
type NotePatch struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Priority  *int    `json:"priority"`
	Tags      Tags    `json:"tags"`
	Color     *string `json:"color"`
	ImagePath *string `json:"imagePath"`
}

func (p NotePatch) Normalize() NotePatch {
	if p.Title != nil && *p.Title == "" {
		p.Title = nil
	}
	if p.Content != nil && *p.Content == "" {
		p.Content = nil
	}
	if p.Priority != nil && *p.Priority == 0 {
		p.Priority = nil
	}
	if p.Tags.IsFalsy() {
		p.Tags = nil
	}
	if p.Color != nil && *p.Color == "" {
		p.Color = nil
	}
	if p.ImagePath != nil && *p.ImagePath == "" {
		p.ImagePath = nil
	}
	return p
}

// Apply overwrites the fields present in the patch. It does not touch the
// timestamps.
func (p NotePatch) Apply(n *Note) {
	p = p.Normalize()
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Priority != nil {
		n.Priority = *p.Priority
	}
	if p.Tags != nil {
		n.Tags = p.Tags.Clone()
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.ImagePath != nil {
		path := *p.ImagePath
		n.ImagePath = &path
	}
}

// NewNote builds a note from a creation patch, substituting the defaults for
// every attribute that was not provided.
func NewNote(id string, p NotePatch, now time.Time) Note {
	n := Note{
		ID:         id,
		Priority:   DefaultNotePriority,
		Color:      DefaultNoteColor,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	p.ImagePath = nil
	p.Apply(&n)
	return n
}

// Touch advances the modification time. It never moves backwards, even if
// the wall clock does.
func (n *Note) Touch(now time.Time) {
	if now.Before(n.ModifiedAt) {
		return
	}
	n.ModifiedAt = now
}

func (n Note) Clone() Note {
	c := n
	c.Tags = n.Tags.Clone()
	if n.ImagePath != nil {
		path := *n.ImagePath
		c.ImagePath = &path
	}
	return c
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
