package models

const (
	NotesCollection    = "notes"
	AccountsCollection = "accounts"
)

// Document is the whole persisted dataset. It is always read and written as
// one unit.
type Document struct {
	Notes    []Note    `json:"notes"`
	Accounts []Account `json:"accounts"`

	// Sequences holds the last identifier handed out per collection.
	Sequences map[string]int `json:"sequences,omitempty"`
}

func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize fills in what older documents may lack: empty collections
// instead of null, and sequence counters seeded from the highest id in use.
func (d *Document) Normalize() {
	if d.Notes == nil {
		d.Notes = []Note{}
	}
	if d.Accounts == nil {
		d.Accounts = []Account{}
	}
	if d.Sequences == nil {
		d.Sequences = map[string]int{}
	}
	maxID := 0
	for _, a := range d.Accounts {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	if d.Sequences[AccountsCollection] < maxID {
		d.Sequences[AccountsCollection] = maxID
	}
}

func (d *Document) Clone() *Document {
	c := &Document{
		Notes:     make([]Note, len(d.Notes)),
		Accounts:  make([]Account, len(d.Accounts)),
		Sequences: make(map[string]int, len(d.Sequences)),
	}
	for i, n := range d.Notes {
		c.Notes[i] = n.Clone()
	}
	copy(c.Accounts, d.Accounts)
	for k, v := range d.Sequences {
		c.Sequences[k] = v
	}
	return c
}
