package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNewNoteDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	note := NewNote("n-1", NotePatch{Title: strPtr("A"), Content: strPtr("B")}, now)

	assert.Equal(t, "n-1", note.ID)
	assert.Equal(t, "A", note.Title)
	assert.Equal(t, "B", note.Content)
	assert.Equal(t, DefaultNotePriority, note.Priority)
	assert.Equal(t, DefaultNoteColor, note.Color)
	assert.Nil(t, note.Tags)
	assert.Nil(t, note.ImagePath)
	assert.Equal(t, note.CreatedAt, note.ModifiedAt)
}

func TestNewNoteIgnoresImagePath(t *testing.T) {
	note := NewNote("n-1", NotePatch{ImagePath: strPtr("/uploads/1.png")}, time.Now())
	assert.Nil(t, note.ImagePath)
}

func TestNoteJSONShape(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	note := NewNote("n-1", NotePatch{Title: strPtr("A"), Content: strPtr("B")}, now)

	data, err := note.ToJSON()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Nil(t, raw["tags"])
	assert.Nil(t, raw["imagePath"])
	assert.Contains(t, raw, "imagePath")
	assert.Equal(t, "2024-05-01T10:00:00Z", raw["createdAt"])
	assert.Equal(t, float64(1), raw["priority"])

	var back Note
	require.NoError(t, back.FromJSON(data))
	assert.Equal(t, note, back)
}

func TestNotePatchFalsyValuesKeepStoredFields(t *testing.T) {
	note := Note{
		Title:     "title",
		Content:   "content",
		Priority:  3,
		Tags:      StringTags("work"),
		Color:     "#000000",
		ImagePath: strPtr("/uploads/1.png"),
	}

	NotePatch{
		Title:     strPtr(""),
		Content:   strPtr(""),
		Priority:  intPtr(0),
		Tags:      Tags(`[]`),
		Color:     strPtr(""),
		ImagePath: strPtr(""),
	}.Apply(&note)

	assert.Equal(t, "title", note.Title)
	assert.Equal(t, "content", note.Content)
	assert.Equal(t, 3, note.Priority)
	assert.JSONEq(t, `["work"]`, string(note.Tags))
	assert.Equal(t, "#000000", note.Color)
	assert.Equal(t, "/uploads/1.png", *note.ImagePath)
}

func TestNotePatchOverridesProvidedFields(t *testing.T) {
	note := Note{Title: "title", Content: "content", Priority: 1, Color: DefaultNoteColor}
	tags := StringTags("a", "b")

	NotePatch{Priority: intPtr(5), Tags: tags, ImagePath: strPtr("/uploads/2.png")}.Apply(&note)
	tags[2] = 'X'

	assert.Equal(t, "title", note.Title)
	assert.Equal(t, 5, note.Priority)
	assert.JSONEq(t, `["a","b"]`, string(note.Tags))
	assert.Equal(t, "/uploads/2.png", *note.ImagePath)
}

func TestNoteTouchNeverMovesBackwards(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	note := Note{CreatedAt: t0, ModifiedAt: t0}

	note.Touch(t0.Add(-time.Hour))
	assert.Equal(t, t0, note.ModifiedAt)

	note.Touch(t0.Add(time.Minute))
	assert.Equal(t, t0.Add(time.Minute), note.ModifiedAt)
}

func TestNoteCloneIsDeep(t *testing.T) {
	note := Note{Tags: StringTags("x"), ImagePath: strPtr("/a")}
	c := note.Clone()
	c.Tags[2] = 'y'
	*c.ImagePath = "/b"

	assert.JSONEq(t, `["x"]`, string(note.Tags))
	assert.Equal(t, "/a", *note.ImagePath)
}

func TestTagsAcceptAnyJSONValue(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		want  string
		falsy bool
	}{
		{"list", `{"tags": ["a", "b"]}`, `["a","b"]`, false},
		{"string", `{"tags": "work"}`, `"work"`, false},
		{"object", `{"tags": {"k": 1}}`, `{"k":1}`, false},
		{"empty string", `{"tags": ""}`, `""`, true},
		{"empty list", `{"tags": [ ]}`, `[]`, true},
		{"zero", `{"tags": 0}`, `0`, true},
		{"false", `{"tags": false}`, `false`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var patch NotePatch
			require.NoError(t, json.Unmarshal([]byte(tc.body), &patch))
			assert.Equal(t, tc.want, string(patch.Tags))
			assert.Equal(t, tc.falsy, patch.Tags.IsFalsy())
		})
	}
}

func TestTagsNull(t *testing.T) {
	var patch NotePatch
	require.NoError(t, json.Unmarshal([]byte(`{"tags": null}`), &patch))
	assert.Nil(t, patch.Tags)
	assert.True(t, patch.Tags.IsFalsy())

	data, err := json.Marshal(Note{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tags":null`)
}

func TestNotePatchAppliesStringTags(t *testing.T) {
	note := NewNote("n-1", NotePatch{Tags: Tags(`"work"`)}, time.Now())
	assert.Equal(t, `"work"`, string(note.Tags))

	NotePatch{Tags: Tags(`"home"`)}.Apply(&note)
	assert.Equal(t, `"home"`, string(note.Tags))

	NotePatch{Tags: Tags(`""`)}.Apply(&note)
	assert.Equal(t, `"home"`, string(note.Tags))
}
