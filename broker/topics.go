package broker

const (
	NoteEventsSubject    = "notes.events.note"
	AccountEventsSubject = "notes.events.account"
	ImageEventsSubject   = "notes.events.image"
)

// SubjectFor maps an event entity to the subject it is published on.
func SubjectFor(entity string) string {
	switch entity {
	case "note":
		return NoteEventsSubject
	case "account":
		return AccountEventsSubject
	case "image":
		return ImageEventsSubject
	default:
		return "notes.events." + entity
	}
}
