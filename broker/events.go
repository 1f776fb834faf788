package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	NoteCreated EventType = "note.created"
	NoteUpdated EventType = "note.updated"
	NoteDeleted EventType = "note.deleted"

	AccountRegistered EventType = "account.registered"
	AccountLoggedIn   EventType = "account.logged_in"

	ImageUploaded EventType = "image.uploaded"
)
