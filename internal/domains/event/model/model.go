package model

import (
	"time"

	"gather/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldStartAt     = "start_at"
	FieldEndAt       = "end_at"
	FieldImageURL    = "image_url"
	FieldAuthorID    = "author_id"
	FieldPublished   = "published"
)

type Event struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Location    *string    `db:"location"`
	StartAt     time.Time  `db:"start_at"`
	EndAt       *time.Time `db:"end_at"`
	ImageURL    *string    `db:"image_url"`
	AuthorID    int64      `db:"author_id"`
	Published   bool       `db:"published"`
	model.Metadata
}

// EventWithAuthor is the read projection joining the author's public summary
// and the RSVP count. Filled by hand-written queries only.
type EventWithAuthor struct {
	Event
	AuthorName    *string `db:"author_name"`
	AuthorEmail   string  `db:"author_email"`
	AttendeeCount int     `db:"attendee_count"`
}
