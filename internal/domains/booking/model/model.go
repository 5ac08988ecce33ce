package model

import "time"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldEventID   = "event_id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

// Booking is one user's RSVP to one event. (user_id, event_id) is unique at
// the store; status is a free-form string with no closed set of values.
type Booking struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	EventID   int64     `db:"event_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// BookingWithEvent joins a booking with its event, the event author's public
// summary, and the event's RSVP count. Filled by hand-written queries only.
type BookingWithEvent struct {
	Booking
	EventTitle       string     `db:"event_title"`
	EventDescription string     `db:"event_description"`
	EventLocation    *string    `db:"event_location"`
	EventStartAt     time.Time  `db:"event_start_at"`
	EventEndAt       *time.Time `db:"event_end_at"`
	EventImageURL    *string    `db:"event_image_url"`
	AuthorID         int64      `db:"author_id"`
	AuthorName       *string    `db:"author_name"`
	AuthorEmail      string     `db:"author_email"`
	AttendeeCount    int        `db:"attendee_count"`
}

// Attendee is one RSVP row of an event with its user's public summary.
type Attendee struct {
	BookingID int64     `db:"booking_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UserID    int64     `db:"user_id"`
	UserName  *string   `db:"user_name"`
	UserEmail string    `db:"user_email"`
}
