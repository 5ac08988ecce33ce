package dto

import (
	"time"

	"gather/internal/domains/booking/model"
	userDto "gather/internal/domains/user/model/dto"
	"gather/shared/constant"
)

const (
	ResultCreated = "created"
	ResultUpdated = "updated"
)

type CreateBookingRequest struct {
	EventID int64  `json:"event_id" validate:"required,gt=0"`
	Status  string `json:"status"   validate:"omitempty,max=50"`
}

func (c *CreateBookingRequest) ToModel(userID int64, now time.Time) model.Booking {
	status := constant.DefaultBookingStatus
	if c.Status != "" {
		status = c.Status
	}

	return model.Booking{
		UserID:    userID,
		EventID:   c.EventID,
		Status:    status,
		CreatedAt: now,
	}
}

type UpdateBookingRequest struct {
	Status string `db:"status" json:"status" validate:"required,max=50"`
}

// EventSummary is the event side of a booking projection.
type EventSummary struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Location      *string              `json:"location"`
	StartAt       time.Time            `json:"start_at"`
	EndAt         *time.Time           `json:"end_at"`
	ImageURL      *string              `json:"image_url"`
	Author        userDto.UserResponse `json:"author"`
	AttendeeCount int                  `json:"attendee_count"`
}

type BookingResponse struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	EventID   int64        `json:"event_id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Event     EventSummary `json:"event"`
}

func (r *BookingResponse) FromModel(model model.BookingWithEvent) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.EventID = model.EventID
	r.Status = model.Status
	r.CreatedAt = model.CreatedAt
	r.Event = EventSummary{
		ID:          model.EventID,
		Title:       model.EventTitle,
		Description: model.EventDescription,
		Location:    model.EventLocation,
		StartAt:     model.EventStartAt,
		EndAt:       model.EventEndAt,
		ImageURL:    model.EventImageURL,
		Author: userDto.UserResponse{
			ID:    model.AuthorID,
			Name:  model.AuthorName,
			Email: model.AuthorEmail,
		},
		AttendeeCount: model.AttendeeCount,
	}
}

// UpsertBookingResponse marks whether the natural-key upsert inserted a new
// booking or updated an existing one.
type UpsertBookingResponse struct {
	Result  string          `json:"result"`
	Booking BookingResponse `json:"booking"`
}

func (r *UpsertBookingResponse) FromModel(result string, model model.BookingWithEvent) {
	r.Result = result
	r.Booking.FromModel(model)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingWithEvent) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
