package dto

import (
	"mime/multipart"
	"time"

	bookingModel "gather/internal/domains/booking/model"
	"gather/internal/domains/event/model"
	userDto "gather/internal/domains/user/model/dto"
	"gather/shared"
	gModel "gather/shared/model"
	"gather/shared/timezone"
)

type CreateEventRequest struct {
	Title       string     `json:"title"                validate:"required,min=3,max=200"`
	Description string     `json:"description"          validate:"required"`
	Location    *string    `json:"location,omitempty"   validate:"omitempty,max=200"`
	StartAt     time.Time  `json:"start_at"             validate:"required"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"  validate:"omitempty,url"`
	Published   *bool      `json:"published,omitempty"`
}

func (c *CreateEventRequest) ToModel(authorID int64) model.Event {
	published := true
	if c.Published != nil {
		published = *c.Published
	}

	return model.Event{
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		StartAt:     c.StartAt,
		EndAt:       c.EndAt,
		ImageURL:    c.ImageURL,
		AuthorID:    authorID,
		Published:   published,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
		},
	}
}

type UpdateEventRequest struct {
	Title       *string    `db:"title"       json:"title,omitempty"       validate:"omitempty,min=3,max=200"`
	Description *string    `db:"description" json:"description,omitempty" validate:"omitempty"`
	Location    *string    `db:"location"    json:"location,omitempty"    validate:"omitempty,max=200"`
	StartAt     *time.Time `db:"start_at"    json:"start_at,omitempty"`
	EndAt       *time.Time `db:"end_at"      json:"end_at,omitempty"`
	ImageURL    *string    `db:"image_url"   json:"image_url,omitempty"   validate:"omitempty,url"`
	Published   *bool      `db:"published"   json:"published,omitempty"`
}

type EventResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    *string    `json:"location"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	ImageURL    *string    `json:"image_url"`
	AuthorID    int64      `json:"author_id"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r *EventResponse) FromModel(model model.Event) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Location = model.Location
	r.StartAt = model.StartAt
	r.EndAt = model.EndAt
	r.ImageURL = model.ImageURL
	r.AuthorID = model.AuthorID
	r.Published = model.Published
	r.CreatedAt = model.CreatedAt
	r.UpdatedAt = model.UpdatedAt
}

// EventListItem is an event row with its author summary and RSVP count.
type EventListItem struct {
	EventResponse
	Author        userDto.UserResponse `json:"author"`
	AttendeeCount int                  `json:"attendee_count"`
}

func (r *EventListItem) FromModel(model model.EventWithAuthor) {
	r.EventResponse.FromModel(model.Event)
	r.Author = userDto.UserResponse{
		ID:    model.AuthorID,
		Name:  model.AuthorName,
		Email: model.AuthorEmail,
	}
	r.AttendeeCount = model.AttendeeCount
}

type GetEventsResponse struct {
	Events    []EventListItem `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.EventWithAuthor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventListItem, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}

type AttendeeResponse struct {
	BookingID int64                `json:"booking_id"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	User      userDto.UserResponse `json:"user"`
}

func (r *AttendeeResponse) FromModel(model bookingModel.Attendee) {
	r.BookingID = model.BookingID
	r.Status = model.Status
	r.CreatedAt = model.CreatedAt
	r.User = userDto.UserResponse{
		ID:    model.UserID,
		Name:  model.UserName,
		Email: model.UserEmail,
	}
}

// EventDetailResponse adds the full RSVP list to the joined projection.
type EventDetailResponse struct {
	EventListItem
	Attendees []AttendeeResponse `json:"attendees"`
}

func (r *EventDetailResponse) FromModels(event model.EventWithAuthor, attendees []bookingModel.Attendee) {
	r.EventListItem.FromModel(event)

	r.Attendees = make([]AttendeeResponse, len(attendees))
	for i, att := range attendees {
		r.Attendees[i].FromModel(att)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
