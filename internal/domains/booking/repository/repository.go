package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gather/infras/otel"
	"gather/infras/postgres"
	"gather/internal/domains/booking/model"
	"gather/shared/constant"
	gDto "gather/shared/dto"
	"gather/shared/logger"
	gRepo "gather/shared/repository"
)

// selectJoined is the booking read projection: the event, its author's public
// summary, and the event's total RSVP count.
const selectJoined = `
	SELECT bookings.id, bookings.user_id, bookings.event_id, bookings.status,
		bookings.created_at,
		events.title AS event_title, events.description AS event_description,
		events.location AS event_location, events.start_at AS event_start_at,
		events.end_at AS event_end_at, events.image_url AS event_image_url,
		events.author_id AS author_id,
		users.name AS author_name, users.email AS author_email,
		(SELECT COUNT(*) FROM bookings b WHERE b.event_id = bookings.event_id) AS attendee_count
	FROM bookings
	JOIN events ON events.id = bookings.event_id
	JOIN users ON users.id = events.author_id`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetJoined(ctx context.Context, id int64) (model.BookingWithEvent, error)
	GetAllJoined(ctx context.Context, userID int64) ([]model.BookingWithEvent, error)
	GetAttendees(ctx context.Context, eventID int64) ([]model.Attendee, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetJoined(ctx context.Context, id int64) (model.BookingWithEvent, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetJoined")
	defer scope.End()

	query := selectJoined + " WHERE bookings.id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.BookingWithEvent

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to prepare statement (booking): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &booking, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (repo *repositoryImpl) GetAllJoined(ctx context.Context, userID int64) ([]model.BookingWithEvent, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAllJoined")
	defer scope.End()

	query := selectJoined + " WHERE bookings.user_id = :user_id ORDER BY bookings.created_at DESC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.BookingWithEvent

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to prepare statement (booking): %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &bookings, map[string]any{"user_id": userID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get all bookings: %w", err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) GetAttendees(ctx context.Context, eventID int64) ([]model.Attendee, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAttendees")
	defer scope.End()

	query := `
		SELECT bookings.id AS booking_id, bookings.status, bookings.created_at,
			users.id AS user_id, users.name AS user_name, users.email AS user_email
		FROM bookings
		JOIN users ON users.id = bookings.user_id
		WHERE bookings.event_id = :event_id
		ORDER BY bookings.created_at DESC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var attendees []model.Attendee

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return attendees, fmt.Errorf("failed to prepare statement (booking): %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &attendees, map[string]any{"event_id": eventID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return attendees, fmt.Errorf("failed to get attendees: %w", err)
	}

	return attendees, nil
}
