package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gather/infras/otel"
	"gather/infras/postgres"
	"gather/internal/domains/event/model"
	"gather/shared/constant"
	gDto "gather/shared/dto"
	"gather/shared/logger"
	gRepo "gather/shared/repository"
)

// selectJoined is the shared projection for event reads: the author's public
// summary and the RSVP count ride along with every row.
const selectJoined = `
	SELECT events.id, events.title, events.description, events.location,
		events.start_at, events.end_at, events.image_url, events.author_id,
		events.published, events.created_at, events.updated_at,
		users.name AS author_name, users.email AS author_email,
		(SELECT COUNT(*) FROM bookings WHERE bookings.event_id = events.id) AS attendee_count
	FROM events
	JOIN users ON users.id = events.author_id`

type Event interface {
	Insert(ctx context.Context, model model.Event) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetJoined(ctx context.Context, id int64) (model.EventWithAuthor, error)
	GetAllJoined(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.EventWithAuthor, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Event]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetJoined(ctx context.Context, id int64) (model.EventWithAuthor, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".event.GetJoined")
	defer scope.End()

	query := selectJoined + " WHERE events.id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var event model.EventWithAuthor

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return event, fmt.Errorf("failed to prepare statement (event): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &event, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return event, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return event, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (repo *repositoryImpl) GetAllJoined(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.EventWithAuthor, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".event.GetAllJoined")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	ordering := fmt.Sprintf("ORDER BY %s.%s DESC", model.TableName, constant.FieldCreatedAt)
	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	pagination := ""

	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("%s %s %s %s", selectJoined, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var events []model.EventWithAuthor

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return events, fmt.Errorf("failed to prepare statement (event): %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &events, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return events, fmt.Errorf("failed to get all events: %w", err)
	}

	return events, nil
}
