package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gather/config"
	"gather/infras/otel"
	"gather/internal/domains/booking/model"
	"gather/internal/domains/booking/model/dto"
	"gather/internal/domains/booking/repository"
	eventModel "gather/internal/domains/event/model"
	eventRepo "gather/internal/domains/event/repository"
	"gather/shared"
	"gather/shared/cache"
	"gather/shared/constant"
	gDto "gather/shared/dto"
	"gather/shared/failure"
	gModel "gather/shared/model"
	"gather/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"

	cacheGetEvent    = "event:get"
	cacheGetAllEvent = "event:gets"
	cacheCountEvent  = "event:count"
)

type Booking interface {
	GetAll(ctx context.Context, principal gModel.Principal) (dto.GetBookingsResponse, error)
	Upsert(ctx context.Context, principal gModel.Principal, req dto.CreateBookingRequest) (dto.UpsertBookingResponse, error)
	Update(ctx context.Context, principal gModel.Principal, id int64, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, principal gModel.Principal, id int64) error
}

type serviceImpl struct {
	repo      repository.Booking
	eventRepo eventRepo.Event
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, eventRepo eventRepo.Event, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		eventRepo: eventRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func filterByUserAndEvent(userID, eventID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEventID,
				Operator: gDto.FilterOperatorEq,
				Value:    eventID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, principal gModel.Principal) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllBooking, strconv.FormatInt(principal.UserID, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	bookings, err := s.repo.GetAllJoined(ctx, principal.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Upsert creates the caller's booking for an event, or updates its status when
// one already exists for the (user, event) pair. A concurrent insert that hits
// the store's unique violation is converted into the update path.
func (s *serviceImpl) Upsert(ctx context.Context, principal gModel.Principal, req dto.CreateBookingRequest) (res dto.UpsertBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	eventExists, err := s.eventRepo.Exist(ctx, shared.FilterByID(req.EventID, eventModel.FieldID, eventModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if event exists")

		return res, fmt.Errorf("failed to check if event exists: %w", err)
	}

	if !eventExists {
		return res, failure.NotFound("event not found") // nolint:wrapcheck
	}

	booking := req.ToModel(principal.UserID, timezone.Now())
	pairFilter := filterByUserAndEvent(principal.UserID, req.EventID)

	existing, err := s.repo.Get(ctx, pairFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get existing booking")

		return res, fmt.Errorf("failed to get existing booking: %w", err)
	}

	if existing.ID != 0 {
		return s.updateExisting(ctx, existing.ID, booking.Status, pairFilter)
	}

	id, err := s.repo.Insert(ctx, booking)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			// Lost the race against a concurrent insert for the same pair.
			raced, getErr := s.repo.Get(ctx, pairFilter)
			if getErr != nil || raced.ID == 0 {
				log.Error().Err(getErr).Msg("failed to get booking after unique violation")

				return res, fmt.Errorf("failed to get booking after unique violation: %w", err)
			}

			return s.updateExisting(ctx, raced.ID, booking.Status, pairFilter)
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	joined, err := s.repo.GetJoined(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get created booking")

		return res, fmt.Errorf("failed to get created booking: %w", err)
	}

	s.invalidateCaches(ctx)

	res.FromModel(dto.ResultCreated, joined)

	return res, nil
}

func (s *serviceImpl) updateExisting(ctx context.Context, id int64, status string, filter gDto.FilterGroup) (res dto.UpsertBookingResponse, err error) {
	if err = s.repo.Update(ctx, map[string]any{model.FieldStatus: status}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	joined, err := s.repo.GetJoined(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated booking")

		return res, fmt.Errorf("failed to get updated booking: %w", err)
	}

	s.invalidateCaches(ctx)

	res.FromModel(dto.ResultUpdated, joined)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, principal gModel.Principal, id int64, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	// Only the owning user may touch a booking; an ADMIN is rejected too.
	if booking.UserID != principal.UserID {
		return res, failure.Forbidden("not allowed to modify this booking") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldStatus: req.Status}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	joined, err := s.repo.GetJoined(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated booking")

		return res, fmt.Errorf("failed to get updated booking: %w", err)
	}

	s.invalidateCaches(ctx)

	res.FromModel(joined)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, principal gModel.Principal, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != principal.UserID {
		return failure.Forbidden("not allowed to cancel this booking") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateCaches(ctx)

	return nil
}

// invalidateCaches drops booking lists and the event projections whose RSVP
// counts just changed.
func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetEvent)
		shared.InvalidateCaches(c, s.cache, cacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, cacheCountEvent)
	}()
}
