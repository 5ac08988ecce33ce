package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"gather/infras/otel"
	"gather/internal/domains/booking/model/dto"
	"gather/internal/domains/booking/service"
	"gather/shared"
	"gather/shared/constant"
	gModel "gather/shared/model"
	"gather/shared/validator"
	"gather/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", handler.GetBookings)
		r.Post("/", handler.UpsertBooking)
		r.Put("/{id}", handler.UpdateBooking)
		r.Delete("/{id}", handler.DeleteBooking)
	})
}

// GetBookings retrieves the bookings of the authenticated user.
// @Summary Get my bookings
// @Description Retrieve every booking owned by the authenticated user, newest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	principal, _ := gModel.PrincipalFromContext(ctx)

	bookings, err := handler.service.GetAll(ctx, principal)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// UpsertBooking creates or refreshes the caller's booking for an event.
// @Summary Book an event
// @Description Create a booking for an event, or update the existing one when the user already booked it. The result field tells which happened.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 200 {object} response.Data[dto.UpsertBookingResponse] "Existing booking updated"
// @Success 201 {object} response.Data[dto.UpsertBookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) UpsertBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	principal, _ := gModel.PrincipalFromContext(ctx)

	res, err := handler.service.Upsert(ctx, principal, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book event")

		response.WithError(w, err)

		return
	}

	status := http.StatusOK
	if res.Result == dto.ResultCreated {
		status = http.StatusCreated
	}

	scope.AddEvent("Booking " + res.Result + " by " + principal.Email)

	response.WithJSON(w, status, res)
}

// UpdateBooking changes the status of a booking owned by the caller.
// @Summary Update a booking
// @Description Update the status of a booking. Only its owner may update it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	principal, _ := gModel.PrincipalFromContext(ctx)

	res, err := handler.service.Update(ctx, principal, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully by " + principal.Email)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteBooking cancels a booking owned by the caller.
// @Summary Cancel a booking
// @Description Cancel a booking. Only its owner may cancel it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	principal, _ := gModel.PrincipalFromContext(ctx)

	if err := handler.service.Delete(ctx, principal, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully by " + principal.Email)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}
