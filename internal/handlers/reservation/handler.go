package reservation

import (
	"drivingschool/infras/otel"
	ratingDto "drivingschool/internal/domains/rating/model/dto"
	ratingService "drivingschool/internal/domains/rating/service"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/internal/domains/reservation/model/dto"
	"drivingschool/internal/domains/reservation/service"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	ratings ratingService.Rating
	otel    otel.Otel
}

func New(service service.Reservation, ratings ratingService.Rating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		ratings: ratings,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.BookLesson)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/me", handler.GetMyReservations)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Post("/{id}/rating", handler.RateLesson)
	})
}

// BookLesson reserves a lesson for the signed-in user.
// @Summary Book a lesson
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.BookLessonRequest true "Book Lesson Request"
// @Success 201 {object} response.Envelope{data=dto.ReservationResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) BookLesson(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookLesson")
	defer scope.End()

	req := dto.BookLessonRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book lesson")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lesson booked successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetReservations lists every reservation. Admin only.
// @Summary List all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope{data=dto.GetReservationsResponse}
// @Failure 403 {object} response.Envelope
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := model.Status(r.URL.Query().Get(constant.RequestParamStatus))

	res, err := handler.service.ListAll(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyReservations lists the signed-in user's reservations.
// @Summary List my reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope{data=dto.GetReservationsResponse}
// @Router /v1/reservations/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := model.Status(r.URL.Query().Get(constant.RequestParamStatus))

	res, err := handler.service.ListMine(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelReservation lets the owner cancel a reservation.
// @Summary Cancel my reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope{message=string}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// UpdateStatus moves a reservation through the admin workflow.
// @Summary Update reservation status
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Envelope{data=dto.ReservationResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/reservations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservationStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation status updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RateLesson rates a completed reservation.
// @Summary Rate a completed lesson
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body ratingDto.RateLessonRequest true "Rate Lesson Request"
// @Success 201 {object} response.Envelope{data=ratingDto.RatingResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/reservations/{id}/rating [post]
// @Security BearerAuth
func (handler *Handler) RateLesson(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RateLesson")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := ratingDto.RateLessonRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.ratings.Rate(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to rate lesson")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lesson rated successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
