package instructor

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/instructor/model/dto"
	"drivingschool/internal/domains/instructor/service"
	ratingService "drivingschool/internal/domains/rating/service"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Instructor
	ratings ratingService.Rating
	otel    otel.Otel
}

func New(service service.Instructor, ratings ratingService.Rating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		ratings: ratings,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/instructors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInstructors)
		routerGroup.Post("/", handler.CreateInstructor)
		routerGroup.Put("/{id}/photo", handler.UploadPhoto)
		routerGroup.Get("/{id}/ratings", handler.GetRatings)
	})
}

// GetInstructors lists active instructors.
// @Summary List active instructors
// @Tags Instructor
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.GetInstructorsResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/instructors [get]
// @Security BearerAuth
func (handler *Handler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInstructors")
	defer scope.End()

	instructors, err := handler.service.ListActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get instructors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, instructors)
}

// CreateInstructor adds an instructor.
// @Summary Create an instructor
// @Tags Instructor
// @Accept json
// @Produce json
// @Param request body dto.CreateInstructorRequest true "Create Instructor Request"
// @Success 201 {object} response.Envelope{data=dto.InstructorResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/instructors [post]
// @Security BearerAuth
func (handler *Handler) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInstructor")
	defer scope.End()

	req := dto.CreateInstructorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create instructor")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Instructor created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UploadPhoto stores an instructor photo sent as a base64 data URL.
// @Summary Upload an instructor photo
// @Tags Instructor
// @Accept json
// @Produce json
// @Param id path string true "Instructor ID"
// @Param request body dto.UploadPhotoRequest true "Upload Photo Request"
// @Success 200 {object} response.Envelope{data=dto.PhotoResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Router /v1/instructors/{id}/photo [put]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadInstructorPhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UploadPhotoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadPhoto(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload instructor photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Instructor photo uploaded successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetRatings lists the ratings an instructor received.
// @Summary List instructor ratings
// @Tags Instructor
// @Produce json
// @Param id path string true "Instructor ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope{data=ratingDto.InstructorRatingsResponse}
// @Failure 404 {object} response.Envelope
// @Router /v1/instructors/{id}/ratings [get]
// @Security BearerAuth
func (handler *Handler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInstructorRatings")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.ratings.ListByInstructor(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get instructor ratings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
