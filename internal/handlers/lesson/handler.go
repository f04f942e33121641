package lesson

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/lesson/model/dto"
	"drivingschool/internal/domains/lesson/service"
	"drivingschool/internal/domains/lesson/slot"
	"drivingschool/shared/constant"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lesson
	otel    otel.Otel
}

func New(service service.Lesson, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lessons", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailableLessons)
		routerGroup.Post("/", handler.CreateLesson)
		routerGroup.Get("/calendar", handler.GetCalendar)
	})
}

func selectionFromRequest(r *http.Request) slot.Selection {
	query := r.URL.Query()

	return slot.NewSelection(query.Get(constant.RequestParamInstructorID), query.Get(constant.RequestParamType))
}

// GetAvailableLessons lists bookable lessons grouped by date.
// @Summary List available lessons
// @Tags Lesson
// @Produce json
// @Param instructor_id query string false "Instructor ID or 'all'"
// @Param type query string false "Lesson type or 'all'"
// @Success 200 {object} response.Envelope{data=dto.AvailableLessonsResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/lessons [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableLessons(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableLessons")
	defer scope.End()

	lessons, err := handler.service.ListAvailable(ctx, selectionFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available lessons")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lessons)
}

// GetCalendar renders a month of availability.
// @Summary Lesson calendar
// @Tags Lesson
// @Produce json
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Param instructor_id query string false "Instructor ID or 'all'"
// @Param type query string false "Lesson type or 'all'"
// @Success 200 {object} response.Envelope{data=dto.CalendarResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/lessons/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	month := r.URL.Query().Get(constant.RequestParamMonth)

	res, err := handler.service.Calendar(ctx, month, selectionFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lesson calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateLesson schedules an available lesson.
// @Summary Create a lesson
// @Tags Lesson
// @Accept json
// @Produce json
// @Param request body dto.CreateLessonRequest true "Create Lesson Request"
// @Success 201 {object} response.Envelope{data=dto.LessonResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/lessons [post]
// @Security BearerAuth
func (handler *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLesson")
	defer scope.End()

	req := dto.CreateLessonRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lesson")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lesson created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
