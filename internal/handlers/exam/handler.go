package exam

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/quiz/model/dto"
	"drivingschool/internal/domains/quiz/service"
	"drivingschool/shared/constant"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Exam
	otel    otel.Otel
}

func New(service service.Exam, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/exams", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartExam)
		routerGroup.Get("/{id}", handler.GetExam)
		routerGroup.Delete("/{id}", handler.CloseExam)
		routerGroup.Put("/{id}/answers", handler.AnswerQuestion)
		routerGroup.Post("/{id}/finish", handler.FinishExam)
	})
}

// StartExam begins a timed mock exam.
// @Summary Start a mock exam
// @Description Starts a new exam, or returns the one already running for the user.
// @Tags Exam
// @Produce json
// @Success 201 {object} response.Envelope{data=dto.ExamStateResponse}
// @Failure 401 {object} response.Envelope
// @Router /v1/exams [post]
// @Security BearerAuth
func (handler *Handler) StartExam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartExam")
	defer scope.End()

	res, err := handler.service.Start(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start exam")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam started")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetExam returns the exam state with the remaining time.
// @Summary Get exam state
// @Tags Exam
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope{data=dto.ExamStateResponse}
// @Failure 404 {object} response.Envelope
// @Router /v1/exams/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExam")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get exam")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AnswerQuestion records or changes one answer.
// @Summary Answer an exam question
// @Tags Exam
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param request body dto.AnswerExamRequest true "Answer Request"
// @Success 200 {object} response.Envelope{data=dto.ExamStateResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/exams/{id}/answers [put]
// @Security BearerAuth
func (handler *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AnswerQuestion")
	defer scope.End()

	req := dto.AnswerExamRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Answer(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to answer exam question")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// FinishExam ends the exam and returns the graded result.
// @Summary Finish an exam
// @Tags Exam
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope{data=dto.ExamResultResponse}
// @Failure 404 {object} response.Envelope
// @Router /v1/exams/{id}/finish [post]
// @Security BearerAuth
func (handler *Handler) FinishExam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinishExam")
	defer scope.End()

	res, err := handler.service.Finish(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finish exam")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exam finished")

	response.WithJSON(w, http.StatusOK, res)
}

// CloseExam abandons a running exam without saving it.
// @Summary Close an exam
// @Tags Exam
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope{message=string}
// @Failure 404 {object} response.Envelope
// @Router /v1/exams/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CloseExam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseExam")
	defer scope.End()

	if err := handler.service.Close(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close exam")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Exam closed")
}
