package quiz

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/quiz/model/dto"
	"drivingschool/internal/domains/quiz/service"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Quiz
	otel    otel.Otel
}

func New(service service.Quiz, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/quizzes", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCatalog)
		routerGroup.Get("/results/me", handler.GetMyResults)
		routerGroup.Get("/leaderboard", handler.GetLeaderboard)
		routerGroup.Get("/{id}", handler.GetQuestions)
		routerGroup.Post("/{id}/check", handler.CheckAnswer)
		routerGroup.Post("/{id}/submit", handler.SubmitQuiz)
	})
}

// GetCatalog lists the practice quizzes and the mock exam.
// @Summary Quiz catalog
// @Tags Quiz
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.CatalogResponse}
// @Router /v1/quizzes [get]
// @Security BearerAuth
func (handler *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Catalog(ctx))
}

// GetQuestions returns a quiz without its answers.
// @Summary Quiz questions
// @Tags Quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} response.Envelope{data=dto.QuizResponse}
// @Failure 404 {object} response.Envelope
// @Router /v1/quizzes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuestions")
	defer scope.End()

	res, err := handler.service.Questions(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quiz questions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckAnswer gives feedback on a single answer.
// @Summary Check an answer
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.CheckAnswerRequest true "Check Answer Request"
// @Success 200 {object} response.Envelope{data=dto.CheckAnswerResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/quizzes/{id}/check [post]
// @Security BearerAuth
func (handler *Handler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAnswer")
	defer scope.End()

	req := dto.CheckAnswerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Check(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check answer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SubmitQuiz scores a finished quiz and records the result.
// @Summary Submit a quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Submit Quiz Request"
// @Success 200 {object} response.Envelope{data=dto.QuizResultResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/quizzes/{id}/submit [post]
// @Security BearerAuth
func (handler *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitQuiz")
	defer scope.End()

	req := dto.SubmitQuizRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Submit(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit quiz")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quiz submitted successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyResults lists the signed-in user's quiz results.
// @Summary My quiz results
// @Tags Quiz
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope{data=dto.GetResultsResponse}
// @Router /v1/quizzes/results/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyResults(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyResults")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.MyResults(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quiz results")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetLeaderboard ranks users by average quiz percentage.
// @Summary Quiz leaderboard
// @Tags Quiz
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.LeaderboardResponse}
// @Router /v1/quizzes/leaderboard [get]
// @Security BearerAuth
func (handler *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeaderboard")
	defer scope.End()

	res, err := handler.service.Leaderboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get leaderboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
