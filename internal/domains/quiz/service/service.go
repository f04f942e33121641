package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	"drivingschool/infras/metrics"
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/quiz/bank"
	"drivingschool/internal/domains/quiz/engine"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/internal/domains/quiz/model/dto"
	"drivingschool/internal/domains/quiz/repository"
	"drivingschool/shared"
	"drivingschool/shared/cache"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"drivingschool/shared/timezone"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// CachePrefix namespaces the cached leaderboard.
const CachePrefix = "quizzes"

const (
	cacheKeyLeaderboard = "leaderboard"
	resultsOrdering     = "quiz_results.created_at"
)

type Quiz interface {
	Catalog(ctx context.Context) dto.CatalogResponse
	// Questions returns a quiz without its answers.
	Questions(ctx context.Context, quizID string) (dto.QuizResponse, error)
	Check(ctx context.Context, quizID string, req dto.CheckAnswerRequest) (dto.CheckAnswerResponse, error)
	// Submit scores a quiz played on the client and records the result.
	Submit(ctx context.Context, quizID string, req dto.SubmitQuizRequest) (dto.QuizResultResponse, error)
	MyResults(ctx context.Context, params gDto.QueryParams) (dto.GetResultsResponse, error)
	Leaderboard(ctx context.Context) (dto.LeaderboardResponse, error)
}

type serviceImpl struct {
	*recorder
	bank *bank.Bank
	otel otel.Otel
}

func New(bank *bank.Bank, repo repository.Result, kafka kafka.Client, cache cache.RedisCache, metrics metrics.Metrics, cfg *config.Config, otel otel.Otel) Quiz {
	return &serviceImpl{
		recorder: &recorder{
			repo:    repo,
			kafka:   kafka,
			cache:   cache,
			metrics: metrics,
			cfg:     cfg,
			now:     timezone.Now,
		},
		bank: bank,
		otel: otel,
	}
}

func (s *serviceImpl) Catalog(ctx context.Context) (res dto.CatalogResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog")
	defer scope.End()

	quizzes := s.bank.Quizzes()

	res.Quizzes = make([]dto.QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		res.Quizzes[i].FromQuiz(quiz)
	}

	res.Exam.FromQuiz(s.bank.Exam())
	res.Exam.DurationSeconds = s.cfg.Exam.DurationSeconds
	res.Exam.PassMark = s.cfg.Exam.PassMark

	return res
}

func (s *serviceImpl) quiz(quizID string) (bank.Quiz, error) {
	quiz, err := s.bank.Quiz(quizID)
	if errors.Is(err, bank.ErrQuizNotFound) {
		return quiz, failure.NotFound("quiz not found") // nolint:wrapcheck
	}

	return quiz, err
}

func (s *serviceImpl) Questions(ctx context.Context, quizID string) (res dto.QuizResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Questions")
	defer scope.End()
	defer scope.TraceIfError(err)

	quiz, err := s.quiz(quizID)
	if err != nil {
		return res, err
	}

	res.FromQuiz(quiz)

	return res, nil
}

func (s *serviceImpl) Check(ctx context.Context, quizID string, req dto.CheckAnswerRequest) (res dto.CheckAnswerResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	quiz, err := s.quiz(quizID)
	if err != nil {
		return res, err
	}

	question, ok := quiz.Question(req.QuestionID)
	if !ok {
		return res, failure.NotFound("question not found") // nolint:wrapcheck
	}

	feedback, err := engine.Check(question, *req.Answer)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res.FromFeedback(feedback)

	return res, nil
}

func (s *serviceImpl) Submit(ctx context.Context, quizID string, req dto.SubmitQuizRequest) (res dto.QuizResultResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	quiz, err := s.quiz(quizID)
	if err != nil {
		return res, err
	}

	if len(req.Answers) != len(quiz.Questions) {
		return res, failure.BadRequestFromString(fmt.Sprintf("expected %d answers, got %d", len(quiz.Questions), len(req.Answers))) // nolint:wrapcheck
	}

	startedAt := req.StartedAt
	if now := s.now(); startedAt.After(now) {
		startedAt = now
	}

	result, err := engine.NewQuiz(quiz, s.now, engine.StartedAt(startedAt)).Play(req.Answers)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res = dto.QuizResultResponse{
		QuizID:           quiz.ID,
		Score:            result.Score,
		TotalQuestions:   result.Total,
		Percentage:       result.Percentage,
		TimeTakenSeconds: result.ElapsedSeconds,
	}

	res.Saved = s.record(ctx, attempt{
		userID:  userID,
		quizID:  quiz.ID,
		title:   quiz.Title,
		score:   result.Score,
		total:   result.Total,
		percent: result.Percentage,
		elapsed: result.ElapsedSeconds,
	})

	return res, nil
}

func (s *serviceImpl) MyResults(ctx context.Context, params gDto.QueryParams) (res dto.GetResultsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyResults")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	params.SortBy = resultsOrdering
	if params.SortDir == "" {
		params.SortDir = constant.DefaultValueSortDir
	}

	filter := repository.ByUser(userID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count quiz results")

		return res, fmt.Errorf("failed to count quiz results: %w", err)
	}

	results, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get quiz results")

		return res, fmt.Errorf("failed to get quiz results: %w", err)
	}

	res.FromModels(results, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Leaderboard(ctx context.Context) (res dto.LeaderboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Leaderboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CachePrefix, cacheKeyLeaderboard)

	var entries []model.LeaderboardEntry

	if err = s.cache.Get(ctx, cacheKey, &entries); err == nil {
		res.FromModels(entries)

		return res, nil
	}

	entries, err = s.repo.Leaderboard(ctx, s.cfg.Exam.LeaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to get leaderboard")

		return res, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, entries, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to cache leaderboard")
		}
	}()

	res.FromModels(entries)

	return res, nil
}
