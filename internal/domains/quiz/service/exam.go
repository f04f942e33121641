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
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"drivingschool/shared/timezone"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ExamCachePrefix namespaces finished exam results.
const ExamCachePrefix = "exams"

const cacheKeyExamResult = "result"

type Exam interface {
	// Start begins a mock exam, or returns the one the user is already taking.
	Start(ctx context.Context) (dto.ExamStateResponse, error)
	Get(ctx context.Context, id string) (dto.ExamStateResponse, error)
	Answer(ctx context.Context, id string, req dto.AnswerExamRequest) (dto.ExamStateResponse, error)
	Finish(ctx context.Context, id string) (dto.ExamResultResponse, error)
	// Close abandons a running exam without saving a result.
	Close(ctx context.Context, id string) error
	// Shutdown closes every running exam and stops listening to session events.
	Shutdown()
}

type examSession struct {
	id      string
	userID  string
	exam    *engine.Exam
	saved   atomic.Bool
	release sync.Once
}

// finishedExam is kept in the cache once an exam is over.
type finishedExam struct {
	UserID  string                 `json:"user_id"`
	Answers []int                  `json:"answers"`
	Result  dto.ExamResultResponse `json:"result"`
}

type examManager struct {
	*recorder
	bank  *bank.Bank
	otel  otel.Otel
	ticks engine.TickSource

	mu          sync.Mutex
	sessions    map[string]*examSession
	unsubscribe func()
}

func NewExam(bank *bank.Bank, repo repository.Result, kafka kafka.Client, cache cache.RedisCache, metrics metrics.Metrics, hub session.Hub, cfg *config.Config, otel otel.Otel) Exam {
	return newExam(bank, repo, kafka, cache, metrics, hub, cfg, otel, engine.Every(time.Second))
}

func newExam(bank *bank.Bank, repo repository.Result, kafka kafka.Client, cache cache.RedisCache, metrics metrics.Metrics, hub session.Hub, cfg *config.Config, otel otel.Otel, ticks engine.TickSource) *examManager {
	m := &examManager{
		recorder: &recorder{
			repo:    repo,
			kafka:   kafka,
			cache:   cache,
			metrics: metrics,
			cfg:     cfg,
			now:     timezone.Now,
		},
		bank:     bank,
		otel:     otel,
		ticks:    ticks,
		sessions: map[string]*examSession{},
	}

	m.unsubscribe = hub.Subscribe(m.onSessionEvent)

	return m
}

func (m *examManager) config() engine.ExamConfig {
	return engine.ExamConfig{
		Duration: time.Duration(m.cfg.Exam.DurationSeconds) * time.Second,
		PassMark: m.cfg.Exam.PassMark,
	}
}

func (m *examManager) Start(ctx context.Context) (res dto.ExamStateResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartExam")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	m.mu.Lock()

	for _, sess := range m.sessions {
		if sess.userID == userID {
			m.mu.Unlock()

			return m.state(sess), nil
		}
	}

	sess := &examSession{
		id:     uuid.NewString(),
		userID: userID,
	}

	background := context.WithoutCancel(ctx)
	sess.exam = engine.NewExam(m.bank.Exam(), m.config(), func(result engine.ExamResult) {
		m.complete(background, sess, result)
	})

	m.sessions[sess.id] = sess
	m.mu.Unlock()

	m.metrics.ExamsRunning(1)
	sess.exam.Start(m.ticks)

	log.Info().Str("exam_id", sess.id).Str("user_id", userID).Msg("mock exam started")

	return m.state(sess), nil
}

func (m *examManager) Get(ctx context.Context, id string) (res dto.ExamStateResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetExam")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)

	if sess, ok := m.running(id, userID); ok {
		return m.state(sess), nil
	}

	finished, ok := m.finished(ctx, id, userID)
	if !ok {
		return res, failure.NotFound("exam not found") // nolint:wrapcheck
	}

	exam := m.bank.Exam()

	return dto.ExamStateResponse{
		ExamID:    id,
		Title:     exam.Title,
		Questions: dto.QuestionsFrom(exam.Questions),
		Answers:   finished.Answers,
		Finished:  true,
		Result:    &finished.Result,
	}, nil
}

func (m *examManager) Answer(ctx context.Context, id string, req dto.AnswerExamRequest) (res dto.ExamStateResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AnswerExam")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)

	sess, ok := m.running(id, userID)
	if !ok {
		if _, finished := m.finished(ctx, id, userID); finished {
			return res, failure.BadRequest(engine.ErrExamFinished) // nolint:wrapcheck
		}

		return res, failure.NotFound("exam not found") // nolint:wrapcheck
	}

	if err = sess.exam.Answer(*req.QuestionIndex, *req.Answer); err != nil {
		if errors.Is(err, engine.ErrExamClosed) {
			return res, failure.NotFound("exam not found") // nolint:wrapcheck
		}

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return m.state(sess), nil
}

func (m *examManager) Finish(ctx context.Context, id string) (res dto.ExamResultResponse, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FinishExam")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)

	sess, ok := m.running(id, userID)
	if !ok {
		finished, found := m.finished(ctx, id, userID)
		if !found {
			return res, failure.NotFound("exam not found") // nolint:wrapcheck
		}

		return finished.Result, nil
	}

	result, err := sess.exam.Finish()
	if err != nil {
		return res, failure.NotFound("exam not found") // nolint:wrapcheck
	}

	res.FromResult(sess.id, result, sess.saved.Load())

	return res, nil
}

func (m *examManager) Close(ctx context.Context, id string) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CloseExam")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)

	sess, ok := m.running(id, userID)
	if !ok {
		if _, finished := m.finished(ctx, id, userID); finished {
			return nil
		}

		return failure.NotFound("exam not found") // nolint:wrapcheck
	}

	m.abandon(sess)

	return nil
}

func (m *examManager) Shutdown() {
	m.unsubscribe()

	m.mu.Lock()
	sessions := make([]*examSession, 0, len(m.sessions))

	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()

	for _, sess := range sessions {
		m.abandon(sess)
	}

	log.Info().Int("closed", len(sessions)).Msg("exam sessions shut down")
}

func (m *examManager) onSessionEvent(event session.Event) {
	if event.Kind != session.SignedOut {
		return
	}

	m.mu.Lock()
	sessions := []*examSession{}

	for _, sess := range m.sessions {
		if sess.userID == event.UserID {
			sessions = append(sessions, sess)
		}
	}
	m.mu.Unlock()

	for _, sess := range sessions {
		log.Info().Str("exam_id", sess.id).Str("user_id", sess.userID).Msg("closing exam on sign-out")
		m.abandon(sess)
	}
}

// running returns the exam only to its owner.
func (m *examManager) running(id, userID string) (*examSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok || userID == "" || sess.userID != userID {
		return nil, false
	}

	return sess, true
}

func (m *examManager) finished(ctx context.Context, id, userID string) (finishedExam, bool) {
	var finished finishedExam

	if userID == "" {
		return finished, false
	}

	if err := m.cache.Get(ctx, shared.BuildCacheKey(ExamCachePrefix, cacheKeyExamResult, id), &finished); err != nil {
		return finished, false
	}

	return finished, finished.UserID == userID
}

// complete runs once per exam, on the goroutine that finished it.
func (m *examManager) complete(ctx context.Context, sess *examSession, result engine.ExamResult) {
	exam := m.bank.Exam()

	saved := m.record(ctx, attempt{
		userID:  sess.userID,
		quizID:  model.ExamID,
		title:   exam.Title,
		score:   result.Correct,
		total:   result.Total,
		percent: result.Percentage,
		elapsed: result.TimeTakenSeconds,
		passed:  &result.Passed,
	})
	sess.saved.Store(saved)

	finished := finishedExam{
		UserID:  sess.userID,
		Answers: sess.exam.State().Answers,
	}
	finished.Result.FromResult(sess.id, result, saved)

	key := shared.BuildCacheKey(ExamCachePrefix, cacheKeyExamResult, sess.id)
	if err := m.cache.Save(ctx, key, finished, m.cfg.Exam.ResultRetentionSeconds); err != nil {
		log.Error().Err(err).Str("exam_id", sess.id).Msg("failed to cache exam result")
	}

	m.drop(sess)

	log.Info().Str("exam_id", sess.id).Int("correct", result.Correct).Bool("timed_out", result.TimedOut).Bool("saved", saved).Msg("mock exam finished")
}

func (m *examManager) abandon(sess *examSession) {
	m.drop(sess)
	sess.exam.Close()
}

func (m *examManager) drop(sess *examSession) {
	m.mu.Lock()
	delete(m.sessions, sess.id)
	m.mu.Unlock()

	sess.release.Do(func() {
		m.metrics.ExamsRunning(-1)
	})
}

func (m *examManager) state(sess *examSession) dto.ExamStateResponse {
	state := sess.exam.State()

	res := dto.ExamStateResponse{
		ExamID:           sess.id,
		Title:            m.bank.Exam().Title,
		Questions:        dto.QuestionsFrom(sess.exam.Questions()),
		Answers:          state.Answers,
		RemainingSeconds: int(state.Remaining.Seconds()),
		Finished:         state.Finished,
	}

	if state.Finished {
		result := dto.ExamResultResponse{}
		result.FromResult(sess.id, state.Result, sess.saved.Load())
		res.Result = &result
	}

	return res
}
