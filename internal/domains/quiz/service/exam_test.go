package service_test

import (
	"context"
	"drivingschool/infras/otel/mocks"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/internal/domains/quiz/model/dto"
	"drivingschool/internal/domains/quiz/service"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ticks chan time.Time

func (c ticks) source() (<-chan time.Time, func()) {
	return c, func() {}
}

func (c ticks) tick(n int) {
	for range n {
		c <- time.Now()
	}
}

func newExamService(t *testing.T, durationSeconds int) (service.Exam, *fixture, ticks, session.Hub) {
	t.Helper()

	f := newFixture(t)
	f.cfg.Exam.DurationSeconds = durationSeconds

	clock := make(ticks)
	hub := session.NewHub()

	svc := service.NewExamWithTicks(f.bank, f.repo, f.kafka, f.cache, f.metrics, hub, f.cfg, mocks.NewOtel(), clock.source)
	t.Cleanup(svc.Shutdown)

	return svc, f, clock, hub
}

func answerCorrectly(ctx context.Context, t *testing.T, svc service.Exam, f *fixture, examID string, count int) {
	t.Helper()

	for i, question := range f.bank.Exam().Questions[:count] {
		_, err := svc.Answer(ctx, examID, dto.AnswerExamRequest{QuestionIndex: ptr(i), Answer: ptr(question.CorrectAnswer)})
		require.NoError(t, err)
	}
}

func TestExamService_TimeoutSavesOnce(t *testing.T) {
	svc, f, clock, _ := newExamService(t, 3)
	ctx := signedIn(learnerID)

	f.metrics.EXPECT().ExamsRunning(1)
	f.metrics.EXPECT().ExamsRunning(-1)
	f.metrics.EXPECT().QuizCompleted(model.ExamID, true)

	var saved model.Result

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, result model.Result) error {
			saved = result

			return nil
		}).Times(1)

	state, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Questions, 40)
	assert.Equal(t, 3, state.RemainingSeconds)
	assert.Equal(t, -1, state.Answers[0])

	answerCorrectly(ctx, t, svc, f, state.ExamID, 20)

	clock.tick(3)

	event := f.nextEvent(t)
	assert.Equal(t, model.ExamID, event.QuizID)
	require.NotNil(t, event.Passed)
	assert.False(t, *event.Passed)

	res, err := svc.Finish(ctx, state.ExamID)
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.True(t, res.Saved)
	assert.Equal(t, 20, res.Correct)
	assert.Equal(t, 20, res.Unanswered)
	assert.Equal(t, 50, res.Percentage)
	assert.Equal(t, 3, res.TimeTakenSeconds)
	assert.False(t, res.Passed)

	assert.Equal(t, learnerID, saved.UserID)
	assert.Equal(t, 20, saved.Score)
	assert.Equal(t, 40, saved.TotalQuestions)
	assert.Equal(t, 3, saved.TimeTakenSeconds)

	again, err := svc.Finish(ctx, state.ExamID)
	require.NoError(t, err)
	assert.Equal(t, res, again)

	finished, err := svc.Get(ctx, state.ExamID)
	require.NoError(t, err)
	assert.True(t, finished.Finished)
	assert.Equal(t, state.ExamID, finished.Result.ExamID)
	assert.Equal(t, f.bank.Exam().Questions[0].CorrectAnswer, finished.Answers[0])

	_, err = svc.Answer(ctx, state.ExamID, dto.AnswerExamRequest{QuestionIndex: ptr(30), Answer: ptr(0)})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestExamService_ManualFinish(t *testing.T) {
	svc, f, _, _ := newExamService(t, 1800)
	ctx := signedIn(learnerID)

	f.metrics.EXPECT().ExamsRunning(1)
	f.metrics.EXPECT().ExamsRunning(-1)
	f.metrics.EXPECT().QuizCompleted(model.ExamID, false)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(1)

	state, err := svc.Start(ctx)
	require.NoError(t, err)

	answerCorrectly(ctx, t, svc, f, state.ExamID, 40)

	res, err := svc.Finish(ctx, state.ExamID)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.False(t, res.TimedOut)
	assert.False(t, res.Saved)
	assert.Equal(t, 100, res.Percentage)

	again, err := svc.Finish(ctx, state.ExamID)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestExamService_StartIsIdempotentPerUser(t *testing.T) {
	svc, f, _, _ := newExamService(t, 1800)
	ctx := signedIn(learnerID)

	f.metrics.EXPECT().ExamsRunning(1).Times(1)
	f.metrics.EXPECT().ExamsRunning(-1).Times(1)

	first, err := svc.Start(ctx)
	require.NoError(t, err)

	second, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ExamID, second.ExamID)

	_, err = svc.Start(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestExamService_Ownership(t *testing.T) {
	svc, f, _, _ := newExamService(t, 1800)
	ctx := signedIn(learnerID)
	intruder := signedIn(otherID)

	f.metrics.EXPECT().ExamsRunning(1)
	f.metrics.EXPECT().ExamsRunning(-1)

	state, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Get(intruder, state.ExamID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Answer(intruder, state.ExamID, dto.AnswerExamRequest{QuestionIndex: ptr(0), Answer: ptr(0)})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Finish(intruder, state.ExamID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Close(intruder, state.ExamID)))

	_, err = svc.Answer(ctx, state.ExamID, dto.AnswerExamRequest{QuestionIndex: ptr(40), Answer: ptr(0)})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	require.NoError(t, svc.Close(ctx, state.ExamID))

	_, err = svc.Get(ctx, state.ExamID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestExamService_SignOutClosesWithoutSaving(t *testing.T) {
	svc, f, _, hub := newExamService(t, 1800)
	ctx := signedIn(learnerID)

	f.metrics.EXPECT().ExamsRunning(1).Times(2)
	f.metrics.EXPECT().ExamsRunning(-1).Times(2)

	mine, err := svc.Start(ctx)
	require.NoError(t, err)

	theirs, err := svc.Start(signedIn(otherID))
	require.NoError(t, err)

	hub.Publish(session.Event{Kind: session.SignedIn, UserID: learnerID})

	_, err = svc.Get(ctx, mine.ExamID)
	require.NoError(t, err)

	hub.Publish(session.Event{Kind: session.SignedOut, UserID: learnerID})

	_, err = svc.Get(ctx, mine.ExamID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Get(signedIn(otherID), theirs.ExamID)
	assert.NoError(t, err)
}

func TestExamService_Shutdown(t *testing.T) {
	svc, f, _, hub := newExamService(t, 1800)
	ctx := signedIn(learnerID)

	f.metrics.EXPECT().ExamsRunning(1)
	f.metrics.EXPECT().ExamsRunning(-1)

	state, err := svc.Start(ctx)
	require.NoError(t, err)

	svc.Shutdown()

	_, err = svc.Get(ctx, state.ExamID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	hub.Publish(session.Event{Kind: session.SignedOut, UserID: learnerID})
}
