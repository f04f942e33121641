package engine_test

import (
	"drivingschool/internal/domains/quiz/bank"
	"drivingschool/internal/domains/quiz/engine"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicks struct {
	ch       chan time.Time
	released atomic.Bool
}

func newFakeTicks() *fakeTicks {
	return &fakeTicks{ch: make(chan time.Time)}
}

func (f *fakeTicks) Source() (<-chan time.Time, func()) {
	return f.ch, func() { f.released.Store(true) }
}

func (f *fakeTicks) Tick(n int) {
	for range n {
		f.ch <- time.Now()
	}
}

func mockExam(t *testing.T) bank.Quiz {
	t.Helper()

	b, err := bank.New()
	require.NoError(t, err)

	return b.Exam()
}

func examConfig(duration time.Duration) engine.ExamConfig {
	return engine.ExamConfig{Duration: duration, PassMark: 35}
}

func TestExam_TimeoutForcesFinish(t *testing.T) {
	exam := mockExam(t)
	ticks := newFakeTicks()
	finished := make(chan engine.ExamResult, 2)

	e := engine.NewExam(exam, examConfig(5*time.Second), func(result engine.ExamResult) {
		finished <- result
	})

	for i, question := range exam.Questions[:30] {
		require.NoError(t, e.Answer(i, question.CorrectAnswer))
	}

	e.Start(ticks.Source)
	ticks.Tick(5)

	var result engine.ExamResult
	select {
	case result = <-finished:
	case <-time.After(time.Second):
		t.Fatal("exam did not finish on timeout")
	}

	assert.True(t, result.TimedOut)
	assert.Equal(t, 30, result.Correct)
	assert.Equal(t, 40, result.Total)
	assert.Equal(t, 10, result.Unanswered)
	assert.Equal(t, 75, result.Percentage)
	assert.Equal(t, 5, result.TimeTakenSeconds)
	assert.False(t, result.Passed)

	again, err := e.Finish()
	require.NoError(t, err)
	assert.Equal(t, result, again)
	assert.Empty(t, finished)
	assert.True(t, ticks.released.Load())

	assert.ErrorIs(t, e.Answer(31, 0), engine.ErrExamFinished)

	state := e.State()
	assert.True(t, state.Finished)
	assert.Zero(t, state.Remaining)
}

func TestExam_ManualFinish(t *testing.T) {
	exam := mockExam(t)
	ticks := newFakeTicks()
	calls := atomic.Int32{}

	e := engine.NewExam(exam, examConfig(30*time.Minute), func(engine.ExamResult) {
		calls.Add(1)
	})
	e.Start(ticks.Source)

	for i, question := range exam.Questions {
		option := question.CorrectAnswer
		if i >= 35 {
			option = (option + 1) % len(question.Options)
		}

		require.NoError(t, e.Answer(i, option))
	}

	ticks.Tick(125)
	assert.Eventually(t, func() bool {
		return e.State().Remaining == 30*time.Minute-125*time.Second
	}, time.Second, time.Millisecond)

	result, err := e.Finish()
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.False(t, result.TimedOut)
	assert.Equal(t, 35, result.Correct)
	assert.Equal(t, 88, result.Percentage)
	assert.Equal(t, 125, result.TimeTakenSeconds)

	total := 0
	for _, category := range result.Categories {
		total += category.Total
	}

	assert.Equal(t, 40, total)

	_, err = e.Finish()
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, ticks.released.Load())
}

func TestExam_Answer(t *testing.T) {
	exam := mockExam(t)
	e := engine.NewExam(exam, examConfig(time.Minute), nil)

	assert.ErrorIs(t, e.Answer(-1, 0), engine.ErrQuestionOutOfRange)
	assert.ErrorIs(t, e.Answer(40, 0), engine.ErrQuestionOutOfRange)
	assert.ErrorIs(t, e.Answer(0, 99), engine.ErrOptionOutOfRange)

	require.NoError(t, e.Answer(3, 1))

	state := e.State()
	assert.Equal(t, 1, state.Answers[3])
	assert.Equal(t, engine.Unset, state.Answers[0])
	assert.Equal(t, time.Minute, state.Remaining)
}

func TestExam_CloseDoesNotScore(t *testing.T) {
	exam := mockExam(t)
	ticks := newFakeTicks()
	calls := atomic.Int32{}

	e := engine.NewExam(exam, examConfig(time.Minute), func(engine.ExamResult) {
		calls.Add(1)
	})
	e.Start(ticks.Source)
	ticks.Tick(3)

	e.Close()

	assert.True(t, ticks.released.Load())
	assert.Zero(t, calls.Load())

	_, err := e.Finish()
	assert.ErrorIs(t, err, engine.ErrExamClosed)
	assert.ErrorIs(t, e.Answer(0, 0), engine.ErrExamClosed)
}
