package service_test

import (
	"context"
	"drivingschool/infras/otel/mocks"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/internal/domains/quiz/model/dto"
	"drivingschool/internal/domains/quiz/service"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQuizService(t *testing.T) (service.Quiz, *fixture) {
	t.Helper()

	f := newFixture(t)

	return service.New(f.bank, f.repo, f.kafka, f.cache, f.metrics, f.cfg, mocks.NewOtel()), f
}

func roadSignAnswers(t *testing.T, f *fixture, correct bool) []int {
	t.Helper()

	quiz, err := f.bank.Quiz("road-signs")
	require.NoError(t, err)

	answers := make([]int, len(quiz.Questions))
	for i, question := range quiz.Questions {
		answers[i] = question.CorrectAnswer
		if !correct {
			answers[i] = (question.CorrectAnswer + 1) % len(question.Options)
		}
	}

	return answers
}

func TestQuizService_Catalog(t *testing.T) {
	svc, _ := newQuizService(t)

	res := svc.Catalog(context.Background())

	require.Len(t, res.Quizzes, 4)
	assert.Equal(t, "priority-rules", res.Quizzes[0].ID)
	assert.Equal(t, 5, res.Quizzes[0].TotalQuestions)
	assert.Equal(t, model.ExamID, res.Exam.ID)
	assert.Equal(t, 40, res.Exam.TotalQuestions)
	assert.Equal(t, 1800, res.Exam.DurationSeconds)
	assert.Equal(t, 35, res.Exam.PassMark)
}

func TestQuizService_Questions(t *testing.T) {
	svc, _ := newQuizService(t)

	res, err := svc.Questions(context.Background(), "general-code")
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
	assert.NotEmpty(t, res.Questions[0].Options)

	_, err = svc.Questions(context.Background(), "unknown")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestQuizService_Check(t *testing.T) {
	svc, f := newQuizService(t)

	quiz, err := f.bank.Quiz("priority-rules")
	require.NoError(t, err)

	question := quiz.Questions[0]

	tests := []struct {
		name         string
		req          dto.CheckAnswerRequest
		expectedCode int
		correct      bool
	}{
		{
			name:    "correct answer",
			req:     dto.CheckAnswerRequest{QuestionID: question.ID, Answer: ptr(question.CorrectAnswer)},
			correct: true,
		},
		{
			name: "wrong answer",
			req:  dto.CheckAnswerRequest{QuestionID: question.ID, Answer: ptr((question.CorrectAnswer + 1) % len(question.Options))},
		},
		{
			name:         "unknown question",
			req:          dto.CheckAnswerRequest{QuestionID: 999, Answer: ptr(0)},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "option out of range",
			req:          dto.CheckAnswerRequest{QuestionID: question.ID, Answer: ptr(len(question.Options))},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Check(context.Background(), quiz.ID, tt.req)
			if tt.expectedCode != 0 {
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.correct, res.Correct)
			assert.Equal(t, question.CorrectAnswer, res.CorrectAnswer)
			assert.Equal(t, question.Explanation, res.Explanation)
		})
	}
}

func TestQuizService_Submit(t *testing.T) {
	t.Run("all correct is saved and announced", func(t *testing.T) {
		svc, f := newQuizService(t)

		var saved model.Result

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, result model.Result) error {
				saved = result

				return nil
			})
		f.metrics.EXPECT().QuizCompleted("road-signs", true)

		res, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   roadSignAnswers(t, f, true),
			StartedAt: time.Now().Add(-2 * time.Minute),
		})
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Equal(t, 5, res.Score)
		assert.Equal(t, 5, res.TotalQuestions)
		assert.Equal(t, 100, res.Percentage)
		assert.InDelta(t, 120, res.TimeTakenSeconds, 2)

		assert.Equal(t, learnerID, saved.UserID)
		assert.Equal(t, "road-signs", saved.QuizID)
		assert.Equal(t, 5, saved.TotalQuestions)
		assert.NotEmpty(t, saved.ID)

		assert.Equal(t, service.CachePrefix+constant.Asterix, <-f.cleared)

		event := f.nextEvent(t)
		assert.Equal(t, model.EventCompleted, event.Type)
		assert.Equal(t, learnerID, event.UserID)
		assert.True(t, event.Saved)
		assert.Nil(t, event.Passed)
	})

	t.Run("all wrong scores zero", func(t *testing.T) {
		svc, f := newQuizService(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.metrics.EXPECT().QuizCompleted("road-signs", true)

		res, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   roadSignAnswers(t, f, false),
			StartedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Zero(t, res.Score)
		assert.Zero(t, res.Percentage)
		assert.Equal(t, 5, res.TotalQuestions)
	})

	t.Run("save failure keeps the local result", func(t *testing.T) {
		svc, f := newQuizService(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.metrics.EXPECT().QuizCompleted("road-signs", false)

		res, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   roadSignAnswers(t, f, true),
			StartedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.False(t, res.Saved)
		assert.Equal(t, 5, res.Score)
		assert.False(t, f.nextEvent(t).Saved)
		assert.Empty(t, f.cleared)
	})

	t.Run("future start time counts as zero elapsed", func(t *testing.T) {
		svc, f := newQuizService(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.metrics.EXPECT().QuizCompleted("road-signs", true)

		res, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   roadSignAnswers(t, f, true),
			StartedAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Zero(t, res.TimeTakenSeconds)
	})

	t.Run("rejects a partial answer sheet", func(t *testing.T) {
		svc, f := newQuizService(t)

		_, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   roadSignAnswers(t, f, true)[:4],
			StartedAt: time.Now(),
		})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects out of range options", func(t *testing.T) {
		svc, _ := newQuizService(t)

		_, err := svc.Submit(signedIn(learnerID), "road-signs", dto.SubmitQuizRequest{
			Answers:   []int{0, 0, 0, 0, 9},
			StartedAt: time.Now(),
		})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("requires a user", func(t *testing.T) {
		svc, _ := newQuizService(t)

		_, err := svc.Submit(context.Background(), "road-signs", dto.SubmitQuizRequest{Answers: []int{0}, StartedAt: time.Now()})
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("unknown quiz", func(t *testing.T) {
		svc, _ := newQuizService(t)

		_, err := svc.Submit(signedIn(learnerID), model.ExamID, dto.SubmitQuizRequest{Answers: []int{0}, StartedAt: time.Now()})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestQuizService_Leaderboard(t *testing.T) {
	svc, f := newQuizService(t)

	f.repo.EXPECT().Leaderboard(gomock.Any(), 10).Return([]model.LeaderboardEntry{
		{UserID: "u-1", FullName: "Ana", TotalQuizzes: 3, TotalScore: 14, AveragePercentage: 93},
		{UserID: "u-2", FullName: "Bob", TotalQuizzes: 1, TotalScore: 3, AveragePercentage: 60},
	}, nil).Times(1)

	res, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, 1, res.Entries[0].Rank)
	assert.Equal(t, "Ana", res.Entries[0].FullName)
	assert.Equal(t, 2, res.Entries[1].Rank)

	assert.Eventually(t, func() bool {
		var cached []model.LeaderboardEntry

		return f.cache.Get(context.Background(), "quizzes:leaderboard", &cached) == nil
	}, time.Second, 10*time.Millisecond)

	cached, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res, cached)
}

func TestQuizService_MyResults(t *testing.T) {
	svc, f := newQuizService(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Result, error) {
			assert.Equal(t, "quiz_results.created_at", params.SortBy)
			assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

			return []model.Result{{ID: "r-1", QuizID: "road-signs", Score: 4, TotalQuestions: 5, Percentage: 80}}, nil
		})

	res, err := svc.MyResults(signedIn(learnerID), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "score; DROP TABLE"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 80, res.Results[0].Percentage)

	_, err = svc.MyResults(context.Background(), gDto.QueryParams{})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}
