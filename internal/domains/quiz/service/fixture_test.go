package service_test

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	kafkaMocks "drivingschool/infras/kafka/mocks"
	metricsMocks "drivingschool/infras/metrics/mocks"
	"drivingschool/internal/domains/quiz/bank"
	quizMocks "drivingschool/internal/domains/quiz/mocks"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/shared/cache"
	cacheMocks "drivingschool/shared/cache/mocks"
	"drivingschool/shared/constant"
	"drivingschool/shared/session"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	learnerID = "0b7c6a4e-3a59-4f43-9a55-1d0f3c4f2a01"
	otherID   = "7e3f1c2b-9d8a-4b6c-8e5f-0a1b2c3d4e5f"
	topic     = "quiz-events"
)

type fixture struct {
	bank    *bank.Bank
	repo    *quizMocks.MockResult
	kafka   *kafkaMocks.MockClient
	cache   *cacheMocks.MockRedisCache
	metrics *metricsMocks.MockMetrics
	cfg     *config.Config
	events  chan model.CompletedEvent
	cleared chan string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	b, err := bank.New()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.QuizEvents = topic
	cfg.Exam.DurationSeconds = 1800
	cfg.Exam.PassMark = 35
	cfg.Exam.ResultRetentionSeconds = 3600
	cfg.Exam.LeaderboardSize = 10

	f := &fixture{
		bank:    b,
		repo:    quizMocks.NewMockResult(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		metrics: metricsMocks.NewMockMetrics(ctrl),
		cfg:     cfg,
		events:  make(chan model.CompletedEvent, 4),
		cleared: make(chan string, 4),
	}

	f.kafka.EXPECT().SendMessages(gomock.Any(), topic, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			for _, message := range messages {
				f.events <- message.Value.(model.CompletedEvent)
			}

			return nil
		}).AnyTimes()

	store := sync.Map{}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
			data, err := json.Marshal(value)
			if err != nil {
				return err
			}

			store.Store(key, data)

			return nil
		}).AnyTimes()
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			data, ok := store.Load(key)
			if !ok {
				return cache.Nil
			}

			return json.Unmarshal(data.([]byte), value)
		}).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			f.cleared <- pattern

			return nil
		}).AnyTimes()

	return f
}

func (f *fixture) nextEvent(t *testing.T) model.CompletedEvent {
	t.Helper()

	select {
	case event := <-f.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no quiz event published")

		return model.CompletedEvent{}
	}
}

func signedIn(userID string) context.Context {
	return session.WithUser(context.Background(), session.User{ID: userID, Role: constant.RoleUser})
}

func ptr[T any](v T) *T {
	return &v
}
