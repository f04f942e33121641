package worker_test

import (
	"context"
	"drivingschool/config"
	kafkaMocks "drivingschool/infras/kafka/mocks"
	"drivingschool/infras/otel/mocks"
	"drivingschool/internal/consumers/reservation"
	lessonMocks "drivingschool/internal/domains/lesson/mocks"
	lessonService "drivingschool/internal/domains/lesson/service"
	cacheMocks "drivingschool/shared/cache/mocks"
	"drivingschool/transport/worker"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWorker_RunStopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "drivingschool-worker"
	cfg.Kafka.Topics.ReservationEvents = "reservation-events"

	lessons := lessonService.New(lessonMocks.NewMockLesson(ctrl), cacheMocks.NewMockRedisCache(ctrl), cfg, mocks.NewOtel())

	client.EXPECT().
		Consume(gomock.Any(), "drivingschool-worker", "reservation-events", gomock.Any()).
		Do(func(ctx context.Context, _, _ string, _ func(context.Context, kafkaGo.Message) error) {
			<-ctx.Done()
		})
	client.EXPECT().Close().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		worker.New(reservation.New(client, lessons, cfg), client).Run(ctx)
	}()

	cancel()

	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
