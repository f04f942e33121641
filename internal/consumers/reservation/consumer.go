// Package reservation keeps lessons in step with the reservation events
// published by the API.
package reservation

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	lessonModel "drivingschool/internal/domains/lesson/model"
	lessonService "drivingschool/internal/domains/lesson/service"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/shared/failure"
	"net/http"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Consumer struct {
	kafka   kafka.Client
	lessons lessonService.Lesson
	cfg     *config.Config
}

func New(kafka kafka.Client, lessons lessonService.Lesson, cfg *config.Config) *Consumer {
	return &Consumer{
		kafka:   kafka,
		lessons: lessons,
		cfg:     cfg,
	}
}

// Run blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	log.Info().Str("topic", c.cfg.Kafka.Topics.ReservationEvents).Msg("reservation consumer started")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.ReservationEvents, c.Handle)
}

// Handle applies one event. Undecodable messages are skipped so they do not
// block the partition, as are updates the lesson service rejects as invalid.
// Any other failure is returned for redelivery.
func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) error {
	event, err := kafka.DecodeKafkaMessage[model.Event](message)
	if err != nil {
		log.Warn().Err(err).Str("key", string(message.Key)).Msg("skipping malformed reservation event")

		return nil
	}

	if event.Type != model.EventStatusChanged {
		return nil
	}

	var status lessonModel.Status

	switch event.To {
	case model.StatusConfirmed:
		status = lessonModel.StatusBooked
	case model.StatusCancelled:
		status = lessonModel.StatusAvailable
	default:
		return nil
	}

	log.Info().Str("reservation_id", event.ReservationID).Str("lesson_id", event.LessonID).Str("lesson_status", string(status)).Msg("syncing lesson status")

	err = c.lessons.SyncStatus(ctx, event.LessonID, status)
	if failure.HasCode(err, http.StatusBadRequest) {
		log.Warn().Err(err).Str("lesson_id", event.LessonID).Msg("dropping reservation event that can never apply")

		return nil
	}

	return err // nolint:wrapcheck
}
