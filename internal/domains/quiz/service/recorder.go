package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	"drivingschool/infras/metrics"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/internal/domains/quiz/repository"
	"drivingschool/shared"
	"drivingschool/shared/cache"
	gModel "drivingschool/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type attempt struct {
	userID  string
	quizID  string
	title   string
	score   int
	total   int
	percent int
	elapsed int
	passed  *bool
}

// recorder persists finished attempts. Persistence failures are reported as
// saved=false, never as errors.
type recorder struct {
	repo    repository.Result
	kafka   kafka.Client
	cache   cache.RedisCache
	metrics metrics.Metrics
	cfg     *config.Config
	now     func() time.Time
}

func (r *recorder) record(ctx context.Context, a attempt) bool {
	result := model.Result{
		ID:               uuid.NewString(),
		UserID:           a.userID,
		QuizID:           a.quizID,
		QuizTitle:        a.title,
		Score:            a.score,
		TotalQuestions:   a.total,
		Percentage:       a.percent,
		TimeTakenSeconds: a.elapsed,
		Metadata:         gModel.Metadata{CreatedBy: a.userID, ModifiedBy: a.userID},
	}

	saved := true

	if err := r.repo.Insert(ctx, result); err != nil {
		log.Error().Err(err).Str("user_id", a.userID).Str("quiz_id", a.quizID).Msg("failed to save quiz result")

		saved = false
	} else {
		shared.InvalidateCaches(context.WithoutCancel(ctx), r.cache, CachePrefix)
	}

	r.metrics.QuizCompleted(a.quizID, saved)
	r.publish(ctx, model.CompletedEvent{
		Type:       model.EventCompleted,
		UserID:     a.userID,
		QuizID:     a.quizID,
		Score:      a.score,
		Total:      a.total,
		Percentage: a.percent,
		Passed:     a.passed,
		Saved:      saved,
		OccurredAt: r.now(),
	})

	return saved
}

func (r *recorder) publish(ctx context.Context, event model.CompletedEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := r.kafka.SendMessages(c, r.cfg.Kafka.Topics.QuizEvents, kafka.Message{Key: event.UserID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("quiz_id", event.QuizID).Msg("failed to publish quiz event")
		}
	}()
}
