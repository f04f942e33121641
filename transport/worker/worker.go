package worker

import (
	"context"
	"drivingschool/infras/kafka"
	"drivingschool/internal/consumers/reservation"
	"sync"

	"github.com/rs/zerolog/log"
)

type Worker struct {
	Reservations *reservation.Consumer
	Kafka        kafka.Client
}

func New(reservations *reservation.Consumer, kafka kafka.Client) *Worker {
	return &Worker{
		Reservations: reservations,
		Kafka:        kafka,
	}
}

// Run starts every consumer and blocks until ctx is done and all of them
// have returned.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		w.Reservations.Run(ctx)
	}()

	wg.Wait()

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Worker stopped.")
}
