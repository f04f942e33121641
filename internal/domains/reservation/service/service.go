package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/kafka"
	"drivingschool/infras/metrics"
	"drivingschool/infras/otel"
	lessonService "drivingschool/internal/domains/lesson/service"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/internal/domains/reservation/model/dto"
	"drivingschool/internal/domains/reservation/repository"
	"drivingschool/shared"
	"drivingschool/shared/cache"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"drivingschool/shared/timezone"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var errBookFailed = errors.New("failed to book lesson")

// sortable maps public sort keys to qualified columns of the joined listing.
var sortable = map[string]string{
	"created_at":  "reservations.created_at",
	"lesson_date": "lessons.lesson_date",
	"status":      "reservations.status",
}

type Reservation interface {
	// Book reserves a lesson for the signed-in user.
	Book(ctx context.Context, req dto.BookLessonRequest) (dto.ReservationResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams, status model.Status) (dto.GetReservationsResponse, error)
	ListAll(ctx context.Context, params gDto.QueryParams, status model.Status) (dto.GetReservationsResponse, error)
	// Cancel lets the owner cancel a pending or confirmed reservation.
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo    repository.Reservation
	kafka   kafka.Client
	cache   cache.RedisCache
	metrics metrics.Metrics
	cfg     *config.Config
	otel    otel.Otel
	now     func() time.Time
}

func New(repo repository.Reservation, kafka kafka.Client, cache cache.RedisCache, metrics metrics.Metrics, cfg *config.Config, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:    repo,
		kafka:   kafka,
		cache:   cache,
		metrics: metrics,
		cfg:     cfg,
		otel:    otel,
		now:     timezone.Now,
	}
}

func (s *serviceImpl) Book(ctx context.Context, req dto.BookLessonRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required to book a lesson") // nolint:wrapcheck
	}

	now := s.now()
	reservation := req.ToModel(userID)

	if s.cfg.Booking.GuardedClaim {
		err = s.repo.ClaimAndInsert(ctx, reservation, now.Format(constant.DateOnlyFormat))
	} else {
		err = s.repo.Insert(ctx, reservation)
	}

	if err != nil {
		if errors.Is(err, repository.ErrLessonUnavailable) {
			s.metrics.BookingAttempt(metrics.BookingUnavailable)

			return res, failure.Conflict(repository.ErrLessonUnavailable.Error()) // nolint:wrapcheck
		}

		s.metrics.BookingAttempt(metrics.BookingFailed)
		log.Error().Err(err).Str("lesson_id", req.LessonID).Msg("failed to book lesson")

		return res, failure.InternalError(errBookFailed) // nolint:wrapcheck
	}

	s.metrics.BookingAttempt(metrics.BookingBooked)
	s.publish(ctx, model.Event{
		Type:          model.EventCreated,
		ReservationID: reservation.ID,
		LessonID:      reservation.LessonID,
		UserID:        userID,
		To:            model.StatusPending,
		OccurredAt:    now,
	})
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, lessonService.CachePrefix)

	reservation.CreatedAt = now
	reservation.ModifiedAt = now
	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams, status model.Status) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	if status != "" && !status.IsValid() {
		return res, failure.BadRequestFromString("unknown reservation status") // nolint:wrapcheck
	}

	return s.list(ctx, params, repository.ByStatus(repository.ByUser(userID), status))
}

func (s *serviceImpl) ListAll(ctx context.Context, params gDto.QueryParams, status model.Status) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if status != "" && !status.IsValid() {
		return res, failure.BadRequestFromString("unknown reservation status") // nolint:wrapcheck
	}

	return s.list(ctx, params, repository.ByStatus(gDto.FilterGroup{}, status))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	params = normalizeParams(params)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return failure.Unauthorized("login required") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, repository.OwnedBy(id, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !reservation.Status.Active() {
		return failure.BadRequestFromString("only pending or confirmed reservations can be cancelled") // nolint:wrapcheck
	}

	return s.transition(ctx, reservation, model.StatusCancelled, userID)
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !reservation.Status.CanTransitionTo(req.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot change reservation from %s to %s", reservation.Status, req.Status)) // nolint:wrapcheck
	}

	if err = s.transition(ctx, reservation, req.Status, session.UserID(ctx)); err != nil {
		return res, err
	}

	reservation.Status = req.Status
	reservation.ModifiedAt = s.now()
	res.FromModel(reservation)

	return res, nil
}

// transition persists from -> next, releasing the lesson on cancellation, then
// announces the change.
func (s *serviceImpl) transition(ctx context.Context, reservation model.Reservation, next model.Status, user string) error {
	err := s.repo.Transition(ctx, reservation, next, next == model.StatusCancelled, user)
	if errors.Is(err, repository.ErrStaleStatus) {
		return failure.Conflict("reservation was changed by someone else, reload and retry") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	s.publish(ctx, model.Event{
		Type:          model.EventStatusChanged,
		ReservationID: reservation.ID,
		LessonID:      reservation.LessonID,
		UserID:        reservation.UserID,
		From:          reservation.Status,
		To:            next,
		OccurredAt:    s.now(),
	})
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, lessonService.CachePrefix)

	return nil
}

// publish sends the event in the background; a broker failure never fails the request.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.ReservationEvents, kafka.Message{Key: event.LessonID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Str("reservation_id", event.ReservationID).Msg("failed to publish reservation event")
		}
	}()
}

func normalizeParams(params gDto.QueryParams) gDto.QueryParams {
	column, ok := sortable[params.SortBy]
	if !ok {
		column = sortable[constant.DefaultValueSortBy]
	}

	params.SortBy = column

	if params.SortDir == "" {
		params.SortDir = constant.DefaultValueSortDir
	}

	return params
}
