package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/lesson/calendar"
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/lesson/model/dto"
	"drivingschool/internal/domains/lesson/repository"
	"drivingschool/internal/domains/lesson/slot"
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

// CachePrefix namespaces every cached lesson listing.
const CachePrefix = "lessons"

const (
	cacheKeyAvailable = "available"
	availableOrdering = "lessons.lesson_date ASC, lessons.start_time"
	workerUser        = "system"
)

type Lesson interface {
	ListAvailable(ctx context.Context, selection slot.Selection) (dto.AvailableLessonsResponse, error)
	Calendar(ctx context.Context, month string, selection slot.Selection) (dto.CalendarResponse, error)
	Create(ctx context.Context, req dto.CreateLessonRequest) (dto.LessonResponse, error)
	// SyncStatus aligns a lesson with the status of its reservation. It is
	// idempotent.
	SyncStatus(ctx context.Context, lessonID string, status model.Status) error
}

type serviceImpl struct {
	repo  repository.Lesson
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
	now   func() time.Time
}

func New(repo repository.Lesson, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Lesson {
	return &serviceImpl{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
		now:   timezone.Now,
	}
}

// available returns bookable lessons from today on, ordered by date then start time.
func (s *serviceImpl) available(ctx context.Context) (lessons []model.Lesson, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".available")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := s.now().Format(constant.DateOnlyFormat)
	cacheKey := shared.BuildCacheKey(CachePrefix, cacheKeyAvailable, today)

	if err = s.cache.Get(ctx, cacheKey, &lessons); err == nil {
		return lessons, nil
	}

	lessons, err = s.repo.GetAll(ctx, gDto.QueryParams{SortBy: availableOrdering, SortDir: gDto.SortDirAsc}, repository.AvailableFrom(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to get available lessons")

		return nil, fmt.Errorf("failed to get available lessons: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, lessons, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to cache available lessons")
		}
	}()

	return lessons, nil
}

func (s *serviceImpl) ListAvailable(ctx context.Context, selection slot.Selection) (res dto.AvailableLessonsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	lessons, err := s.available(ctx)
	if err != nil {
		return res, err
	}

	res.FromGrouped(slot.Group(slot.Filter(lessons, selection)), selection)

	return res, nil
}

func (s *serviceImpl) Calendar(ctx context.Context, month string, selection slot.Selection) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	cursor := calendar.NewCursor(s.now)

	if month != "" {
		target, err := calendar.ParseMonth(month)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		cursor.MoveTo(target)
	}

	lessons, err := s.available(ctx)
	if err != nil {
		return res, err
	}

	res.FromView(cursor.View(slot.Group(slot.Filter(lessons, selection))))

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLessonRequest) (res dto.LessonResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := dto.ParseLessonDate(req.LessonDate)
	if err != nil {
		return res, failure.BadRequestFromString("lesson_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	if date.Format(constant.DateOnlyFormat) < s.now().Format(constant.DateOnlyFormat) {
		return res, failure.BadRequestFromString("lesson_date cannot be in the past") // nolint:wrapcheck
	}

	start, startErr := model.ParseClockTime(req.StartTime)
	end, endErr := model.ParseClockTime(req.EndTime)

	if err = errors.Join(startErr, endErr); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
	}

	lesson := req.ToModel(date, start, end, session.UserID(ctx))

	if err = s.repo.Insert(ctx, lesson); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("instructor or vehicle does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create lesson")

		return res, fmt.Errorf("failed to create lesson: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	res.FromModel(lesson)

	return res, nil
}

func (s *serviceImpl) SyncStatus(ctx context.Context, lessonID string, status model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !status.IsValid() {
		return failure.BadRequestFromString("unknown lesson status") // nolint:wrapcheck
	}

	changed, err := s.repo.SyncStatus(ctx, lessonID, status, workerUser)
	if err != nil {
		log.Error().Err(err).Str("lesson_id", lessonID).Msg("failed to sync lesson status")

		return fmt.Errorf("failed to sync lesson status: %w", err)
	}

	if !changed {
		log.Debug().Str("lesson_id", lessonID).Str("status", string(status)).Msg("lesson already in requested status")

		return nil
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	return nil
}
