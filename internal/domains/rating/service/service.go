package service

import (
	"context"
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/rating/model/dto"
	"drivingschool/internal/domains/rating/repository"
	reservationModel "drivingschool/internal/domains/reservation/model"
	reservationRepository "drivingschool/internal/domains/reservation/repository"
	"drivingschool/shared"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"fmt"

	"github.com/rs/zerolog/log"
)

const newestFirst = "lesson_ratings.created_at"

type Rating interface {
	// Rate records the owner's rating of a completed reservation. Each
	// reservation can be rated once.
	Rate(ctx context.Context, reservationID string, req dto.RateLessonRequest) (dto.RatingResponse, error)
	ListByInstructor(ctx context.Context, instructorID string, params gDto.QueryParams) (dto.InstructorRatingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Rating
	reservations reservationRepository.Reservation
	otel         otel.Otel
}

func New(repo repository.Rating, reservations reservationRepository.Reservation, otel otel.Otel) Rating {
	return &serviceImpl{
		repo:         repo,
		reservations: reservations,
		otel:         otel,
	}
}

func (s *serviceImpl) Rate(ctx context.Context, reservationID string, req dto.RateLessonRequest) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rate")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	reservation, err := s.reservations.Get(ctx, reservationRepository.OwnedBy(reservationID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.Status != reservationModel.StatusCompleted {
		return res, failure.BadRequestFromString("only completed lessons can be rated") // nolint:wrapcheck
	}

	rating := req.ToModel(userID, reservation.ID, reservation.InstructorID)

	if err = s.repo.Insert(ctx, rating); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("this lesson has already been rated") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to rate lesson")

		return res, fmt.Errorf("failed to rate lesson: %w", err)
	}

	res.FromModel(rating)

	return res, nil
}

func (s *serviceImpl) ListByInstructor(ctx context.Context, instructorID string, params gDto.QueryParams) (res dto.InstructorRatingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByInstructor")
	defer scope.End()
	defer scope.TraceIfError(err)

	summary, err := s.repo.Summary(ctx, instructorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to summarise ratings")

		return res, fmt.Errorf("failed to summarise ratings: %w", err)
	}

	params.SortBy = newestFirst
	params.SortDir = gDto.SortDirDesc

	ratings, err := s.repo.GetAll(ctx, params, repository.ByInstructor(instructorID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get ratings")

		return res, fmt.Errorf("failed to get ratings: %w", err)
	}

	res.FromModels(instructorID, summary, ratings, params.Limit)

	return res, nil
}
