package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/otel"
	"drivingschool/infras/s3"
	"drivingschool/internal/domains/instructor/model"
	"drivingschool/internal/domains/instructor/model/dto"
	"drivingschool/internal/domains/instructor/repository"
	"drivingschool/shared"
	"drivingschool/shared/base64"
	"drivingschool/shared/cache"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	CachePrefix     = "instructors"
	cacheKeyActive  = "active"
	photoDirectory  = "instructors"
	activeOrderedBy = "instructors.full_name"
)

type Instructor interface {
	ListActive(ctx context.Context) (dto.GetInstructorsResponse, error)
	Create(ctx context.Context, req dto.CreateInstructorRequest) (dto.InstructorResponse, error)
	// UploadPhoto stores a base64 photo and replaces the previous one.
	UploadPhoto(ctx context.Context, id string, req dto.UploadPhotoRequest) (dto.PhotoResponse, error)
}

type serviceImpl struct {
	repo  repository.Instructor
	cache cache.RedisCache
	s3    s3.S3
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Instructor, cache cache.RedisCache, s3 s3.S3, cfg *config.Config, otel otel.Otel) Instructor {
	return &serviceImpl{
		repo:  repo,
		cache: cache,
		s3:    s3,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) ListActive(ctx context.Context) (res dto.GetInstructorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CachePrefix, cacheKeyActive)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	instructors, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: activeOrderedBy, SortDir: gDto.SortDirAsc}, repository.Active())
	if err != nil {
		log.Error().Err(err).Msg("failed to get instructors")

		return res, fmt.Errorf("failed to get instructors: %w", err)
	}

	res.FromModels(instructors)

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to cache instructors")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInstructorRequest) (res dto.InstructorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	instructor := req.ToModel(session.UserID(ctx))

	if err = s.repo.Insert(ctx, instructor); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("an instructor with this email already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create instructor")

		return res, fmt.Errorf("failed to create instructor: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	res.FromModel(instructor)

	return res, nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, id string, req dto.UploadPhotoRequest) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	instructor, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get instructor")

		return res, fmt.Errorf("failed to get instructor: %w", err)
	}

	if instructor.ID == "" {
		return res, failure.NotFound("instructor not found") // nolint:wrapcheck
	}

	contentType, data, err := base64.Decode(req.Photo)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	fileName := instructor.ID + "-" + uuid.NewString() + base64.Extension(contentType)

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, photoDirectory, fileName, contentType, data)
	if err != nil {
		if errors.Is(err, s3.ErrStorageDisabled) {
			return res, failure.Unimplemented("photo storage is not configured") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to upload instructor photo")

		return res, fmt.Errorf("failed to upload instructor photo: %w", err)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(photoUpdate{PhotoURL: url}, session.UserID(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to save instructor photo")

		return res, fmt.Errorf("failed to save instructor photo: %w", err)
	}

	if instructor.PhotoURL != nil {
		s.deleteObject(ctx, *instructor.PhotoURL)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	res.URL = url

	return res, nil
}

type photoUpdate struct {
	PhotoURL string `db:"photo_url"`
}

func (s *serviceImpl) deleteObject(ctx context.Context, url string) {
	objectName := s.s3.GetObjectNameFromURL(constant.Empty, url)
	if objectName == "" {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.s3.DeleteFile(c, constant.Empty, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete previous instructor photo")
		}
	}()
}
