package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/otel"
	"drivingschool/infras/s3"
	"drivingschool/internal/domains/vehicle/model"
	"drivingschool/internal/domains/vehicle/model/dto"
	"drivingschool/internal/domains/vehicle/repository"
	"drivingschool/shared"
	"drivingschool/shared/base64"
	"drivingschool/shared/cache"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/failure"
	"drivingschool/shared/session"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	CachePrefix    = "vehicles"
	cacheKeyAll    = "all"
	photoDirectory = "vehicles"
	listOrderedBy  = "vehicles.brand ASC, vehicles.model"
)

type Vehicle interface {
	List(ctx context.Context) (dto.GetVehiclesResponse, error)
	Create(ctx context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	UploadPhoto(ctx context.Context, id string, req dto.UploadPhotoRequest) (dto.PhotoResponse, error)
}

type serviceImpl struct {
	repo  repository.Vehicle
	cache cache.RedisCache
	s3    s3.S3
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Vehicle, cache cache.RedisCache, s3 s3.S3, cfg *config.Config, otel otel.Otel) Vehicle {
	return &serviceImpl{
		repo:  repo,
		cache: cache,
		s3:    s3,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CachePrefix, cacheKeyAll)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	vehicles, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: listOrderedBy, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, fmt.Errorf("failed to get vehicles: %w", err)
	}

	res.FromModels(vehicles)

	go func() {
		c := context.WithoutCancel(ctx)
		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to cache vehicles")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle := req.ToModel(session.UserID(ctx))

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("a vehicle with this plate number already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create vehicle")

		return res, fmt.Errorf("failed to create vehicle: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, id string, req dto.UploadPhotoRequest) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	vehicle, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return res, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == "" {
		return res, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	extension := strings.ToLower(filepath.Ext(req.Photo.Filename))
	if extension == "" {
		extension = base64.Extension(req.Photo.Header.Get(constant.RequestHeaderContentType))
	}

	url, err := s.s3.UploadFile(ctx, constant.Empty, photoDirectory, req.PhotoFile, req.Photo, vehicle.ID+"-"+uuid.NewString()+extension)
	if err != nil {
		if errors.Is(err, s3.ErrStorageDisabled) {
			return res, failure.Unimplemented("photo storage is not configured") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to upload vehicle photo")

		return res, fmt.Errorf("failed to upload vehicle photo: %w", err)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(photoUpdate{PhotoURL: url}, session.UserID(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to save vehicle photo")

		return res, fmt.Errorf("failed to save vehicle photo: %w", err)
	}

	if vehicle.PhotoURL != nil {
		if objectName := s.s3.GetObjectNameFromURL(constant.Empty, *vehicle.PhotoURL); objectName != "" {
			go func() {
				c := context.WithoutCancel(ctx)
				if err := s.s3.DeleteFile(c, constant.Empty, constant.Empty, objectName); err != nil {
					log.Error().Err(err).Str("object", objectName).Msg("failed to delete previous vehicle photo")
				}
			}()
		}
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CachePrefix)

	res.URL = url

	return res, nil
}

type photoUpdate struct {
	PhotoURL string `db:"photo_url"`
}
