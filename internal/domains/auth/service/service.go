package service

import (
	"context"
	"drivingschool/config"
	"drivingschool/infras/jwt"
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/auth/model/dto"
	userModel "drivingschool/internal/domains/user/model"
	userDto "drivingschool/internal/domains/user/model/dto"
	userRepo "drivingschool/internal/domains/user/repository"
	userService "drivingschool/internal/domains/user/service"
	"drivingschool/shared"
	"drivingschool/shared/cache"
	"drivingschool/shared/constant"
	"drivingschool/shared/failure"
	"drivingschool/shared/password"
	"drivingschool/shared/session"
	"drivingschool/shared/timezone"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid email or password"

var errTokenRevoked = errors.New("token has been revoked")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	// Logout revokes the current access token, and the refresh token when given,
	// then announces the sign-out.
	Logout(ctx context.Context, req dto.LogoutRequest) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cache      cache.RedisCache
	hub        session.Hub
	jwtService jwt.JWT
	cfg        *config.Config
	otel       otel.Otel
	now        func() time.Time
}

func New(userRepo userRepo.User, cache cache.RedisCache, hub session.Hub, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cache:      cache,
		hub:        hub,
		jwtService: jwt,
		cfg:        cfg,
		otel:       otel,
		now:        timezone.Now,
	}
}

// RevokedKey is the cache key marking a token id as revoked.
func RevokedKey(tokenID string) string {
	return shared.BuildCacheKey(constant.CacheKeyRevokedToken, tokenID)
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := req.ToUserModel(constant.Empty)

	exists, err := s.userRepo.Exist(ctx, userRepo.ByEmail(user.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	user.Password, err = password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(userService.CachePrefix, "list"))

	now := s.now()
	user.CreatedAt = now
	user.ModifiedAt = now
	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := userRepo.ByEmail(strings.ToLower(strings.TrimSpace(req.Email)))

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(msgInvalidCredentials) // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(jwt.Subject{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := s.now()
	lastLogin := dto.UpdateLastLoginRequest{LastLogin: now}

	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), emailFilter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	user.LastLogin = &now

	var userResponse userDto.UserResponse
	userResponse.FromModel(user)

	res.FromTokenPair(tokenPair)
	res.User = &userResponse

	s.hub.Publish(session.Event{Kind: session.SignedIn, UserID: user.ID})

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	if s.revoked(ctx, claims.TokenID) {
		log.Warn().Err(errTokenRevoked).Str("user_id", claims.UserID).Msg("refresh with revoked token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	tokenPair, _, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	// refresh tokens are single use
	s.revoke(ctx, claims)

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, ok := session.FromContext(ctx)
	if !ok {
		return failure.Unauthorized("login required") // nolint:wrapcheck
	}

	if user.TokenID != "" {
		key := RevokedKey(user.TokenID)
		if err = s.cache.Save(ctx, key, true, s.cfg.JWT.AccessExpireMin*constant.MinutesToSeconds); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("failed to revoke access token")

			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}

	if req.RefreshToken != "" {
		claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
		if err == nil && claims.UserID == user.ID {
			s.revoke(ctx, claims)
		}
	}

	s.hub.Publish(session.Event{Kind: session.SignedOut, UserID: user.ID})

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID := session.UserID(ctx)
	if userID == "" {
		return failure.Unauthorized("login required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) revoked(ctx context.Context, tokenID string) bool {
	var revoked bool

	return s.cache.Get(ctx, RevokedKey(tokenID), &revoked) == nil && revoked
}

func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) {
	ttl := claims.RemainingSeconds(s.now())
	if ttl == 0 {
		return
	}

	if err := s.cache.Save(context.WithoutCancel(ctx), RevokedKey(claims.TokenID), true, ttl); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke refresh token")
	}
}
