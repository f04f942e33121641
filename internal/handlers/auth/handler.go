package auth

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/auth/model/dto"
	"drivingschool/internal/domains/auth/service"
	"drivingschool/shared/constant"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/logout", handler.Logout)
		r.Post("/change-password", handler.ChangePassword)
	})
}

func (handler *Handler) scope(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".auth."+name)

	return r.WithContext(ctx), scope
}

func fail(w http.ResponseWriter, scope otel.Scope, action string, err error) {
	scope.TraceError(err)
	log.Error().Err(err).Str("action", action).Msg("auth request failed")

	response.WithError(w, err)
}

// Register creates a learner account.
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} response.Envelope{data=userDto.UserResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode registration", err)

		return
	}

	user, err := handler.service.Register(r.Context(), req)
	if err != nil {
		fail(w, scope, "register", err)

		return
	}

	response.WithJSON(w, http.StatusCreated, user)
}

// Login exchanges credentials for a token pair.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope{data=dto.LoginResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode credentials", err)

		return
	}

	tokens, err := handler.service.Login(r.Context(), req)
	if err != nil {
		fail(w, scope, "login", err)

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// RefreshToken rotates a refresh token. The consumed token is revoked.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Envelope{data=dto.LoginResponse}
// @Failure 401 {object} response.Envelope
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode refresh token", err)

		return
	}

	tokens, err := handler.service.RefreshToken(r.Context(), req)
	if err != nil {
		fail(w, scope, "refresh token", err)

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// Logout revokes the access token and, when sent, the refresh token. The
// body is optional.
// @Summary Logout
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} response.Envelope{message=string}
// @Failure 401 {object} response.Envelope
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Logout")
	defer scope.End()

	var req dto.LogoutRequest
	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			fail(w, scope, "decode logout", err)

			return
		}
	}

	if err := handler.service.Logout(r.Context(), req); err != nil {
		fail(w, scope, "logout", err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// ChangePassword replaces the signed-in user's password.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} response.Envelope{message=string}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode password change", err)

		return
	}

	if err := handler.service.ChangePassword(r.Context(), req); err != nil {
		fail(w, scope, "change password", err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
