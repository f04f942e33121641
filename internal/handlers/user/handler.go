package user

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/user/model/dto"
	"drivingschool/internal/domains/user/service"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.Me)
		routerGroup.Patch("/me", handler.UpdateMe)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Patch("/{id}", handler.UpdateUser)
	})
}

func (handler *Handler) scope(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".user."+name)

	return r.WithContext(ctx), scope
}

func fail(w http.ResponseWriter, scope otel.Scope, action string, err error) {
	scope.TraceError(err)
	log.Error().Err(err).Str("action", action).Msg("user request failed")

	response.WithError(w, err)
}

// Me returns the signed-in user's profile.
// @Summary Get my profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.UserResponse}
// @Failure 401 {object} response.Envelope
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "Me")
	defer scope.End()

	profile, err := handler.service.Me(r.Context())
	if err != nil {
		fail(w, scope, "get profile", err)

		return
	}

	response.WithJSON(w, http.StatusOK, profile)
}

// UpdateMe changes the signed-in user's name or phone.
// @Summary Update my profile
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope{data=dto.UserResponse}
// @Failure 400 {object} response.Envelope
// @Router /v1/users/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "UpdateMe")
	defer scope.End()

	var req dto.UpdateProfileRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode profile", err)

		return
	}

	profile, err := handler.service.UpdateMe(r.Context(), req)
	if err != nil {
		fail(w, scope, "update profile", err)

		return
	}

	response.WithJSON(w, http.StatusOK, profile)
}

// GetUsers pages through every account. Admin only.
// @Summary List users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sorting"
// @Success 200 {object} response.Envelope{data=dto.GetUsersResponse}
// @Failure 403 {object} response.Envelope
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	users, err := handler.service.GetAll(r.Context(), params)
	if err != nil {
		fail(w, scope, "list users", err)

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// UpdateUser changes another user's profile, role or active flag. Admin only.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=dto.UserResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, "decode user update", err)

		return
	}

	user, err := handler.service.Update(r.Context(), chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		fail(w, scope, "update user", err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}
