package vehicle

import (
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/vehicle/model/dto"
	"drivingschool/internal/domains/vehicle/service"
	"drivingschool/shared/constant"
	"drivingschool/shared/failure"
	"drivingschool/shared/validator"
	"drivingschool/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Vehicle
	otel    otel.Otel
}

func New(service service.Vehicle, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vehicles", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetVehicles)
		routerGroup.Post("/", handler.CreateVehicle)
		routerGroup.Put("/{id}/photo", handler.UploadPhoto)
	})
}

// GetVehicles lists the fleet.
// @Summary List vehicles
// @Tags Vehicle
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.GetVehiclesResponse}
// @Router /v1/vehicles [get]
// @Security BearerAuth
func (handler *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVehicles")
	defer scope.End()

	vehicles, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vehicles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle adds a vehicle.
// @Summary Create a vehicle
// @Tags Vehicle
// @Accept json
// @Produce json
// @Param request body dto.CreateVehicleRequest true "Create Vehicle Request"
// @Success 201 {object} response.Envelope{data=dto.VehicleResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/vehicles [post]
// @Security BearerAuth
func (handler *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVehicle")
	defer scope.End()

	req := dto.CreateVehicleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vehicle")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UploadPhoto handles a vehicle photo upload.
// @Summary Upload a vehicle photo
// @Tags Vehicle
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param file formData file true "Image file to upload"
// @Success 200 {object} response.Envelope{data=dto.PhotoResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Router /v1/vehicles/{id}/photo [put]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadVehiclePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadPhotoRequest{
		Photo:     fileHeader,
		PhotoFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate photo")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadPhoto(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload vehicle photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle photo uploaded successfully")

	response.WithJSON(w, http.StatusOK, res)
}
