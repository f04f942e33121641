package dto

import (
	"drivingschool/internal/domains/vehicle/model"
	gDto "drivingschool/shared/dto"
	gModel "drivingschool/shared/model"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	Brand        string             `json:"brand"        validate:"required,max=100"`
	Model        string             `json:"model"        validate:"required,max=100"`
	PlateNumber  string             `json:"plate_number" validate:"required,max=20"`
	Transmission model.Transmission `json:"transmission" validate:"required,enum"`
}

func (c *CreateVehicleRequest) ToModel(user string) model.Vehicle {
	return model.Vehicle{
		ID:           uuid.NewString(),
		Brand:        c.Brand,
		Model:        c.Model,
		PlateNumber:  strings.ToUpper(strings.TrimSpace(c.PlateNumber)),
		Transmission: c.Transmission,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile multipart.File        `json:"-"`
}

type PhotoResponse struct {
	URL string `json:"url"`
}

type VehicleResponse struct {
	ID           string             `json:"id"`
	Brand        string             `json:"brand"`
	Model        string             `json:"model"`
	PlateNumber  string             `json:"plate_number"`
	Transmission model.Transmission `json:"transmission"`
	PhotoURL     *string            `json:"photo_url,omitempty"`
	Active       bool               `json:"active"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(vehicle model.Vehicle) {
	r.ID = vehicle.ID
	r.Brand = vehicle.Brand
	r.Model = vehicle.Model
	r.PlateNumber = vehicle.PlateNumber
	r.Transmission = vehicle.Transmission
	r.PhotoURL = vehicle.PhotoURL
	r.Active = vehicle.Active
	r.Metadata.FromModel(vehicle.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle) {
	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}
