package model

import (
	"database/sql/driver"
	"drivingschool/shared/enum"
	"drivingschool/shared/model"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID          = "id"
	FieldPlateNumber = "plate_number"
	FieldPhotoURL    = "photo_url"
	FieldActive      = "active"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

func (t Transmission) IsValid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

func (t *Transmission) Scan(src any) error {
	return enum.Scan(t, src)
}

func (t Transmission) Value() (driver.Value, error) {
	return enum.Value(t)
}

type Vehicle struct {
	ID           string       `db:"id"`
	Brand        string       `db:"brand"`
	Model        string       `db:"model"`
	PlateNumber  string       `db:"plate_number"`
	Transmission Transmission `db:"transmission"`
	PhotoURL     *string      `db:"photo_url"`
	Active       bool         `db:"active"`
	model.Metadata
}
