package model

import "drivingschool/shared/model"

const (
	TableName  = "instructors"
	EntityName = "instructor"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPhotoURL = "photo_url"
	FieldActive   = "active"
)

type Instructor struct {
	ID       string  `db:"id"`
	FullName string  `db:"full_name"`
	Email    string  `db:"email"`
	Phone    *string `db:"phone"`
	PhotoURL *string `db:"photo_url"`
	Active   bool    `db:"active"`
	model.Metadata
}
