package dto

import (
	"drivingschool/internal/domains/instructor/model"
	gDto "drivingschool/shared/dto"
	gModel "drivingschool/shared/model"

	"github.com/google/uuid"
)

type CreateInstructorRequest struct {
	FullName string  `json:"full_name" validate:"required,max=255"`
	Email    string  `json:"email"     validate:"required,email,max=255"`
	Phone    *string `json:"phone"     validate:"omitempty,e164"`
}

func (c *CreateInstructorRequest) ToModel(user string) model.Instructor {
	return model.Instructor{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UploadPhotoRequest carries the photo as a base64 data URL.
type UploadPhotoRequest struct {
	Photo string `json:"photo" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type PhotoResponse struct {
	URL string `json:"url"`
}

type InstructorResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *InstructorResponse) FromModel(instructor model.Instructor) {
	r.ID = instructor.ID
	r.FullName = instructor.FullName
	r.Email = instructor.Email
	r.Phone = instructor.Phone
	r.PhotoURL = instructor.PhotoURL
	r.Active = instructor.Active
	r.Metadata.FromModel(instructor.Metadata)
}

type GetInstructorsResponse struct {
	Instructors []InstructorResponse `json:"instructors"`
}

func (r *GetInstructorsResponse) FromModels(models []model.Instructor) {
	r.Instructors = make([]InstructorResponse, len(models))
	for i, mod := range models {
		r.Instructors[i].FromModel(mod)
	}
}
