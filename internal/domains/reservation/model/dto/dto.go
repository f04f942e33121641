package dto

import (
	lessonModel "drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/reservation/model"
	"drivingschool/shared"
	"drivingschool/shared/constant"
	gDto "drivingschool/shared/dto"
	gModel "drivingschool/shared/model"

	"github.com/google/uuid"
)

type BookLessonRequest struct {
	LessonID string  `json:"lesson_id" validate:"required,uuid"`
	Notes    *string `json:"notes"     validate:"omitempty,max=500"`
}

func (b *BookLessonRequest) ToModel(userID string) model.Reservation {
	return model.Reservation{
		ID:       uuid.NewString(),
		UserID:   userID,
		LessonID: b.LessonID,
		Status:   model.StatusPending,
		Notes:    b.Notes,
		Metadata: gModel.Metadata{
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type LessonSummary struct {
	ID             string           `json:"id"`
	LessonDate     string           `json:"lesson_date,omitempty"`
	StartTime      string           `json:"start_time,omitempty"`
	EndTime        string           `json:"end_time,omitempty"`
	Type           lessonModel.Type `json:"type,omitempty"`
	InstructorID   string           `json:"instructor_id,omitempty"`
	InstructorName string           `json:"instructor_name,omitempty"`
	VehiclePlate   *string          `json:"vehicle_plate,omitempty"`
}

type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ReservationResponse struct {
	ID     string        `json:"id"`
	Status model.Status  `json:"status"`
	Notes  *string       `json:"notes,omitempty"`
	Lesson LessonSummary `json:"lesson"`
	User   UserSummary   `json:"user"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.Status = reservation.Status
	r.Notes = reservation.Notes
	r.Lesson = LessonSummary{
		ID:             reservation.LessonID,
		StartTime:      string(reservation.LessonStartTime),
		EndTime:        string(reservation.LessonEndTime),
		Type:           reservation.LessonType,
		InstructorID:   reservation.InstructorID,
		InstructorName: reservation.InstructorName,
		VehiclePlate:   reservation.VehiclePlate,
	}

	if !reservation.LessonDate.IsZero() {
		r.Lesson.LessonDate = reservation.LessonDate.Format(constant.DateOnlyFormat)
	}

	r.User = UserSummary{
		ID:       reservation.UserID,
		FullName: reservation.UserName,
		Email:    reservation.UserEmail,
	}
	r.Metadata.FromModel(reservation.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
