package dto

import (
	"drivingschool/internal/domains/lesson/calendar"
	"drivingschool/internal/domains/lesson/model"
	"drivingschool/internal/domains/lesson/slot"
	"drivingschool/shared/constant"
	gModel "drivingschool/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateLessonRequest struct {
	LessonDate      string     `json:"lesson_date"      validate:"required,datetime=2006-01-02"`
	StartTime       string     `json:"start_time"       validate:"required,datetime=15:04"`
	EndTime         string     `json:"end_time"         validate:"required,datetime=15:04"`
	Type            model.Type `json:"type"             validate:"required,enum"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=15,max=480"`
	Price           float64    `json:"price"            validate:"gte=0"`
	InstructorID    string     `json:"instructor_id"    validate:"required,uuid"`
	VehicleID       *string    `json:"vehicle_id"       validate:"omitempty,uuid"`
}

func (c *CreateLessonRequest) ToModel(date time.Time, start, end model.ClockTime, user string) model.Lesson {
	return model.Lesson{
		ID:              uuid.NewString(),
		LessonDate:      date,
		StartTime:       start,
		EndTime:         end,
		Type:            c.Type,
		DurationMinutes: c.DurationMinutes,
		Price:           c.Price,
		InstructorID:    c.InstructorID,
		VehicleID:       c.VehicleID,
		Status:          model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type InstructorSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type VehicleSummary struct {
	ID          string `json:"id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
}

type LessonResponse struct {
	ID              string            `json:"id"`
	LessonDate      string            `json:"lesson_date"`
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	Type            model.Type        `json:"type"`
	DurationMinutes int               `json:"duration_minutes"`
	Price           float64           `json:"price"`
	Status          model.Status      `json:"status"`
	Instructor      InstructorSummary `json:"instructor"`
	Vehicle         *VehicleSummary   `json:"vehicle,omitempty"`
}

func (r *LessonResponse) FromModel(lesson model.Lesson) {
	r.ID = lesson.ID
	r.LessonDate = lesson.DateKey()
	r.StartTime = string(lesson.StartTime)
	r.EndTime = string(lesson.EndTime)
	r.Type = lesson.Type
	r.DurationMinutes = lesson.DurationMinutes
	r.Price = lesson.Price
	r.Status = lesson.Status
	r.Instructor = InstructorSummary{ID: lesson.InstructorID, FullName: lesson.InstructorName}

	if lesson.VehicleID != nil {
		r.Vehicle = &VehicleSummary{
			ID:          *lesson.VehicleID,
			Brand:       deref(lesson.VehicleBrand),
			Model:       deref(lesson.VehicleModel),
			PlateNumber: deref(lesson.VehiclePlate),
		}
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

func fromModels(lessons []model.Lesson) []LessonResponse {
	res := make([]LessonResponse, len(lessons))
	for i, lesson := range lessons {
		res[i].FromModel(lesson)
	}

	return res
}

type DayResponse struct {
	Date    string           `json:"date"`
	Count   int              `json:"count"`
	Lessons []LessonResponse `json:"lessons"`
}

type AvailableLessonsResponse struct {
	InstructorID string           `json:"instructor_id"`
	Type         string           `json:"type"`
	Total        int              `json:"total"`
	Days         []DayResponse    `json:"days"`
	Lessons      []LessonResponse `json:"lessons"`
}

func (r *AvailableLessonsResponse) FromGrouped(grouped slot.Grouped, selection slot.Selection) {
	r.InstructorID = selection.InstructorID
	r.Type = selection.Type
	r.Total = grouped.Len()
	r.Lessons = fromModels(grouped.Flatten())

	dates := grouped.Dates()
	r.Days = make([]DayResponse, len(dates))

	for i, date := range dates {
		r.Days[i] = DayResponse{
			Date:    date,
			Count:   grouped.Count(date),
			Lessons: fromModels(grouped.On(date)),
		}
	}
}

type CalendarDayResponse struct {
	Date    string           `json:"date"`
	Day     int              `json:"day"`
	Count   int              `json:"count"`
	Lessons []LessonResponse `json:"lessons"`
}

type CalendarResponse struct {
	Month         string                `json:"month"`
	PreviousMonth *string               `json:"previous_month"`
	NextMonth     string                `json:"next_month"`
	LeadingBlanks int                   `json:"leading_blanks"`
	Days          []CalendarDayResponse `json:"days"`
}

func (r *CalendarResponse) FromView(view calendar.View) {
	r.Month = view.Month.String()
	r.NextMonth = view.Next.String()
	r.LeadingBlanks = view.LeadingBlanks

	if view.Previous != nil {
		previous := view.Previous.String()
		r.PreviousMonth = &previous
	}

	r.Days = make([]CalendarDayResponse, len(view.Cells))
	for i, cell := range view.Cells {
		r.Days[i] = CalendarDayResponse{
			Date:    cell.Date,
			Day:     cell.Day,
			Count:   cell.Count(),
			Lessons: fromModels(cell.Lessons),
		}
	}
}

// ParseLessonDate reads a YYYY-MM-DD date as midnight UTC.
func ParseLessonDate(value string) (time.Time, error) {
	return time.Parse(constant.DateOnlyFormat, value)
}
