package model

import (
	"database/sql/driver"
	lessonModel "drivingschool/internal/domains/lesson/model"
	"drivingschool/shared/enum"
	"drivingschool/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldLessonID  = "lesson_id"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the admin workflow allows s -> next.
// Completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Active reservations hold their lesson.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s *Status) Scan(src any) error {
	return enum.Scan(s, src)
}

func (s Status) Value() (driver.Value, error) {
	return enum.Value(s)
}

type Reservation struct {
	ID       string  `db:"id"`
	UserID   string  `db:"user_id"`
	LessonID string  `db:"lesson_id"`
	Status   Status  `db:"status"`
	Notes    *string `db:"notes"`

	UserName        string                `db:"user_name"        table:"users"       column:"full_name"`
	UserEmail       string                `db:"user_email"       table:"users"       column:"email"`
	LessonDate      time.Time             `db:"lesson_date"      table:"lessons"     column:"lesson_date"`
	LessonStartTime lessonModel.ClockTime `db:"lesson_start"     table:"lessons"     column:"start_time"`
	LessonEndTime   lessonModel.ClockTime `db:"lesson_end"       table:"lessons"     column:"end_time"`
	LessonType      lessonModel.Type      `db:"lesson_type"      table:"lessons"     column:"type"`
	InstructorID    string                `db:"instructor_id"    table:"lessons"     column:"instructor_id"`
	InstructorName  string                `db:"instructor_name"  table:"instructors" column:"full_name"`
	VehiclePlate    *string               `db:"vehicle_plate"    table:"vehicles"    column:"plate_number"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN users ON users.id = reservations.user_id " +
		"JOIN lessons ON lessons.id = reservations.lesson_id " +
		"JOIN instructors ON instructors.id = lessons.instructor_id " +
		"LEFT JOIN vehicles ON vehicles.id = lessons.vehicle_id"
}

type EventType string

const (
	EventCreated       EventType = "reservation.created"
	EventStatusChanged EventType = "reservation.status_changed"
)

// Event is published to the reservation topic keyed by lesson id.
type Event struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	LessonID      string    `json:"lesson_id"`
	UserID        string    `json:"user_id"`
	From          Status    `json:"from,omitempty"`
	To            Status    `json:"to"`
	OccurredAt    time.Time `json:"occurred_at"`
}
