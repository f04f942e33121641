package model

import "drivingschool/shared/model"

const (
	TableName  = "lesson_ratings"
	EntityName = "lesson_rating"

	FieldID            = "id"
	FieldInstructorID  = "instructor_id"
	FieldReservationID = "reservation_id"

	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	ReservationID string  `db:"reservation_id"`
	InstructorID  string  `db:"instructor_id"`
	Rating        int     `db:"rating"`
	Comment       *string `db:"comment"`
	UserName      string  `db:"user_name" table:"users" column:"full_name"`
	model.Metadata
}

func (Rating) GetJoinQuery() string {
	return "JOIN users ON users.id = lesson_ratings.user_id"
}

// Summary aggregates the ratings of one instructor.
type Summary struct {
	Total   int     `db:"total"`
	Average float64 `db:"average"`
}
