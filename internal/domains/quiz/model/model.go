package model

import (
	"drivingschool/shared/model"
	"time"
)

const (
	TableName  = "quiz_results"
	EntityName = "quiz_result"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"

	// ExamID is the quiz id results of the mock exam are stored under.
	ExamID = "mock-exam"

	EventCompleted = "quiz.completed"
)

type Result struct {
	ID               string `db:"id"`
	UserID           string `db:"user_id"`
	QuizID           string `db:"quiz_id"`
	QuizTitle        string `db:"quiz_title"`
	Score            int    `db:"score"`
	TotalQuestions   int    `db:"total_questions"`
	Percentage       int    `db:"percentage"`
	TimeTakenSeconds int    `db:"time_taken_seconds"`
	model.Metadata
}

type LeaderboardEntry struct {
	UserID            string `db:"user_id"`
	FullName          string `db:"full_name"`
	TotalQuizzes      int    `db:"total_quizzes"`
	TotalScore        int    `db:"total_score"`
	AveragePercentage int    `db:"average_percentage"`
}

// CompletedEvent is published for every finished quiz or exam.
type CompletedEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	QuizID     string    `json:"quiz_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Passed     *bool     `json:"passed,omitempty"`
	Saved      bool      `json:"saved"`
	OccurredAt time.Time `json:"occurred_at"`
}
