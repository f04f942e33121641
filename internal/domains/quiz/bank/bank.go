// Package bank holds the embedded question bank: the short quizzes and the
// mock exam.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed quizzes.json
var quizzesData []byte

//go:embed exam.json
var examData []byte

var ErrQuizNotFound = errors.New("quiz not found")

type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category,omitempty"`
}

// IsCorrect reports whether option is the right answer. Out of range options are wrong.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

func (q Question) validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d has fewer than two options", q.ID)
	}

	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("question %d has correct answer %d outside its options", q.ID, q.CorrectAnswer)
	}

	return nil
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question returns the question with the given id.
func (q Quiz) Question(id int) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}

	return Question{}, false
}

func (q Quiz) validate() error {
	if q.ID == "" || len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q is empty", q.ID)
	}

	for _, question := range q.Questions {
		if err := question.validate(); err != nil {
			return fmt.Errorf("quiz %s: %w", q.ID, err)
		}
	}

	return nil
}

type Bank struct {
	quizzes []Quiz
	exam    Quiz
}

// New parses and validates the embedded bank.
func New() (*Bank, error) {
	b := &Bank{}

	if err := json.Unmarshal(quizzesData, &b.quizzes); err != nil {
		return nil, fmt.Errorf("failed to decode quizzes: %w", err)
	}

	if err := json.Unmarshal(examData, &b.exam); err != nil {
		return nil, fmt.Errorf("failed to decode mock exam: %w", err)
	}

	for _, quiz := range append([]Quiz{b.exam}, b.quizzes...) {
		if err := quiz.validate(); err != nil {
			return nil, err
		}
	}

	log.Info().Int("quizzes", len(b.quizzes)).Int("exam_questions", len(b.exam.Questions)).Msg("Question bank loaded")

	return b, nil
}

func (b *Bank) Quizzes() []Quiz {
	return b.quizzes
}

func (b *Bank) Quiz(id string) (Quiz, error) {
	for _, quiz := range b.quizzes {
		if quiz.ID == id {
			return quiz, nil
		}
	}

	return Quiz{}, ErrQuizNotFound
}

func (b *Bank) Exam() Quiz {
	return b.exam
}
