// Package engine scores short quizzes and timed mock exams.
package engine

import (
	"drivingschool/internal/domains/quiz/bank"
	"errors"
	"math"
	"time"
)

var (
	ErrNoSelection      = errors.New("no option selected")
	ErrOptionOutOfRange = errors.New("option out of range")
	ErrAlreadySubmitted = errors.New("question already submitted")
	ErrNotSubmitted     = errors.New("current question is not submitted")
	ErrFirstQuestion    = errors.New("already on the first question")
	ErrQuizCompleted    = errors.New("quiz already completed")
)

type QuestionState int

const (
	Unanswered QuestionState = iota
	Selected
	Submitted
)

// Percentage is round(100 * score / total), rounding halves away from zero.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}

	return int(math.Round(100 * float64(score) / float64(total)))
}

type Feedback struct {
	Correct       bool
	CorrectAnswer int
	Explanation   string
}

// Check scores a single answer without touching any quiz state.
func Check(question bank.Question, option int) (Feedback, error) {
	if option < 0 || option >= len(question.Options) {
		return Feedback{}, ErrOptionOutOfRange
	}

	return Feedback{
		Correct:       question.IsCorrect(option),
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}, nil
}

type Result struct {
	Score          int
	Total          int
	Percentage     int
	ElapsedSeconds int
}

type QuizOption func(*Quiz)

// StartedAt backdates the quiz clock, for quizzes played on the client.
func StartedAt(startedAt time.Time) QuizOption {
	return func(q *Quiz) {
		q.startedAt = startedAt
	}
}

// Quiz walks a short quiz question by question.
type Quiz struct {
	quiz      bank.Quiz
	now       func() time.Time
	states    []QuestionState
	selected  []int
	current   int
	score     int
	startedAt time.Time
	result    *Result
}

func NewQuiz(quiz bank.Quiz, now func() time.Time, opts ...QuizOption) *Quiz {
	q := &Quiz{
		quiz: quiz,
		now:  now,
	}

	q.Restart()

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Restart resets every question, the score and the clock.
func (q *Quiz) Restart() {
	q.states = make([]QuestionState, len(q.quiz.Questions))
	q.selected = make([]int, len(q.quiz.Questions))
	q.current = 0
	q.score = 0
	q.startedAt = q.now()
	q.result = nil

	for i := range q.selected {
		q.selected[i] = -1
	}
}

func (q *Quiz) Current() int {
	return q.current
}

func (q *Quiz) State(index int) QuestionState {
	return q.states[index]
}

func (q *Quiz) Score() int {
	return q.score
}

// Result is set once the last question has been passed with Next.
func (q *Quiz) Result() (Result, bool) {
	if q.result == nil {
		return Result{}, false
	}

	return *q.result, true
}

// Select picks an option on the current question. It can be changed until submitted.
func (q *Quiz) Select(option int) error {
	if q.result != nil {
		return ErrQuizCompleted
	}

	question := q.quiz.Questions[q.current]
	if option < 0 || option >= len(question.Options) {
		return ErrOptionOutOfRange
	}

	if q.states[q.current] == Submitted {
		return ErrAlreadySubmitted
	}

	q.selected[q.current] = option
	q.states[q.current] = Selected

	return nil
}

// Submit scores the current question once.
func (q *Quiz) Submit() (Feedback, error) {
	if q.result != nil {
		return Feedback{}, ErrQuizCompleted
	}

	switch q.states[q.current] {
	case Unanswered:
		return Feedback{}, ErrNoSelection
	case Submitted:
		return Feedback{}, ErrAlreadySubmitted
	case Selected:
	}

	feedback, err := Check(q.quiz.Questions[q.current], q.selected[q.current])
	if err != nil {
		return Feedback{}, err
	}

	q.states[q.current] = Submitted

	if feedback.Correct {
		q.score++
	}

	return feedback, nil
}

// Next moves forward. On the last question it completes the quiz and reports true.
func (q *Quiz) Next() (bool, error) {
	if q.result != nil {
		return true, ErrQuizCompleted
	}

	if q.states[q.current] != Submitted {
		return false, ErrNotSubmitted
	}

	if q.current < len(q.quiz.Questions)-1 {
		q.current++

		return false, nil
	}

	total := len(q.quiz.Questions)

	q.result = &Result{
		Score:          q.score,
		Total:          total,
		Percentage:     Percentage(q.score, total),
		ElapsedSeconds: max(0, int(q.now().Sub(q.startedAt).Seconds())),
	}

	return true, nil
}

func (q *Quiz) Previous() error {
	if q.current == 0 {
		return ErrFirstQuestion
	}

	q.current--

	return nil
}

// Play answers every remaining question in order and completes the quiz.
// answers[i] is the option chosen for question i of a fresh quiz.
func (q *Quiz) Play(answers []int) (Result, error) {
	for _, answer := range answers {
		if err := q.Select(answer); err != nil {
			return Result{}, err
		}

		if _, err := q.Submit(); err != nil {
			return Result{}, err
		}

		if _, err := q.Next(); err != nil {
			return Result{}, err
		}
	}

	result, ok := q.Result()
	if !ok {
		return Result{}, ErrNotSubmitted
	}

	return result, nil
}
