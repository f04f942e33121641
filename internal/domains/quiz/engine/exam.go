package engine

import (
	"drivingschool/internal/domains/quiz/bank"
	"errors"
	"sync"
	"time"
)

const Unset = -1

var (
	ErrExamFinished       = errors.New("exam already finished")
	ErrExamClosed         = errors.New("exam closed")
	ErrQuestionOutOfRange = errors.New("question out of range")
)

type ExamConfig struct {
	Duration time.Duration
	// PassMark is the number of correct answers needed to pass.
	PassMark int
}

type CategoryScore struct {
	Category string
	Correct  int
	Total    int
}

type ExamResult struct {
	Correct          int
	Total            int
	Unanswered       int
	Percentage       int
	Passed           bool
	TimedOut         bool
	TimeTakenSeconds int
	Categories       []CategoryScore
}

type ExamState struct {
	Answers   []int
	Remaining time.Duration
	Finished  bool
	Result    ExamResult
}

// Exam is a timed mock exam. It finishes exactly once, either through Finish
// or when the countdown runs out, and onFinish is called for that finish only.
type Exam struct {
	mu        sync.Mutex
	quiz      bank.Quiz
	config    ExamConfig
	answers   []int
	remaining time.Duration
	finished  bool
	closed    bool
	result    ExamResult
	timer     *Timer
	onFinish  func(ExamResult)
}

func NewExam(quiz bank.Quiz, config ExamConfig, onFinish func(ExamResult)) *Exam {
	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = Unset
	}

	return &Exam{
		quiz:      quiz,
		config:    config,
		answers:   answers,
		remaining: config.Duration,
		onFinish:  onFinish,
	}
}

// Start runs the countdown, one second per tick.
func (e *Exam) Start(source TickSource) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil || e.finished || e.closed {
		return
	}

	e.timer = StartTimer(source, e.tick)
}

func (e *Exam) tick() bool {
	e.mu.Lock()

	if e.finished || e.closed {
		e.mu.Unlock()

		return false
	}

	e.remaining -= time.Second
	if e.remaining > 0 {
		e.mu.Unlock()

		return true
	}

	e.remaining = 0
	result := e.finishLocked(true)
	e.mu.Unlock()

	e.notify(result)

	return false
}

func (e *Exam) Questions() []bank.Question {
	return e.quiz.Questions
}

func (e *Exam) Answer(index, option int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.closed:
		return ErrExamClosed
	case e.finished:
		return ErrExamFinished
	case index < 0 || index >= len(e.answers):
		return ErrQuestionOutOfRange
	case option < 0 || option >= len(e.quiz.Questions[index].Options):
		return ErrOptionOutOfRange
	}

	e.answers[index] = option

	return nil
}

// Finish scores the exam. Calling it again returns the same result. It also
// waits for a countdown that already finished the exam to be done with it.
func (e *Exam) Finish() (ExamResult, error) {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()

		return ExamResult{}, ErrExamClosed
	}

	if e.finished {
		result := e.result
		e.mu.Unlock()
		e.stopTimer()

		return result, nil
	}

	result := e.finishLocked(false)
	e.mu.Unlock()

	e.stopTimer()
	e.notify(result)

	return result, nil
}

// Close abandons the exam without scoring it.
func (e *Exam) Close() {
	e.mu.Lock()
	e.closed = !e.finished
	e.mu.Unlock()

	e.stopTimer()
}

func (e *Exam) State() ExamState {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := make([]int, len(e.answers))
	copy(answers, e.answers)

	return ExamState{
		Answers:   answers,
		Remaining: e.remaining,
		Finished:  e.finished,
		Result:    e.result,
	}
}

func (e *Exam) stopTimer() {
	e.mu.Lock()
	timer := e.timer
	e.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

func (e *Exam) notify(result ExamResult) {
	if e.onFinish != nil {
		e.onFinish(result)
	}
}

func (e *Exam) finishLocked(timedOut bool) ExamResult {
	result := ExamResult{
		Total:            len(e.quiz.Questions),
		TimedOut:         timedOut,
		TimeTakenSeconds: int((e.config.Duration - e.remaining).Seconds()),
	}

	categories := map[string]int{}

	for i, question := range e.quiz.Questions {
		idx, ok := categories[question.Category]
		if !ok {
			idx = len(result.Categories)
			categories[question.Category] = idx
			result.Categories = append(result.Categories, CategoryScore{Category: question.Category})
		}

		result.Categories[idx].Total++

		switch answer := e.answers[i]; {
		case answer == Unset:
			result.Unanswered++
		case question.IsCorrect(answer):
			result.Correct++
			result.Categories[idx].Correct++
		}
	}

	result.Percentage = Percentage(result.Correct, result.Total)
	result.Passed = result.Correct >= e.config.PassMark

	e.finished = true
	e.result = result

	return result
}
