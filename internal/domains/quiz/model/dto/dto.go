package dto

import (
	"drivingschool/internal/domains/quiz/bank"
	"drivingschool/internal/domains/quiz/engine"
	"drivingschool/internal/domains/quiz/model"
	"drivingschool/shared"
	"time"
)

type QuizSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"total_questions"`
}

func (s *QuizSummary) FromQuiz(quiz bank.Quiz) {
	s.ID = quiz.ID
	s.Title = quiz.Title
	s.TotalQuestions = len(quiz.Questions)
}

type CatalogResponse struct {
	Quizzes []QuizSummary `json:"quizzes"`
	Exam    ExamSummary   `json:"exam"`
}

type ExamSummary struct {
	QuizSummary
	DurationSeconds int `json:"duration_seconds"`
	PassMark        int `json:"pass_mark"`
}

// QuestionResponse is a question without its answer.
type QuestionResponse struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

func (q *QuestionResponse) FromQuestion(question bank.Question) {
	q.ID = question.ID
	q.Question = question.Question
	q.Options = question.Options
	q.Category = question.Category
}

func QuestionsFrom(questions []bank.Question) []QuestionResponse {
	res := make([]QuestionResponse, len(questions))
	for i, question := range questions {
		res[i].FromQuestion(question)
	}

	return res
}

type QuizResponse struct {
	QuizSummary
	Questions []QuestionResponse `json:"questions"`
}

func (q *QuizResponse) FromQuiz(quiz bank.Quiz) {
	q.QuizSummary.FromQuiz(quiz)
	q.Questions = QuestionsFrom(quiz.Questions)
}

type CheckAnswerRequest struct {
	QuestionID int  `json:"question_id" validate:"required,min=1"`
	Answer     *int `json:"answer"      validate:"required,min=0"`
}

type CheckAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

func (r *CheckAnswerResponse) FromFeedback(feedback engine.Feedback) {
	r.Correct = feedback.Correct
	r.CorrectAnswer = feedback.CorrectAnswer
	r.Explanation = feedback.Explanation
}

type SubmitQuizRequest struct {
	// Answers holds the chosen option for each question, in order.
	Answers   []int     `json:"answers"    validate:"required,min=1,dive,min=0"`
	StartedAt time.Time `json:"started_at" validate:"required"`
}

type QuizResultResponse struct {
	QuizID           string `json:"quiz_id"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"total_questions"`
	Percentage       int    `json:"percentage"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
	Saved            bool   `json:"saved"`
}

type ResultResponse struct {
	ID               string    `json:"id"`
	QuizID           string    `json:"quiz_id"`
	QuizTitle        string    `json:"quiz_title"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       int       `json:"percentage"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *ResultResponse) FromModel(result model.Result) {
	r.ID = result.ID
	r.QuizID = result.QuizID
	r.QuizTitle = result.QuizTitle
	r.Score = result.Score
	r.TotalQuestions = result.TotalQuestions
	r.Percentage = result.Percentage
	r.TimeTakenSeconds = result.TimeTakenSeconds
	r.CreatedAt = result.CreatedAt
}

type GetResultsResponse struct {
	Results   []ResultResponse `json:"results"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetResultsResponse) FromModels(models []model.Result, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Results = make([]ResultResponse, len(models))
	for i, mod := range models {
		r.Results[i].FromModel(mod)
	}
}

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	UserID            string `json:"user_id"`
	FullName          string `json:"full_name"`
	TotalQuizzes      int    `json:"total_quizzes"`
	TotalScore        int    `json:"total_score"`
	AveragePercentage int    `json:"average_percentage"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// FromModels ranks entries from 1 in the order given.
func (r *LeaderboardResponse) FromModels(models []model.LeaderboardEntry) {
	r.Entries = make([]LeaderboardEntry, len(models))

	for i, mod := range models {
		r.Entries[i] = LeaderboardEntry{
			Rank:              i + 1,
			UserID:            mod.UserID,
			FullName:          mod.FullName,
			TotalQuizzes:      mod.TotalQuizzes,
			TotalScore:        mod.TotalScore,
			AveragePercentage: mod.AveragePercentage,
		}
	}
}

type AnswerExamRequest struct {
	QuestionIndex *int `json:"question_index" validate:"required,min=0"`
	Answer        *int `json:"answer"         validate:"required,min=0"`
}

type CategoryScore struct {
	Category string `json:"category"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
}

type ExamResultResponse struct {
	ExamID           string          `json:"exam_id"`
	Correct          int             `json:"correct"`
	TotalQuestions   int             `json:"total_questions"`
	Unanswered       int             `json:"unanswered"`
	Percentage       int             `json:"percentage"`
	Passed           bool            `json:"passed"`
	TimedOut         bool            `json:"timed_out"`
	TimeTakenSeconds int             `json:"time_taken_seconds"`
	Categories       []CategoryScore `json:"categories"`
	Saved            bool            `json:"saved"`
}

func (r *ExamResultResponse) FromResult(examID string, result engine.ExamResult, saved bool) {
	r.ExamID = examID
	r.Correct = result.Correct
	r.TotalQuestions = result.Total
	r.Unanswered = result.Unanswered
	r.Percentage = result.Percentage
	r.Passed = result.Passed
	r.TimedOut = result.TimedOut
	r.TimeTakenSeconds = result.TimeTakenSeconds
	r.Saved = saved

	r.Categories = make([]CategoryScore, len(result.Categories))
	for i, category := range result.Categories {
		r.Categories[i] = CategoryScore(category)
	}
}

type ExamStateResponse struct {
	ExamID           string              `json:"exam_id"`
	Title            string              `json:"title"`
	Questions        []QuestionResponse  `json:"questions"`
	Answers          []int               `json:"answers"`
	RemainingSeconds int                 `json:"remaining_seconds"`
	Finished         bool                `json:"finished"`
	Result           *ExamResultResponse `json:"result,omitempty"`
}
