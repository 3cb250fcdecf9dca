package grading

import (
	"math"

	"lms_backend/internal/model"
)

// NoAnswerPlaceholder is shown in per-question details when the learner never
// answered a question.
const NoAnswerPlaceholder = "No answer provided"

// QuestionResult is the per-question line of a graded quiz.
type QuestionResult struct {
	QuestionID      uint   `json:"questionId"`
	QuestionText    string `json:"questionText"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
	Points          int    `json:"points"`
	EarnedPoints    int    `json:"earnedPoints"`
	Explanation     string `json:"explanation,omitempty"`
}

// Result is the outcome of grading one full answer set.
type Result struct {
	TotalPoints  int              `json:"totalPoints"`
	EarnedPoints int              `json:"earnedPoints"`
	ScorePercent int              `json:"scorePercent"`
	Passed       bool             `json:"passed"`
	Details      []QuestionResult `json:"details"`
}

// Grade scores a full quiz submission. It is a pure function of
// (questions, answers, passingScore): same inputs always produce the same
// result, and a quiz with no points grades to 0 rather than dividing by zero.
func Grade(questions []model.Question, answers map[uint]string, passingScore int) Result {
	res := Result{Details: make([]QuestionResult, 0, len(questions))}

	for _, q := range questions {
		res.TotalPoints += q.Points

		submitted, answered := answers[q.ID]
		ev := Evaluate(q, submitted)
		if !answered {
			ev.IsCorrect = false
		}

		earned := 0
		if ev.IsCorrect {
			earned = q.Points
			res.EarnedPoints += earned
		}

		display := submitted
		if !answered {
			display = NoAnswerPlaceholder
		}

		res.Details = append(res.Details, QuestionResult{
			QuestionID:      q.ID,
			QuestionText:    q.QuestionText,
			SubmittedAnswer: display,
			CorrectAnswer:   ev.CorrectAnswer,
			IsCorrect:       ev.IsCorrect,
			Points:          q.Points,
			EarnedPoints:    earned,
			Explanation:     q.Explanation,
		})
	}

	if res.TotalPoints > 0 {
		res.ScorePercent = int(math.Round(float64(res.EarnedPoints) / float64(res.TotalPoints) * 100))
	}
	res.Passed = res.ScorePercent >= passingScore

	return res
}
