package grading

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"lms_backend/internal/model"
)

// ManualGradingMarker is surfaced as the canonical answer for question types
// that cannot be auto-graded.
const ManualGradingMarker = "Manual grading required"

// Evaluation is the judgement for a single submitted answer.
type Evaluation struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

type evalFunc func(q model.Question, submitted string) Evaluation

// Adding a question type means adding one entry here; nothing else dispatches
// on the type.
var evaluators = map[model.QuestionType]evalFunc{
	model.MultipleChoice: evalMultipleChoice,
	model.TrueFalse:      evalExact,
	model.ShortAnswer:    evalNormalized,
	model.FillBlank:      evalNormalized,
	model.Matching:       evalMatching,
	model.Essay:          evalEssay,
}

// Evaluate judges one submitted answer against the question's recorded correct
// answer. It is total: unknown types and malformed payloads come back as
// incorrect, never as an error.
func Evaluate(q model.Question, submitted string) Evaluation {
	fn, ok := evaluators[q.QuestionType]
	if !ok {
		return Evaluation{IsCorrect: false, CorrectAnswer: q.CorrectAnswer}
	}
	return fn(q, submitted)
}

func evalMultipleChoice(q model.Question, submitted string) Evaluation {
	// Structured options win over the free-form correct answer field.
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correctID := strconv.FormatUint(uint64(opt.ID), 10)
			return Evaluation{
				IsCorrect:     submitted == correctID,
				CorrectAnswer: opt.OptionText,
			}
		}
	}
	if q.CorrectAnswer == "" {
		return Evaluation{IsCorrect: false}
	}
	return Evaluation{
		IsCorrect:     submitted == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
	}
}

func evalExact(q model.Question, submitted string) Evaluation {
	if q.CorrectAnswer == "" {
		return Evaluation{IsCorrect: false}
	}
	return Evaluation{
		IsCorrect:     submitted == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
	}
}

func evalNormalized(q model.Question, submitted string) Evaluation {
	if q.CorrectAnswer == "" {
		return Evaluation{IsCorrect: false}
	}
	got := strings.ToLower(strings.TrimSpace(submitted))
	want := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	return Evaluation{
		IsCorrect:     got != "" && got == want,
		CorrectAnswer: q.CorrectAnswer,
	}
}

func evalMatching(q model.Question, submitted string) Evaluation {
	if q.CorrectAnswer == "" {
		return Evaluation{IsCorrect: false}
	}
	var got, want interface{}
	if err := json.Unmarshal([]byte(submitted), &got); err != nil {
		return Evaluation{IsCorrect: false, CorrectAnswer: q.CorrectAnswer}
	}
	if err := json.Unmarshal([]byte(q.CorrectAnswer), &want); err != nil {
		return Evaluation{IsCorrect: false, CorrectAnswer: q.CorrectAnswer}
	}
	return Evaluation{
		IsCorrect:     reflect.DeepEqual(got, want),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func evalEssay(q model.Question, submitted string) Evaluation {
	return Evaluation{IsCorrect: false, CorrectAnswer: ManualGradingMarker}
}
