package grading

import (
	"reflect"
	"testing"

	"lms_backend/internal/model"
)

func twoQuestionQuiz() []model.Question {
	return []model.Question{
		{
			BaseModel:    model.BaseModel{ID: 1},
			QuestionType: model.MultipleChoice,
			QuestionText: "Capital of France?",
			Points:       10,
			Options: []model.QuestionOption{
				{BaseModel: model.BaseModel{ID: 1}, OptionText: "Paris", IsCorrect: true},
				{BaseModel: model.BaseModel{ID: 2}, OptionText: "Rome"},
			},
		},
		{
			BaseModel:     model.BaseModel{ID: 2},
			QuestionType:  model.TrueFalse,
			QuestionText:  "The sun orbits the earth.",
			Points:        10,
			CorrectAnswer: "false",
		},
	}
}

func TestGrade_FullAndPartialScore(t *testing.T) {
	questions := twoQuestionQuiz()

	tests := []struct {
		name        string
		answers     map[uint]string
		wantPercent int
		wantPassed  bool
		wantEarned  int
	}{
		{"all correct", map[uint]string{1: "1", 2: "false"}, 100, true, 20},
		{"half correct", map[uint]string{1: "2", 2: "false"}, 50, false, 10},
		{"none correct", map[uint]string{1: "2", 2: "true"}, 0, false, 0},
		{"no answers at all", map[uint]string{}, 0, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(questions, tc.answers, 70)
			if got.ScorePercent != tc.wantPercent {
				t.Fatalf("expected percent=%d, got=%d", tc.wantPercent, got.ScorePercent)
			}
			if got.Passed != tc.wantPassed {
				t.Fatalf("expected passed=%v, got=%v", tc.wantPassed, got.Passed)
			}
			if got.EarnedPoints != tc.wantEarned {
				t.Fatalf("expected earned=%d, got=%d", tc.wantEarned, got.EarnedPoints)
			}
			if got.TotalPoints != 20 {
				t.Fatalf("expected total=20, got=%d", got.TotalPoints)
			}
		})
	}
}

func TestGrade_EmptyQuizDoesNotDivideByZero(t *testing.T) {
	got := Grade(nil, map[uint]string{}, 70)
	if got.ScorePercent != 0 {
		t.Fatalf("expected percent=0, got=%d", got.ScorePercent)
	}
	if got.Passed {
		t.Fatal("empty quiz must not pass with a positive passing score")
	}
}

func TestGrade_PercentageRounding(t *testing.T) {
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, QuestionType: model.TrueFalse, Points: 1, CorrectAnswer: "true"},
		{BaseModel: model.BaseModel{ID: 2}, QuestionType: model.TrueFalse, Points: 1, CorrectAnswer: "true"},
		{BaseModel: model.BaseModel{ID: 3}, QuestionType: model.TrueFalse, Points: 1, CorrectAnswer: "true"},
	}

	got := Grade(questions, map[uint]string{1: "true", 2: "true"}, 70)
	if got.ScorePercent != 67 {
		t.Fatalf("expected 2/3 to round to 67, got=%d", got.ScorePercent)
	}
	if got.Passed {
		t.Fatal("67 must not pass a 70 threshold")
	}
}

func TestGrade_UnansweredQuestionDetail(t *testing.T) {
	questions := twoQuestionQuiz()

	got := Grade(questions, map[uint]string{1: "1"}, 70)

	detail := got.Details[1]
	if detail.SubmittedAnswer != NoAnswerPlaceholder {
		t.Fatalf("expected placeholder %q, got %q", NoAnswerPlaceholder, detail.SubmittedAnswer)
	}
	if detail.IsCorrect || detail.EarnedPoints != 0 {
		t.Fatal("unanswered question must earn nothing")
	}
}

func TestGrade_EssayEarnsNothing(t *testing.T) {
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, QuestionType: model.Essay, Points: 5, CorrectAnswer: "model answer"},
	}

	got := Grade(questions, map[uint]string{1: "model answer"}, 50)
	if got.EarnedPoints != 0 || got.Details[0].IsCorrect {
		t.Fatal("essay questions must never earn points from auto-grading")
	}
	if got.Details[0].CorrectAnswer != ManualGradingMarker {
		t.Fatalf("expected %q, got %q", ManualGradingMarker, got.Details[0].CorrectAnswer)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	questions := twoQuestionQuiz()
	answers := map[uint]string{1: "1", 2: "true"}

	first := Grade(questions, answers, 70)
	second := Grade(questions, answers, 70)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("grading the same inputs twice must yield identical results")
	}
}

func TestGrade_PercentBounds(t *testing.T) {
	questions := twoQuestionQuiz()
	for _, answers := range []map[uint]string{
		{1: "1", 2: "false"},
		{1: "2"},
		{},
	} {
		got := Grade(questions, answers, 70)
		if got.ScorePercent < 0 || got.ScorePercent > 100 {
			t.Fatalf("percent out of bounds: %d", got.ScorePercent)
		}
	}
}
