package grading

import (
	"testing"

	"lms_backend/internal/model"
)

func TestEvaluate_MultipleChoice(t *testing.T) {
	withOptions := model.Question{
		QuestionType: model.MultipleChoice,
		Options: []model.QuestionOption{
			{BaseModel: model.BaseModel{ID: 1}, OptionText: "Paris", IsCorrect: true},
			{BaseModel: model.BaseModel{ID: 2}, OptionText: "Rome"},
		},
	}
	noOptions := model.Question{
		QuestionType:  model.MultipleChoice,
		CorrectAnswer: "Paris",
	}

	tests := []struct {
		name        string
		question    model.Question
		submitted   string
		wantCorrect bool
		wantAnswer  string
	}{
		{"correct option id", withOptions, "1", true, "Paris"},
		{"wrong option id", withOptions, "2", false, "Paris"},
		{"option text is not an id", withOptions, "Paris", false, "Paris"},
		{"fallback string equality correct", noOptions, "Paris", true, "Paris"},
		{"fallback string equality wrong", noOptions, "paris", false, "Paris"},
		{"empty submission", withOptions, "", false, "Paris"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.question, tc.submitted)
			if got.IsCorrect != tc.wantCorrect {
				t.Fatalf("expected isCorrect=%v, got=%v", tc.wantCorrect, got.IsCorrect)
			}
			if got.CorrectAnswer != tc.wantAnswer {
				t.Fatalf("expected correctAnswer=%q, got=%q", tc.wantAnswer, got.CorrectAnswer)
			}
		})
	}
}

func TestEvaluate_TrueFalse(t *testing.T) {
	q := model.Question{QuestionType: model.TrueFalse, CorrectAnswer: "false"}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
	}{
		{"exact match", "false", true},
		{"wrong value", "true", false},
		{"case matters", "False", false},
		{"empty submission", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(q, tc.submitted); got.IsCorrect != tc.wantCorrect {
				t.Fatalf("expected isCorrect=%v, got=%v", tc.wantCorrect, got.IsCorrect)
			}
		})
	}
}

func TestEvaluate_NormalizedTypes(t *testing.T) {
	tests := []struct {
		name        string
		qtype       model.QuestionType
		correct     string
		submitted   string
		wantCorrect bool
	}{
		{"short answer exact", model.ShortAnswer, "Photosynthesis", "Photosynthesis", true},
		{"short answer case insensitive", model.ShortAnswer, "Photosynthesis", "photosynthesis", true},
		{"short answer trimmed", model.ShortAnswer, "Photosynthesis", "  photosynthesis  ", true},
		{"short answer wrong", model.ShortAnswer, "Photosynthesis", "respiration", false},
		{"fill blank normalized", model.FillBlank, "mitochondria", " MITOCHONDRIA ", true},
		{"empty submission is wrong", model.FillBlank, "mitochondria", "   ", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := model.Question{QuestionType: tc.qtype, CorrectAnswer: tc.correct}
			if got := Evaluate(q, tc.submitted); got.IsCorrect != tc.wantCorrect {
				t.Fatalf("expected isCorrect=%v, got=%v", tc.wantCorrect, got.IsCorrect)
			}
		})
	}
}

func TestEvaluate_Matching(t *testing.T) {
	q := model.Question{
		QuestionType:  model.Matching,
		CorrectAnswer: `{"a":"1","b":"2"}`,
	}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
	}{
		{"deep equal", `{"a":"1","b":"2"}`, true},
		{"key order irrelevant", `{"b":"2","a":"1"}`, true},
		{"whitespace irrelevant", `{ "a": "1", "b": "2" }`, true},
		{"semantically different", `{"a":"2","b":"1"}`, false},
		{"missing pair", `{"a":"1"}`, false},
		{"not parseable", `{"a":`, false},
		{"empty submission", ``, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(q, tc.submitted); got.IsCorrect != tc.wantCorrect {
				t.Fatalf("expected isCorrect=%v, got=%v", tc.wantCorrect, got.IsCorrect)
			}
		})
	}
}

func TestEvaluate_MatchingUnparseableCorrectAnswer(t *testing.T) {
	q := model.Question{QuestionType: model.Matching, CorrectAnswer: `{"a":`}
	if got := Evaluate(q, `{"a":"1"}`); got.IsCorrect {
		t.Fatal("expected incorrect when the recorded answer cannot be parsed")
	}
}

func TestEvaluate_Essay(t *testing.T) {
	q := model.Question{QuestionType: model.Essay, CorrectAnswer: "anything"}

	for _, submitted := range []string{"", "a long essay", "anything"} {
		got := Evaluate(q, submitted)
		if got.IsCorrect {
			t.Fatalf("essay submission %q must never auto-grade as correct", submitted)
		}
		if got.CorrectAnswer != ManualGradingMarker {
			t.Fatalf("expected %q, got %q", ManualGradingMarker, got.CorrectAnswer)
		}
	}
}

func TestEvaluate_UnknownTypeAndMissingKey(t *testing.T) {
	if got := Evaluate(model.Question{QuestionType: "drag_drop"}, "x"); got.IsCorrect {
		t.Fatal("unknown question type must grade as incorrect")
	}
	for _, qt := range []model.QuestionType{model.TrueFalse, model.ShortAnswer, model.FillBlank, model.Matching} {
		q := model.Question{QuestionType: qt, CorrectAnswer: ""}
		if got := Evaluate(q, ""); got.IsCorrect {
			t.Fatalf("type %s with no recorded answer must grade as incorrect", qt)
		}
	}
}
