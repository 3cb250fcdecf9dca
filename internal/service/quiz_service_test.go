package service

import (
	"errors"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestStartAttemptRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)

	_, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if !errors.Is(err, util.ErrNotEnrolled) {
		t.Fatalf("want ErrNotEnrolled, got %v", err)
	}
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, _, err := env.Quiz.StartAttempt(user.ID, 12345)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("want ErrQuizNotFound, got %v", err)
	}
}

func TestStartAttemptUnpublishedQuiz(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) { q.IsPublished = false })
	env.enrollUser(t, user.ID, course.ID)

	_, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("want ErrQuizNotFound, got %v", err)
	}
}

func TestStartAttemptNumbersAndSnapshot(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, user.ID, course.ID)

	first, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start first attempt: %v", err)
	}
	if first.AttemptNumber != 1 {
		t.Errorf("first attempt number = %d, want 1", first.AttemptNumber)
	}
	if first.QuestionsSnapshot == "" || first.QuestionsSnapshot == "[]" {
		t.Errorf("attempt has no question snapshot: %q", first.QuestionsSnapshot)
	}

	second, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start second attempt: %v", err)
	}
	if second.AttemptNumber != 2 {
		t.Errorf("second attempt number = %d, want 2", second.AttemptNumber)
	}
}

func TestStartAttemptCeiling(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.AttemptsAllowed = 2
	})
	env.enrollUser(t, user.ID, course.ID)

	for i := 0; i < 2; i++ {
		if _, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID); err != nil {
			t.Fatalf("start attempt %d: %v", i+1, err)
		}
	}

	_, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if !errors.Is(err, util.ErrMaxAttemptsReached) {
		t.Fatalf("want ErrMaxAttemptsReached, got %v", err)
	}
}

func TestSubmitAttemptPassAwardsPointsOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	res, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz))
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if res.Grade.ScorePercent != 100 || !res.Grade.Passed {
		t.Fatalf("grade = %d%% passed=%v, want 100%% passed", res.Grade.ScorePercent, res.Grade.Passed)
	}
	if res.TimedOut {
		t.Error("submission within the limit flagged as timed out")
	}
	if res.AttemptsRemaining != nil {
		t.Error("passed attempt should not report attempts remaining")
	}

	var xp int
	if err := env.db.Model(&model.User{}).Where("id = ?", user.ID).Select("xp").Scan(&xp).Error; err != nil {
		t.Fatalf("read xp: %v", err)
	}
	if xp != PassBonusPoints {
		t.Errorf("xp after pass = %d, want %d", xp, PassBonusPoints)
	}

	// Replaying the award with the same attempt reference must not stack XP.
	if err := env.Points.Award(user.ID, PassBonusPoints, "quiz passed", attemptReference(attempt.ID)); err != nil {
		t.Fatalf("replay award: %v", err)
	}
	if err := env.db.Model(&model.User{}).Where("id = ?", user.ID).Select("xp").Scan(&xp).Error; err != nil {
		t.Fatalf("read xp: %v", err)
	}
	if xp != PassBonusPoints {
		t.Errorf("xp after replayed award = %d, want %d", xp, PassBonusPoints)
	}
}

func TestSubmitAttemptFailReportsRemaining(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.AttemptsAllowed = 3
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	answers := []SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedAnswer: "false"},
		{QuestionID: quiz.Questions[1].ID, SelectedAnswer: "mutex"},
	}
	res, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, answers)
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if res.Grade.Passed {
		t.Fatal("all-wrong submission passed")
	}
	if res.AttemptsRemaining == nil || *res.AttemptsRemaining != 2 {
		t.Fatalf("attempts remaining = %v, want 2", res.AttemptsRemaining)
	}
}

func TestSubmitAttemptDoubleSubmit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	if _, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz)); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err = env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, nil)
	if !errors.Is(err, util.ErrAttemptAlreadySubmitted) {
		t.Fatalf("want ErrAttemptAlreadySubmitted, got %v", err)
	}
}

func TestSubmitAttemptWrongUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, alice.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(alice.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	_, err = env.Quiz.SubmitAttempt(mallory.ID, attempt.ID, quiz.ID, nil)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
}

func TestSubmitAttemptQuizMismatch(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)
	other := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	_, err = env.Quiz.SubmitAttempt(user.ID, attempt.ID, other.ID, nil)
	if !errors.Is(err, util.ErrQuizMismatch) {
		t.Fatalf("want ErrQuizMismatch, got %v", err)
	}
}

func TestSubmitAttemptPastDeadlineIsTimedOut(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.TimeLimitMinutes = 1
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	env.backdateAttempt(t, attempt.ID, 5*time.Minute)

	res, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz))
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if !res.TimedOut {
		t.Error("overdue submission not flagged as timed out")
	}
	// Timed out is an outcome, not a rejection: the answers still grade.
	if res.Grade.ScorePercent != 100 {
		t.Errorf("timed out grade = %d%%, want 100%%", res.Grade.ScorePercent)
	}
}

func TestSubmitAttemptWithinGraceNotTimedOut(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.TimeLimitMinutes = 1
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	// Past the limit but inside the grace window.
	env.backdateAttempt(t, attempt.ID, time.Minute+10*time.Second)

	res, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz))
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if res.TimedOut {
		t.Error("submission inside grace window flagged as timed out")
	}
}

func TestSubmitGradesFromSnapshotNotLiveQuestions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, nil)
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	// Rewrite the answer key mid-attempt. The snapshot keeps the grade stable.
	err = env.db.Model(&model.Question{}).
		Where("id = ?", quiz.Questions[1].ID).
		Update("correct_answer", "goroutine").Error
	if err != nil {
		t.Fatalf("mutate question: %v", err)
	}

	res, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz))
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	if res.Grade.ScorePercent != 100 {
		t.Errorf("grade against mutated quiz = %d%%, want 100%% from snapshot", res.Grade.ScorePercent)
	}
}

func TestSweepOverdueAttempts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.TimeLimitMinutes = 1
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	env.backdateAttempt(t, attempt.ID, 10*time.Minute)

	if err := env.Quiz.SweepOverdueAttempts(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var swept model.QuizAttempt
	if err := env.db.First(&swept, attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if swept.CompletedAt == nil {
		t.Fatal("swept attempt still open")
	}
	if !swept.TimedOut {
		t.Error("swept attempt not flagged as timed out")
	}
	if swept.Passed || swept.ScorePercent != 0 {
		t.Errorf("swept attempt graded %d%% passed=%v, want 0%% failed", swept.ScorePercent, swept.Passed)
	}
}

func TestSweepLeavesFreshAttemptsOpen(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.TimeLimitMinutes = 30
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}

	if err := env.Quiz.SweepOverdueAttempts(); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var fresh model.QuizAttempt
	if err := env.db.First(&fresh, attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if fresh.CompletedAt != nil {
		t.Fatal("sweep closed an attempt that is still within its limit")
	}
}

func TestGetAttemptResultHidesAnswersWhenConfigured(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 0)
	quiz := env.createQuiz(t, course.ID, func(q *model.Quiz) {
		q.ShowAnswers = false
	})
	env.enrollUser(t, user.ID, course.ID)

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	if _, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz)); err != nil {
		t.Fatalf("submit attempt: %v", err)
	}

	res, err := env.Quiz.GetAttemptResult(user.ID, attempt.ID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if len(res.Grade.Details) == 0 {
		t.Fatal("result has no per-question details")
	}
	for _, d := range res.Grade.Details {
		if d.CorrectAnswer != "" {
			t.Errorf("correct answer leaked for question %d", d.QuestionID)
		}
	}
}
