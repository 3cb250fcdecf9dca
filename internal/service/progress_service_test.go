package service

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCompleteLessonRollsUpProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 3)
	env.createQuiz(t, course.ID, nil)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	// 3 lessons + 1 quiz = 4 units, so each lesson is worth 25%.
	cases := []struct {
		lessonIndex int
		wantPercent int
	}{
		{0, 25},
		{1, 50},
		{2, 75},
	}
	for _, tc := range cases {
		updated, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[tc.lessonIndex].ID)
		if err != nil {
			t.Fatalf("complete lesson %d: %v", tc.lessonIndex, err)
		}
		if updated.ProgressPercent != tc.wantPercent {
			t.Errorf("after lesson %d: progress = %d%%, want %d%%",
				tc.lessonIndex, updated.ProgressPercent, tc.wantPercent)
		}
		if updated.Status == model.Completed {
			t.Errorf("after lesson %d: enrollment marked completed at %d%%",
				tc.lessonIndex, updated.ProgressPercent)
		}
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 2)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	for i := 0; i < 3; i++ {
		updated, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[0].ID)
		if err != nil {
			t.Fatalf("complete lesson (round %d): %v", i+1, err)
		}
		if updated.ProgressPercent != 50 {
			t.Fatalf("round %d: progress = %d%%, want 50%%", i+1, updated.ProgressPercent)
		}
	}

	var completions int64
	env.db.Model(&model.LessonCompletion{}).Where("enrollment_id = ?", enrollment.ID).Count(&completions)
	if completions != 1 {
		t.Errorf("completion rows = %d, want 1", completions)
	}
}

func TestCompleteLessonOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")
	course := env.createCourse(t, 1)
	enrollment := env.enrollUser(t, alice.ID, course.ID)

	_, err := env.Progress.CompleteLesson(mallory.ID, enrollment.ID, course.Lessons[0].ID)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("want ErrPermissionDenied, got %v", err)
	}
}

func TestCompleteLessonFromAnotherCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	other := env.createCourse(t, 1)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	_, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, other.Lessons[0].ID)
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Fatalf("want ErrLessonNotFound, got %v", err)
	}
}

func TestCompletionIssuesExactlyOneCertificate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	if _, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[0].ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	if _, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz)); err != nil {
		t.Fatalf("submit attempt: %v", err)
	}

	var updated model.Enrollment
	if err := env.db.First(&updated, enrollment.ID).Error; err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if updated.ProgressPercent != 100 {
		t.Fatalf("progress = %d%%, want 100%%", updated.ProgressPercent)
	}
	if updated.Status != model.Completed {
		t.Fatalf("status = %q, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completed enrollment has no completion timestamp")
	}

	// Replaying the rollup must not mint a second certificate.
	if err := env.Progress.Recompute(&updated); err != nil {
		t.Fatalf("recompute replay: %v", err)
	}

	var certs int64
	env.db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&certs)
	if certs != 1 {
		t.Errorf("certificates = %d, want exactly 1", certs)
	}
}

func TestDraftQuizStaysOutOfRollup(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	env.createQuiz(t, course.ID, func(q *model.Quiz) { q.IsPublished = false })
	enrollment := env.enrollUser(t, user.ID, course.ID)

	// Learners cannot attempt a draft quiz, so it must not count as a unit
	// either. The single lesson is the whole course until the quiz ships.
	updated, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[0].ID)
	if err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	if updated.ProgressPercent != 100 {
		t.Fatalf("progress = %d%%, want 100%%", updated.ProgressPercent)
	}
	if updated.Status != model.Completed {
		t.Fatalf("status = %q, want completed", updated.Status)
	}

	var certs int64
	env.db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&certs)
	if certs != 1 {
		t.Errorf("certificates = %d, want 1", certs)
	}
}

func TestCertificateMetricCountsIssuance(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	before := testutil.ToFloat64(monitoring.CertificatesIssued)
	if _, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[0].ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}
	if got := testutil.ToFloat64(monitoring.CertificatesIssued) - before; got != 1 {
		t.Fatalf("issuance counter delta = %v, want 1", got)
	}

	// A replayed rollup loses at the unique index and must not count again.
	var updated model.Enrollment
	if err := env.db.First(&updated, enrollment.ID).Error; err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if err := env.Progress.Recompute(&updated); err != nil {
		t.Fatalf("recompute replay: %v", err)
	}
	if got := testutil.ToFloat64(monitoring.CertificatesIssued) - before; got != 1 {
		t.Errorf("issuance counter delta after replay = %v, want 1", got)
	}
}

func TestPassedQuizCountedOncePerQuiz(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	quiz := env.createQuiz(t, course.ID, nil)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	// Pass the same quiz twice. The rollup counts distinct quizzes, so the
	// second pass cannot push progress past what one quiz is worth.
	for i := 0; i < 2; i++ {
		attempt, _, err := env.Quiz.StartAttempt(user.ID, quiz.ID)
		if err != nil {
			t.Fatalf("start attempt %d: %v", i+1, err)
		}
		if _, err := env.Quiz.SubmitAttempt(user.ID, attempt.ID, quiz.ID, correctAnswers(quiz)); err != nil {
			t.Fatalf("submit attempt %d: %v", i+1, err)
		}
	}

	var updated model.Enrollment
	if err := env.db.First(&updated, enrollment.ID).Error; err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if updated.ProgressPercent != 50 {
		t.Errorf("progress = %d%%, want 50%%", updated.ProgressPercent)
	}
}

func TestGetCertificateByCode(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)
	enrollment := env.enrollUser(t, user.ID, course.ID)

	// A single lesson is the whole course here, so completing it issues the
	// certificate.
	if _, err := env.Progress.CompleteLesson(user.ID, enrollment.ID, course.Lessons[0].ID); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	var cert model.Certificate
	if err := env.db.Where("user_id = ?", user.ID).First(&cert).Error; err != nil {
		t.Fatalf("load certificate: %v", err)
	}

	found, err := env.Progress.GetCertificateByCode(cert.VerificationCode)
	if err != nil {
		t.Fatalf("lookup by code: %v", err)
	}
	if found.UserID != user.ID || found.CourseID != course.ID {
		t.Errorf("certificate lookup returned user %d course %d", found.UserID, found.CourseID)
	}

	if _, err := env.Progress.GetCertificateByCode("no-such-code"); !errors.Is(err, util.ErrCertificateNotFound) {
		t.Fatalf("want ErrCertificateNotFound, got %v", err)
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := env.createCourse(t, 1)

	if _, err := env.Enroll.Enroll(user.ID, course.ID); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := env.Enroll.Enroll(user.ID, course.ID)
	if !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Fatalf("want ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	course := &model.Course{Title: "Draft", IsPublished: false}
	if err := env.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}

	_, err := env.Enroll.Enroll(user.ID, course.ID)
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("want ErrCourseNotFound, got %v", err)
	}
}
