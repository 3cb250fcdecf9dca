package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. TranslateError is
// on so unique-index violations surface as gorm.ErrDuplicatedKey, same as the
// production MySQL setup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Enrollment{},
		&model.LessonCompletion{},
		&model.QuizAttempt{},
		&model.Certificate{},
		&model.Notification{},
		&model.PointsTransaction{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db *gorm.DB

	Quiz     *QuizService
	Progress *ProgressService
	Points   *PointsService
	Enroll   *EnrollmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	pointsRepo := repository.NewPointsRepository(db)

	notifications := NewNotificationService(notificationRepo)
	points := NewPointsService(pointsRepo, userRepo, nil)
	progress := NewProgressService(enrollmentRepo, lessonRepo, quizRepo, attemptRepo, certificateRepo, notifications)
	quiz := NewQuizService(quizRepo, attemptRepo, enrollmentRepo, progress, points, notifications)
	enroll := NewEnrollmentService(enrollmentRepo, courseRepo, certificateRepo)

	return &testEnv{
		db:       db,
		Quiz:     quiz,
		Progress: progress,
		Points:   points,
		Enroll:   enroll,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: name + "@example.com", Role: model.Student}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T, lessons int) *model.Course {
	t.Helper()
	course := &model.Course{Title: "Go Fundamentals", IsPublished: true, InstructorID: 999}
	if err := e.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	for i := 0; i < lessons; i++ {
		lesson := &model.Lesson{CourseID: course.ID, Title: fmt.Sprintf("Lesson %d", i+1), Order: i}
		if err := e.db.Create(lesson).Error; err != nil {
			t.Fatalf("create lesson: %v", err)
		}
		course.Lessons = append(course.Lessons, *lesson)
	}
	return course
}

// createQuiz seeds a two-question quiz (true/false + short answer) worth one
// point each. Correct answers are "true" and "channel".
func (e *testEnv) createQuiz(t *testing.T, courseID uint, mutate func(*model.Quiz)) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		CourseID:     courseID,
		Title:        "Checkpoint",
		PassingScore: 70,
		ShowAnswers:  true,
		ShowResults:  true,
		IsPublished:  true,
	}
	if mutate != nil {
		mutate(quiz)
	}
	if err := e.db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	questions := []model.Question{
		{QuizID: quiz.ID, QuestionText: "Goroutines are lightweight.", QuestionType: model.TrueFalse, CorrectAnswer: "true", Points: 1},
		{QuizID: quiz.ID, QuestionText: "Name Go's primitive for communication.", QuestionType: model.ShortAnswer, CorrectAnswer: "channel", Points: 1},
	}
	for i := range questions {
		if err := e.db.Create(&questions[i]).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
	}
	quiz.Questions = questions
	return quiz
}

func (e *testEnv) enrollUser(t *testing.T, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment, err := e.Enroll.Enroll(userID, courseID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	return enrollment
}

// correctAnswers submits the right answer for every seeded question.
func correctAnswers(quiz *model.Quiz) []SubmittedAnswer {
	return []SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedAnswer: "true"},
		{QuestionID: quiz.Questions[1].ID, SelectedAnswer: "channel"},
	}
}

func (e *testEnv) backdateAttempt(t *testing.T, attemptID uint, ago time.Duration) {
	t.Helper()
	err := e.db.Model(&model.QuizAttempt{}).
		Where("id = ?", attemptID).
		Update("started_at", time.Now().Add(-ago)).Error
	if err != nil {
		t.Fatalf("backdate attempt: %v", err)
	}
}
