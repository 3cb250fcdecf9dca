package service

import (
	"errors"
	"math"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	EnrollmentRepo  *repository.EnrollmentRepository
	LessonRepo      *repository.LessonRepository
	QuizRepo        *repository.QuizRepository
	AttemptRepo     *repository.AttemptRepository
	CertificateRepo *repository.CertificateRepository
	Notifications   *NotificationService
}

func NewProgressService(
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	certificateRepo *repository.CertificateRepository,
	notifications *NotificationService,
) *ProgressService {
	return &ProgressService{
		EnrollmentRepo:  enrollmentRepo,
		LessonRepo:      lessonRepo,
		QuizRepo:        quizRepo,
		AttemptRepo:     attemptRepo,
		CertificateRepo: certificateRepo,
		Notifications:   notifications,
	}
}

// CompleteLesson records a lesson-completion fact and recomputes the
// enrollment's progress. Re-completing a lesson is a no-op: the completion row
// is unique per (enrollment, lesson), so the rollup never moves backwards.
func (s *ProgressService) CompleteLesson(userID, enrollmentID, lessonID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.CourseID != enrollment.CourseID {
		return nil, util.ErrLessonNotFound
	}

	completion := &model.LessonCompletion{EnrollmentID: enrollmentID, LessonID: lessonID}
	if err := s.EnrollmentRepo.CreateLessonCompletion(completion); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	if err := s.Recompute(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Recompute derives the progress percentage fresh from the full set of
// completed units (lessons plus passed published quizzes) rather than incrementing, so
// out-of-order or replayed completion events self-correct. At 100% the
// enrollment transitions to completed and a certificate is issued.
func (s *ProgressService) Recompute(enrollment *model.Enrollment) error {
	lessonCount, err := s.LessonRepo.CountByCourse(enrollment.CourseID)
	if err != nil {
		return err
	}
	quizCount, err := s.QuizRepo.CountPublishedByCourse(enrollment.CourseID)
	if err != nil {
		return err
	}
	totalUnits := lessonCount + quizCount
	if totalUnits == 0 {
		return nil
	}

	completedLessons, err := s.EnrollmentRepo.CountLessonCompletions(enrollment.ID)
	if err != nil {
		return err
	}
	passedQuizzes, err := s.AttemptRepo.CountPassedQuizzes(enrollment.ID)
	if err != nil {
		return err
	}

	completedUnits := completedLessons + passedQuizzes
	percent := int(math.Round(float64(completedUnits) / float64(totalUnits) * 100))
	if percent > 100 {
		percent = 100
	}

	enrollment.ProgressPercent = percent
	if percent >= 100 && enrollment.Status != model.Completed {
		now := time.Now()
		enrollment.Status = model.Completed
		enrollment.CompletedAt = &now
	}

	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return err
	}

	if enrollment.Status == model.Completed {
		if err := s.issueCertificate(enrollment); err != nil {
			return err
		}
	}
	return nil
}

// issueCertificate creates the issuance record at most once per (user, course):
// the insert races safely against concurrent completion events because the
// duplicate loses at the unique index, not at a read-then-write check.
func (s *ProgressService) issueCertificate(enrollment *model.Enrollment) error {
	cert := &model.Certificate{
		UserID:           enrollment.UserID,
		CourseID:         enrollment.CourseID,
		EnrollmentID:     enrollment.ID,
		VerificationCode: model.GenerateVerificationCode(),
		IssuedAt:         time.Now(),
	}
	if err := s.CertificateRepo.Create(cert); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.Uint("userId", enrollment.UserID),
		zap.Uint("courseId", enrollment.CourseID),
		zap.String("code", cert.VerificationCode))

	s.Notifications.Notify(enrollment.UserID, model.NotifyAchievement,
		"Course completed", "Congratulations! You finished the course and earned a certificate.")
	return nil
}

func (s *ProgressService) GetCertificateByCode(code string) (*model.Certificate, error) {
	cert, err := s.CertificateRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}
