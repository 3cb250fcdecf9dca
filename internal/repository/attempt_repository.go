package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) CountForEnrollment(userID, quizID, enrollmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND enrollment_id = ?", userID, quizID, enrollmentID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) ListForEnrollment(userID, quizID, enrollmentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ? AND quiz_id = ? AND enrollment_id = ?", userID, quizID, enrollmentID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var attempts []model.QuizAttempt
	var total int64
	q := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

// Complete writes the grading outcome, guarded so only one submission can ever
// land: the update matches the row only while completed_at is still NULL.
// Returns false when another submission already closed the attempt.
func (r *AttemptRepository) Complete(attempt *model.QuizAttempt) (bool, error) {
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]interface{}{
			"completed_at":       attempt.CompletedAt,
			"answers":            attempt.Answers,
			"score_percent":      attempt.ScorePercent,
			"passed":             attempt.Passed,
			"timed_out":          attempt.TimedOut,
			"time_spent_seconds": attempt.TimeSpentSeconds,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListOpenCandidates returns open attempts on time-limited quizzes that
// started before the cutoff. The caller checks each attempt against its quiz's
// exact deadline; this query only narrows the sweep.
func (r *AttemptRepository) ListOpenCandidates(cutoff time.Time) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.completed_at IS NULL").
		Where("quizzes.time_limit_minutes > 0").
		Where("quiz_attempts.started_at < ?", cutoff).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) HasPassed(enrollmentID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("enrollment_id = ? AND quiz_id = ? AND passed = ?", enrollmentID, quizID, true).
		Count(&count).Error
	return count > 0, err
}

// CountPassedQuizzes counts distinct published quizzes with at least one
// passed attempt on the enrollment. Retakes never add units, and drafts stay
// out of the rollup on both sides.
func (r *AttemptRepository) CountPassedQuizzes(enrollmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.is_published = ?", true).
		Where("quiz_attempts.enrollment_id = ? AND quiz_attempts.passed = ?", enrollmentID, true).
		Distinct("quiz_attempts.quiz_id").
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) HasAttemptsForQuiz(quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count > 0, err
}
