package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

// StatsRepository serves the admin dashboard with whole-table aggregates.
type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) CountUsers() (int64, error) {
	var n int64
	err := r.DB.Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountCourses() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Course{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountEnrollments() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Enrollment{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountCompletedEnrollments() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("status = ?", model.Completed).
		Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountAttempts() (int64, error) {
	var n int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("completed_at IS NOT NULL").
		Count(&n).Error
	return n, err
}

func (r *StatsRepository) AverageScore() (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("completed_at IS NOT NULL").
		Select("AVG(score_percent)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *StatsRepository) CountCertificates() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Certificate{}).Count(&n).Error
	return n, err
}
