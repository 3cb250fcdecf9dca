package service

import (
	"math"

	"lms_backend/internal/repository"
)

type DashboardService struct {
	StatsRepo *repository.StatsRepository
}

func NewDashboardService(statsRepo *repository.StatsRepository) *DashboardService {
	return &DashboardService{StatsRepo: statsRepo}
}

type DashboardStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalCourses      int64   `json:"totalCourses"`
	TotalEnrollments  int64   `json:"totalEnrollments"`
	CompletedCourses  int64   `json:"completedCourses"`
	CompletionRate    float64 `json:"completionRate"`
	TotalAttempts     int64   `json:"totalAttempts"`
	AverageScore      float64 `json:"averageScore"`
	TotalCertificates int64   `json:"totalCertificates"`
}

func (s *DashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.StatsRepo.CountUsers(); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = s.StatsRepo.CountCourses(); err != nil {
		return nil, err
	}
	if stats.TotalEnrollments, err = s.StatsRepo.CountEnrollments(); err != nil {
		return nil, err
	}
	if stats.CompletedCourses, err = s.StatsRepo.CountCompletedEnrollments(); err != nil {
		return nil, err
	}
	if stats.TotalAttempts, err = s.StatsRepo.CountAttempts(); err != nil {
		return nil, err
	}
	if stats.AverageScore, err = s.StatsRepo.AverageScore(); err != nil {
		return nil, err
	}
	if stats.TotalCertificates, err = s.StatsRepo.CountCertificates(); err != nil {
		return nil, err
	}

	if stats.TotalEnrollments > 0 {
		rate := float64(stats.CompletedCourses) / float64(stats.TotalEnrollments) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	stats.AverageScore = math.Round(stats.AverageScore*100) / 100

	return stats, nil
}
