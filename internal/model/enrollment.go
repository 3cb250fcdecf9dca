package model

import "time"

type EnrollmentStatus string

const (
	Enrolled  EnrollmentStatus = "enrolled"
	Completed EnrollmentStatus = "completed"
)

// swagger:model Enrollment
type Enrollment struct {
	BaseModel

	UserID          uint             `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"userId"`
	CourseID        uint             `gorm:"uniqueIndex:idx_enrollment_user_course;type:bigint unsigned" json:"courseId"`
	Status          EnrollmentStatus `gorm:"size:20;default:enrolled" json:"status"`
	ProgressPercent int              `gorm:"default:0" json:"progressPercent"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
