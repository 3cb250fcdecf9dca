package model

import "time"

// Certificate is created at most once per (user, course); the composite unique
// index enforces that at write time.
// swagger:model Certificate
type Certificate struct {
	BaseModel

	UserID           uint       `gorm:"uniqueIndex:idx_certificate_user_course;type:bigint unsigned" json:"userId"`
	CourseID         uint       `gorm:"uniqueIndex:idx_certificate_user_course;type:bigint unsigned" json:"courseId"`
	EnrollmentID     uint       `gorm:"index;type:bigint unsigned" json:"enrollmentId"`
	VerificationCode string     `gorm:"size:36;uniqueIndex" json:"verificationCode"`
	IssuedAt         time.Time  `json:"issuedAt"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
