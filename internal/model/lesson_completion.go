package model

// LessonCompletion is one idempotent fact "this enrollment finished this lesson".
// The composite unique index makes a replayed completion a no-op, which keeps the
// progress rollup monotonic.
// swagger:model LessonCompletion
type LessonCompletion struct {
	BaseModel

	EnrollmentID uint `gorm:"uniqueIndex:idx_completion_enrollment_lesson;type:bigint unsigned" json:"enrollmentId"`
	LessonID     uint `gorm:"uniqueIndex:idx_completion_enrollment_lesson;type:bigint unsigned" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
