package model

import "time"

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel

	QuizID       uint `gorm:"index;type:bigint unsigned" json:"quizId"`
	UserID       uint `gorm:"index;type:bigint unsigned" json:"userId"`
	EnrollmentID uint `gorm:"index;type:bigint unsigned" json:"enrollmentId"`

	// 1-based, scoped to (user, quiz, enrollment)
	AttemptNumber int `json:"attemptNumber"`

	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // nil while in progress

	// Questions as they were when the attempt started. Grading always reads
	// this snapshot, so later edits to the quiz cannot change a recorded score.
	QuestionsSnapshot string `gorm:"type:json" json:"-"`

	Answers          string `gorm:"type:json" json:"answers"` // question id -> submitted value
	ScorePercent     int    `json:"scorePercent"`
	Passed           bool   `gorm:"default:false" json:"passed"`
	TimedOut         bool   `gorm:"default:false" json:"timedOut"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
