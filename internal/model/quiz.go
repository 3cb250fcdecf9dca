package model

// swagger:model Quiz
type Quiz struct {
	BaseModel

	CourseID         uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title            string `gorm:"size:255" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	PassingScore     int    `gorm:"default:70" json:"passingScore"`
	TimeLimitMinutes int    `gorm:"default:0" json:"timeLimitMinutes"` // 0 = no limit
	AttemptsAllowed  int    `gorm:"default:0" json:"attemptsAllowed"`  // 0 = unlimited
	RandomizeOrder   bool   `gorm:"default:false" json:"randomizeOrder"`
	ShowAnswers      bool   `gorm:"default:true" json:"showAnswers"`
	ShowResults      bool   `gorm:"default:true" json:"showResults"`
	IsPublished      bool   `gorm:"default:false" json:"isPublished"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
