package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	FillBlank      QuestionType = "fill_blank"
	Matching       QuestionType = "matching"
	Essay          QuestionType = "essay"
)

// swagger:model Question
type Question struct {
	BaseModel

	QuizID        uint         `gorm:"index;type:bigint unsigned" json:"quizId"`
	QuestionText  string       `gorm:"type:text" json:"questionText"`
	QuestionType  QuestionType `gorm:"size:50" json:"questionType"`
	Points        int          `gorm:"default:1" json:"points"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"` // JSON object for matching questions
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Order         int          `gorm:"default:0" json:"order"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuestionOption
type QuestionOption struct {
	BaseModel

	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	OptionText string `gorm:"type:text" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
