package model

// swagger:model Course
type Course struct {
	BaseModel

	InstructorID uint   `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Title        string `gorm:"size:255" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Category     string `gorm:"size:100" json:"category"`
	IsPublished  bool   `gorm:"default:false" json:"isPublished"`

	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
	Quizzes []Quiz   `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
