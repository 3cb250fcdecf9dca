package model

// swagger:model DiscussionPost
type DiscussionPost struct {
	BaseModel

	CourseID uint   `gorm:"index;type:bigint unsigned" json:"courseId"`
	UserID   uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title    string `gorm:"size:255" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	IsPinned bool   `gorm:"default:false" json:"isPinned"`

	Comments []DiscussionComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (DiscussionPost) TableName() string {
	return "discussion_posts"
}

// swagger:model DiscussionComment
type DiscussionComment struct {
	BaseModel

	PostID  uint   `gorm:"index;type:bigint unsigned" json:"postId"`
	UserID  uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Content string `gorm:"type:text" json:"content"`
}

func (DiscussionComment) TableName() string {
	return "discussion_comments"
}
