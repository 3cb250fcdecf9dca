package model

type NotificationCategory string

const (
	NotifyQuizPassed  NotificationCategory = "quiz_passed"
	NotifyQuizRetry   NotificationCategory = "quiz_retry"
	NotifyAchievement NotificationCategory = "achievement"
	NotifyMessage     NotificationCategory = "message"
	NotifyDiscussion  NotificationCategory = "discussion"
)

// swagger:model Notification
type Notification struct {
	BaseModel

	UserID   uint                 `gorm:"index;type:bigint unsigned" json:"userId"`
	Category NotificationCategory `gorm:"size:50" json:"category"`
	Title    string               `gorm:"size:255" json:"title"`
	Message  string               `gorm:"type:text" json:"message"`
	IsRead   bool                 `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
