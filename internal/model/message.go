package model

import "time"

// swagger:model Conversation
type Conversation struct {
	BaseModel

	UserAID       uint      `gorm:"uniqueIndex:idx_conversation_pair;type:bigint unsigned" json:"userAId"`
	UserBID       uint      `gorm:"uniqueIndex:idx_conversation_pair;type:bigint unsigned" json:"userBId"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// swagger:model DirectMessage
type DirectMessage struct {
	BaseModel

	ConversationID uint   `gorm:"index;type:bigint unsigned" json:"conversationId"`
	SenderID       uint   `gorm:"index;type:bigint unsigned" json:"senderId"`
	Content        string `gorm:"type:text" json:"content"`
	IsRead         bool   `gorm:"default:false" json:"isRead"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
