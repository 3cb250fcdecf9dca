package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// FindOrCreateConversation keys the pair with the lower user id first so the
// same two users always share one conversation row.
func (r *MessageRepository) FindOrCreateConversation(userA, userB uint) (*model.Conversation, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	var conv model.Conversation
	err := r.DB.Where("user_a_id = ? AND user_b_id = ?", userA, userB).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	conv = model.Conversation{UserAID: userA, UserBID: userB, LastMessageAt: time.Now()}
	if err := r.DB.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MessageRepository) FindConversationByID(id uint) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.DB.First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *MessageRepository) ListConversations(userID uint) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.DB.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *MessageRepository) CreateMessage(msg *model.DirectMessage) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).Error
	})
}

func (r *MessageRepository) ListMessages(conversationID uint, page, limit int) ([]model.DirectMessage, int64, error) {
	var msgs []model.DirectMessage
	var total int64
	q := r.DB.Model(&model.DirectMessage{}).Where("conversation_id = ?", conversationID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC").Offset((page - 1) * limit).Limit(limit).Find(&msgs).Error
	return msgs, total, err
}

func (r *MessageRepository) MarkConversationRead(conversationID, readerID uint) error {
	return r.DB.Model(&model.DirectMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
