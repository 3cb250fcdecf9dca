package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type MessageService struct {
	MessageRepo   *repository.MessageRepository
	UserRepo      *repository.UserRepository
	Notifications *NotificationService
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
) *MessageService {
	return &MessageService{
		MessageRepo:   messageRepo,
		UserRepo:      userRepo,
		Notifications: notifications,
	}
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

func (s *MessageService) Send(senderID uint, req SendMessageRequest) (*model.DirectMessage, error) {
	if req.RecipientID == senderID {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.UserRepo.FindByID(req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	conv, err := s.MessageRepo.FindOrCreateConversation(senderID, req.RecipientID)
	if err != nil {
		return nil, err
	}

	msg := &model.DirectMessage{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        req.Content,
	}
	if err := s.MessageRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	s.Notifications.Notify(req.RecipientID, model.NotifyMessage,
		"New message", "You have a new direct message.")
	return msg, nil
}

func (s *MessageService) ListConversations(userID uint) ([]model.Conversation, error) {
	return s.MessageRepo.ListConversations(userID)
}

func (s *MessageService) ListMessages(userID, conversationID uint, page, limit int) ([]model.DirectMessage, int64, error) {
	conv, err := s.MessageRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrPermissionDenied
		}
		return nil, 0, err
	}
	if conv.UserAID != userID && conv.UserBID != userID {
		return nil, 0, util.ErrPermissionDenied
	}

	msgs, total, err := s.MessageRepo.ListMessages(conversationID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	// Reading a page marks the other side's messages as read.
	if err := s.MessageRepo.MarkConversationRead(conversationID, userID); err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}
