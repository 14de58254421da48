package service

import (
	"context"
	"errors"
	"strings"

	"feedgram/internal/models"
	"feedgram/internal/repository"
)

const historyLimit = 50

type ChatService interface {
	Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error)
	History(ctx context.Context, viewerID, otherID string) ([]models.Message, error)
	MarkRead(ctx context.Context, senderID, viewerID string) (int64, error)
	Partners(ctx context.Context, viewerID string) ([]models.ChatPartner, error)
}

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send persists the message and returns it populated with sender and
// receiver display fields. Persistence always precedes any broadcast the
// caller performs.
func (s *chatService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message text is required")
	}
	if senderID == receiverID {
		return nil, errors.New("cannot message yourself")
	}

	if _, err := s.userRepo.GetUserByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *chatService) History(ctx context.Context, viewerID, otherID string) ([]models.Message, error) {
	return s.messageRepo.GetHistory(ctx, viewerID, otherID, historyLimit)
}

// MarkRead flips every unread message from senderID to the viewer to
// read. Calling it with nothing unread is a no-op.
func (s *chatService) MarkRead(ctx context.Context, senderID, viewerID string) (int64, error) {
	return s.messageRepo.MarkRead(ctx, senderID, viewerID)
}

func (s *chatService) Partners(ctx context.Context, viewerID string) ([]models.ChatPartner, error) {
	return s.messageRepo.ListPartners(ctx, viewerID)
}
