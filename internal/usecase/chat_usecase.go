package usecase

import (
	"context"
	"time"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/internal/infrastructure/ratelimit"
	"webond/internal/infrastructure/websocket"
	"webond/pkg/errors"
)

const maxMessageLen = 2000

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	wsManager   *websocket.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(chatRepo repository.ChatRepository, wsManager *websocket.Manager, rateLimiter *ratelimit.RateLimiter) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

// ListMyChats returns the caller's chats, most recent activity first.
func (uc *ChatUseCase) ListMyChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

// GetChat returns one chat, participants only.
func (uc *ChatUseCase) GetChat(ctx context.Context, chatID, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

// GetTaskChat returns the chat attached to a task, participants only.
func (uc *ChatUseCase) GetTaskChat(ctx context.Context, taskID, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

// GetMessages returns the chat history in chronological order and
// marks everything as read for the caller.
func (uc *ChatUseCase) GetMessages(ctx context.Context, chatID, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}

	messages, total, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if _, err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return nil, 0, err
	}

	if chat.UnreadCount[userID] > 0 {
		chat.UnreadCount[userID] = 0
		chat.UpdatedAt = time.Now()
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			return nil, 0, err
		}
	}

	return messages, total, nil
}

// SendMessage stores a text message and fans it out to the chat room.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID, content string) (*entity.Message, error) {
	message, err := uc.SaveIncoming(ctx, chatID, senderID, content)
	if err != nil {
		return nil, err
	}

	if uc.wsManager != nil {
		uc.wsManager.BroadcastNewMessage(message)
	}

	return message, nil
}

// Authorize implements websocket.MessageSink. It admits only chat
// participants into the room.
func (uc *ChatUseCase) Authorize(ctx context.Context, chatID, userID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	return nil
}

// SaveIncoming implements websocket.MessageSink. It validates,
// rate-limits, stores the message, and rolls the chat's last-message
// bookkeeping forward.
func (uc *ChatUseCase) SaveIncoming(ctx context.Context, chatID, senderID, content string) (*entity.Message, error) {
	if content == "" || len(content) > maxMessageLen {
		return nil, errors.BadRequest("Message content must be between 1 and 2000 characters", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	if uc.rateLimiter != nil {
		if allowed, _ := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
			return nil, errors.TooManyRequests("You are sending messages too quickly")
		}
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		Type:     "text",
		ReadBy:   []string{senderID},
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	now := time.Now()
	chat.LastMessage = content
	chat.LastMessageAt = now
	chat.UpdatedAt = now
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, participant := range chat.Participants {
		if participant != senderID {
			chat.UnreadCount[participant]++
		}
	}
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	return message, nil
}

// UnreadCount returns the caller's total unread messages across chats.
func (uc *ChatUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	chats, _, err := uc.chatRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, chat := range chats {
		total += chat.UnreadCount[userID]
	}
	return total, nil
}
