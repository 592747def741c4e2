package repository

import (
	"context"

	"webond/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByTaskID(ctx context.Context, taskID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	// MarkMessagesRead records the user as reader of every message in the
	// chat they have not read yet and returns how many were updated.
	MarkMessagesRead(ctx context.Context, chatID, userID string) (int, error)
}
