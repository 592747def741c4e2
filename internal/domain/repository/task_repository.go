package repository

import (
	"context"

	"webond/internal/domain/entity"
)

// TaskFilter narrows task listings. Zero values mean "no constraint".
type TaskFilter struct {
	Status    string
	Category  string
	MinReward float64
	MaxReward float64
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	List(ctx context.Context, filter TaskFilter, limit, offset int) ([]*entity.Task, int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Task, int64, error)

	// Transition applies mutate to the task inside a storage transaction.
	// mutate sees the freshest state and may return an error to abort, so
	// concurrent state changes resolve to exactly one winner.
	Transition(ctx context.Context, id string, mutate func(task *entity.Task) error) (*entity.Task, error)

	// AcceptAndCreateChat atomically assigns the solver on an active task
	// and creates the task's chat. Loses the race with a Conflict error.
	AcceptAndCreateChat(ctx context.Context, id, solverID string, chat *entity.Chat) (*entity.Task, error)
}
