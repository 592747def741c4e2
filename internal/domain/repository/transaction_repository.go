package repository

import (
	"context"

	"webond/internal/domain/entity"
)

type TransactionRepository interface {
	// CreateEscrow inserts the task's escrow transaction. Escrow docs
	// are keyed by task, so a concurrent duplicate fails with Conflict
	// instead of inserting a second row.
	CreateEscrow(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetEscrowByTaskID(ctx context.Context, taskID string) (*entity.Transaction, error)
	ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]*entity.Transaction, int64, error)

	// Release moves the task's escrow transaction to "completed" with a
	// compare-and-set on its status.
	Release(ctx context.Context, taskID string) (*entity.Transaction, error)
}
