package usecase

import (
	"context"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/internal/domain/service"
	"webond/pkg/errors"
	"webond/pkg/logger"
)

type PaymentUseCase struct {
	transactionRepo repository.TransactionRepository
	taskRepo        repository.TaskRepository
	paymentService  service.PaymentService
}

func NewPaymentUseCase(transactionRepo repository.TransactionRepository, taskRepo repository.TaskRepository, paymentService service.PaymentService) *PaymentUseCase {
	return &PaymentUseCase{
		transactionRepo: transactionRepo,
		taskRepo:        taskRepo,
		paymentService:  paymentService,
	}
}

type EscrowResult struct {
	Transaction  *entity.Transaction
	ClientSecret string
}

// CreateEscrow opens the escrow for a task's reward. Only the raiser
// pays, a task carries at most one escrow, and the charge amount is
// the task's reward.
func (uc *PaymentUseCase) CreateEscrow(ctx context.Context, taskID, userID string) (*EscrowResult, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.RaiserID != userID {
		return nil, errors.Forbidden("Only the task raiser can fund the escrow", nil)
	}
	switch task.Status {
	case entity.TaskStatusActive, entity.TaskStatusInProgress:
	default:
		return nil, errors.Forbidden("Task is not in a fundable state", nil)
	}

	if existing, err := uc.transactionRepo.GetEscrowByTaskID(ctx, taskID); err == nil && existing != nil {
		return nil, errors.Conflict("Escrow already exists for this task")
	}

	transaction := &entity.Transaction{
		TaskID:  taskID,
		PayerID: userID,
		Amount:  task.RewardAmount,
		Status:  entity.TransactionStatusEscrow,
	}

	var clientSecret string
	if uc.paymentService != nil {
		intent, err := uc.paymentService.CreatePaymentIntent(ctx, service.PaymentIntentRequest{
			TaskID:   taskID,
			Amount:   task.RewardAmount,
			Currency: "hkd",
		})
		if err != nil {
			return nil, errors.Upstream("Payment provider rejected the escrow charge", err)
		}
		transaction.PaymentIntentID = intent.IntentID
		clientSecret = intent.ClientSecret
	}

	if err := uc.transactionRepo.CreateEscrow(ctx, transaction); err != nil {
		return nil, err
	}

	logger.Info("escrow opened for task %s by %s (%.2f HKD)", taskID, userID, task.RewardAmount)

	return &EscrowResult{
		Transaction:  transaction,
		ClientSecret: clientSecret,
	}, nil
}

// ReleaseEscrow pays the solver out. Only the raiser may release, and
// only after the task has completed.
func (uc *PaymentUseCase) ReleaseEscrow(ctx context.Context, taskID, userID string) (*entity.Transaction, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.RaiserID != userID {
		return nil, errors.Forbidden("Only the task raiser can release the escrow", nil)
	}
	if task.Status != entity.TaskStatusCompleted {
		return nil, errors.Forbidden("Escrow can only be released after task completion", nil)
	}

	transaction, err := uc.transactionRepo.Release(ctx, taskID)
	if err != nil {
		return nil, err
	}

	logger.Info("escrow released for task %s", taskID)

	return transaction, nil
}

// GetTaskEscrow returns the escrow transaction for a task, visible to
// its participants only.
func (uc *PaymentUseCase) GetTaskEscrow(ctx context.Context, taskID, userID string) (*entity.Transaction, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsParty(userID) {
		return nil, errors.Forbidden("Only task participants can view the escrow", nil)
	}

	return uc.transactionRepo.GetEscrowByTaskID(ctx, taskID)
}

// ListMyTransactions returns the caller's payment history.
func (uc *PaymentUseCase) ListMyTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	return uc.transactionRepo.ListByPayer(ctx, userID, limit, offset)
}
