package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webond/internal/domain/entity"
	"webond/internal/domain/service"
	apperrors "webond/pkg/errors"
)

type fakePaymentService struct {
	fail    bool
	intents int
}

func (s *fakePaymentService) CreatePaymentIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error) {
	if s.fail {
		return nil, assert.AnError
	}
	s.intents++
	return &service.PaymentIntentResponse{
		IntentID:     "pi_test",
		ClientSecret: "pi_test_secret",
		Status:       "requires_payment_method",
	}, nil
}

func newPaymentTestEnv(paymentService service.PaymentService) (*PaymentUseCase, *TaskUseCase) {
	chatRepo := newMemoryChatRepo()
	taskRepo := newMemoryTaskRepo(chatRepo)
	userRepo := newMemoryUserRepo()
	transactionRepo := newMemoryTransactionRepo()

	taskUC := NewTaskUseCase(taskRepo, userRepo, nil)
	paymentUC := NewPaymentUseCase(transactionRepo, taskRepo, paymentService)
	return paymentUC, taskUC
}

func TestCreateEscrowByRaiser(t *testing.T) {
	stripe := &fakePaymentService{}
	paymentUC, taskUC := newPaymentTestEnv(stripe)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")

	result, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionStatusEscrow, result.Transaction.Status)
	assert.Equal(t, task.RewardAmount, result.Transaction.Amount)
	assert.Equal(t, "pi_test", result.Transaction.PaymentIntentID)
	assert.Equal(t, "pi_test_secret", result.ClientSecret)
	assert.Equal(t, 1, stripe.intents)
}

func TestCreateEscrowRejectsNonRaiser(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")

	_, err := paymentUC.CreateEscrow(ctx, task.ID, "solver-1")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))
}

func TestCreateEscrowRejectsDraft(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task, err := taskUC.Create(ctx, "raiser-1", validTaskInput())
	require.NoError(t, err)

	_, err = paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))
}

func TestDuplicateEscrowConflicts(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")

	_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)

	_, err = paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "CONFLICT"))
}

func TestCreateEscrowProviderFailure(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(&fakePaymentService{fail: true})
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")

	_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "UPSTREAM_ERROR"))
}

func TestReleaseRequiresCompletedTask(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")
	_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)

	_, err = paymentUC.ReleaseEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))
}

func TestReleaseEscrowFlow(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")
	_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)

	_, err = taskUC.Accept(ctx, task.ID, "solver-1")
	require.NoError(t, err)
	_, err = taskUC.Complete(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	_, err = taskUC.Complete(ctx, task.ID, "solver-1")
	require.NoError(t, err)

	_, err = paymentUC.ReleaseEscrow(ctx, task.ID, "solver-1")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))

	released, err := paymentUC.ReleaseEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, released.Status)
	assert.NotNil(t, released.CompletedAt)

	_, err = paymentUC.ReleaseEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "CONFLICT"))
}

func TestGetTaskEscrowParticipantsOnly(t *testing.T) {
	paymentUC, taskUC := newPaymentTestEnv(nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")
	_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)

	_, err = paymentUC.GetTaskEscrow(ctx, task.ID, "stranger")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))

	escrow, err := paymentUC.GetTaskEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, task.ID, escrow.TaskID)
}

func TestConcurrentEscrowHasOneWinner(t *testing.T) {
	chatRepo := newMemoryChatRepo()
	taskRepo := newMemoryTaskRepo(chatRepo)
	userRepo := newMemoryUserRepo()
	transactionRepo := newMemoryTransactionRepo()

	taskUC := NewTaskUseCase(taskRepo, userRepo, nil)
	paymentUC := NewPaymentUseCase(transactionRepo, taskRepo, nil)
	ctx := context.Background()

	task := createActiveTask(t, taskUC, "raiser-1")

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, apperrors.Is(err, "CONFLICT"))
		}
	}
	assert.Equal(t, 1, winners)

	transactions, _, err := transactionRepo.ListByPayer(ctx, "raiser-1", 0, 0)
	require.NoError(t, err)
	escrows := 0
	for _, transaction := range transactions {
		if transaction.TaskID == task.ID && transaction.Status == entity.TransactionStatusEscrow {
			escrows++
		}
	}
	assert.Equal(t, 1, escrows)
}
