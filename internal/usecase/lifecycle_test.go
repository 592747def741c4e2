package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webond/internal/domain/entity"
	apperrors "webond/pkg/errors"
)

// Walks one task through its whole life: posted by a raiser, accepted by
// a solver, paid into escrow, confirmed by both sides, released, and
// rated in both directions.
func TestVisaRenewalLifecycle(t *testing.T) {
	ctx := context.Background()

	chatRepo := newMemoryChatRepo()
	taskRepo := newMemoryTaskRepo(chatRepo)
	userRepo := newMemoryUserRepo()
	ratingRepo := newMemoryRatingRepo()
	transactionRepo := newMemoryTransactionRepo()

	taskUC := NewTaskUseCase(taskRepo, userRepo, nil)
	paymentUC := NewPaymentUseCase(transactionRepo, taskRepo, &fakePaymentService{})
	ratingUC := NewRatingUseCase(ratingRepo, taskRepo, userRepo)
	chatUC := NewChatUseCase(chatRepo, nil, nil)

	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "raiser-1", Email: "mei@example.com"}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "solver-1", Email: "david@example.com"}))

	task, err := taskUC.Create(ctx, "raiser-1", TaskInput{
		Title:        "Help with visa renewal",
		Description:  "Accompany me to the Immigration Department in Wan Chai and help with the forms.",
		Category:     "visa_help",
		Location:     "Wan Chai",
		RewardAmount: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDraft, task.Status)

	task, err = taskUC.Publish(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusActive, task.Status)

	task, err = taskUC.Accept(ctx, task.ID, "solver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
	assert.Equal(t, "solver-1", task.SolverID)

	// A second solver arriving late is turned away.
	_, err = taskUC.Accept(ctx, task.ID, "solver-2")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "CONFLICT") || apperrors.Is(err, "FORBIDDEN"))

	escrow, err := paymentUC.CreateEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusEscrow, escrow.Transaction.Status)
	assert.Equal(t, task.RewardAmount, escrow.Transaction.Amount)

	// The pair coordinate over the task chat created on acceptance.
	chat, err := chatUC.GetTaskChat(ctx, task.ID, "solver-1")
	require.NoError(t, err)
	_, err = chatUC.SendMessage(ctx, chat.ID, "solver-1", "Meeting you at the Immigration Tower entrance at 9am.")
	require.NoError(t, err)

	// Release before completion is refused.
	_, err = paymentUC.ReleaseEscrow(ctx, task.ID, "raiser-1")
	assert.True(t, apperrors.Is(err, "FORBIDDEN"))

	task, err = taskUC.Complete(ctx, task.ID, "solver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)

	task, err = taskUC.Complete(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)

	released, err := paymentUC.ReleaseEscrow(ctx, task.ID, "raiser-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, released.Status)

	fromRaiser, err := ratingUC.Create(ctx, "raiser-1", CreateRatingInput{TaskID: task.ID, Score: 5, Review: "Very helpful and patient."})
	require.NoError(t, err)
	assert.Equal(t, "solver-1", fromRaiser.RateeID)

	fromSolver, err := ratingUC.Create(ctx, "solver-1", CreateRatingInput{TaskID: task.ID, Score: 4})
	require.NoError(t, err)
	assert.Equal(t, "raiser-1", fromSolver.RateeID)

	summary, err := ratingUC.GetUserRatings(ctx, "solver-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, summary.AverageRating)
	assert.Equal(t, 1, summary.TotalRatings)
}
