package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) CreateEscrow(ctx context.Context, transaction *entity.Transaction) error {
	// One escrow doc per task. Firestore Create fails on an existing
	// doc, so the loser of a concurrent duplicate gets Conflict.
	transaction.ID = "escrow_" + transaction.TaskID

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Create(ctx, transaction)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Escrow already exists for this task")
		}
		return errors.Internal("Failed to create transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) GetEscrowByTaskID(ctx context.Context, taskID string) (*entity.Transaction, error) {
	iter := r.client.Collection("transactions").
		Where("taskId", "==", taskID).
		Where("status", "==", entity.TransactionStatusEscrow).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Escrow transaction", err)
		}
		return nil, errors.Internal("Failed to get escrow transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	query := r.client.Collection("transactions").
		Where("payerId", "==", payerID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count transactions", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var transactions []*entity.Transaction

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate transactions", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			return nil, 0, errors.Internal("Failed to parse transaction data", err)
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, total, nil
}

func (r *firestoreTransactionRepository) Release(ctx context.Context, taskID string) (*entity.Transaction, error) {
	escrow, err := r.GetEscrowByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ref := r.client.Collection("transactions").Doc(escrow.ID)
	var released entity.Transaction

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return errors.Internal("Failed to get transaction", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			return errors.Internal("Failed to parse transaction data", err)
		}

		if transaction.Status != entity.TransactionStatusEscrow {
			return errors.Conflict("Escrow has already been released")
		}

		now := time.Now()
		transaction.Status = entity.TransactionStatusCompleted
		transaction.CompletedAt = &now
		transaction.UpdatedAt = now

		released = transaction
		return tx.Set(ref, &transaction)
	})
	if err != nil {
		return nil, err
	}

	return &released, nil
}
