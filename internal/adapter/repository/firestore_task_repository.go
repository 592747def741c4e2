package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
)

type firestoreTaskRepository struct {
	client *firestore.Client
}

func NewFirestoreTaskRepository(client *firestore.Client) repository.TaskRepository {
	return &firestoreTaskRepository{
		client: client,
	}
}

func (r *firestoreTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to create task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	doc, err := r.client.Collection("tasks").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Task", err)
		}
		return nil, errors.Internal("Failed to get task", err)
	}

	var task entity.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, errors.Internal("Failed to parse task data", err)
	}

	return &task, nil
}

func (r *firestoreTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now()

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to update task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) List(ctx context.Context, filter repository.TaskFilter, limit, offset int) ([]*entity.Task, int64, error) {
	collection := r.client.Collection("tasks")

	query := collection.Query
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}

	// Firestore requires the first ordering to match the inequality field.
	if filter.MinReward > 0 || filter.MaxReward > 0 {
		if filter.MinReward > 0 {
			query = query.Where("rewardAmount", ">=", filter.MinReward)
		}
		if filter.MaxReward > 0 {
			query = query.Where("rewardAmount", "<=", filter.MaxReward)
		}
		query = query.OrderBy("rewardAmount", firestore.Asc)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count tasks", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var tasks []*entity.Task

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate tasks", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, 0, errors.Internal("Failed to parse task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, total, nil
}

func (r *firestoreTaskRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Task, int64, error) {
	// Firestore has no OR over two fields, so raiser and solver sides are
	// queried separately and merged.
	raised, err := r.listByField(ctx, "raiserId", userID)
	if err != nil {
		return nil, 0, err
	}

	solved, err := r.listByField(ctx, "solverId", userID)
	if err != nil {
		return nil, 0, err
	}

	tasks := append(raised, solved...)
	total := int64(len(tasks))

	// Newest first across both sides.
	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			if tasks[j].CreatedAt.After(tasks[i].CreatedAt) {
				tasks[i], tasks[j] = tasks[j], tasks[i]
			}
		}
	}

	if offset > 0 {
		if offset >= len(tasks) {
			return nil, total, nil
		}
		tasks = tasks[offset:]
	}
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}

	return tasks, total, nil
}

func (r *firestoreTaskRepository) listByField(ctx context.Context, field, value string) ([]*entity.Task, error) {
	iter := r.client.Collection("tasks").Where(field, "==", value).Documents(ctx)
	var tasks []*entity.Task

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate tasks", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, errors.Internal("Failed to parse task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, nil
}

func (r *firestoreTaskRepository) Transition(ctx context.Context, id string, mutate func(task *entity.Task) error) (*entity.Task, error) {
	ref := r.client.Collection("tasks").Doc(id)
	var updated entity.Task

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Task", err)
			}
			return errors.Internal("Failed to get task", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return errors.Internal("Failed to parse task data", err)
		}

		if err := mutate(&task); err != nil {
			return err
		}

		task.UpdatedAt = time.Now()
		updated = task

		return tx.Set(ref, &task)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreTaskRepository) AcceptAndCreateChat(ctx context.Context, id, solverID string, chat *entity.Chat) (*entity.Task, error) {
	taskRef := r.client.Collection("tasks").Doc(id)

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chatRef := r.client.Collection("chats").Doc(chat.ID)

	var updated entity.Task

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(taskRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Task", err)
			}
			return errors.Internal("Failed to get task", err)
		}

		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return errors.Internal("Failed to parse task data", err)
		}

		// The compare-and-set: only one concurrent acceptance can observe
		// an active, unassigned task.
		if task.Status != entity.TaskStatusActive || task.SolverID != "" {
			return errors.Conflict("Task has already been accepted")
		}

		now := time.Now()
		task.SolverID = solverID
		task.Status = entity.TaskStatusInProgress
		task.AcceptedAt = &now
		task.UpdatedAt = now

		chat.TaskID = task.ID
		chat.Participants = []string{task.RaiserID, solverID}
		if chat.UnreadCount == nil {
			chat.UnreadCount = make(map[string]int)
		}
		chat.CreatedAt = now
		chat.UpdatedAt = now
		chat.LastMessageAt = now

		if err := tx.Set(taskRef, &task); err != nil {
			return errors.Internal("Failed to update task", err)
		}
		if err := tx.Set(chatRef, chat); err != nil {
			return errors.Internal("Failed to create chat", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
