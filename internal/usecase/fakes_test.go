package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
)

// In-memory repositories backing the use case tests. Transition and
// AcceptAndCreateChat serialize on the store mutex, mirroring the
// transactional guarantees of the real storage layer.

type memoryTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*entity.Task
	chats *memoryChatRepo
}

func newMemoryTaskRepo(chats *memoryChatRepo) *memoryTaskRepo {
	return &memoryTaskRepo{
		tasks: make(map[string]*entity.Task),
		chats: chats,
	}
}

func (r *memoryTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memoryTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.NotFound("Task", nil)
	}
	clone := *task
	return &clone, nil
}

func (r *memoryTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return errors.NotFound("Task", nil)
	}
	task.UpdatedAt = time.Now()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memoryTaskRepo) List(ctx context.Context, filter repository.TaskFilter, limit, offset int) ([]*entity.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Category != "" && task.Category != filter.Category {
			continue
		}
		if filter.MinReward > 0 && task.RewardAmount < filter.MinReward {
			continue
		}
		if filter.MaxReward > 0 && task.RewardAmount > filter.MaxReward {
			continue
		}
		clone := *task
		tasks = append(tasks, &clone)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	total := int64(len(tasks))
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

func (r *memoryTaskRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*entity.Task
	for _, task := range r.tasks {
		if task.RaiserID == userID || task.SolverID == userID {
			clone := *task
			tasks = append(tasks, &clone)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, int64(len(tasks)), nil
}

func (r *memoryTaskRepo) Transition(ctx context.Context, id string, mutate func(task *entity.Task) error) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.NotFound("Task", nil)
	}

	clone := *task
	if err := mutate(&clone); err != nil {
		return nil, err
	}
	clone.UpdatedAt = time.Now()
	r.tasks[id] = &clone

	result := clone
	return &result, nil
}

func (r *memoryTaskRepo) AcceptAndCreateChat(ctx context.Context, id, solverID string, chat *entity.Chat) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.NotFound("Task", nil)
	}
	if task.Status != entity.TaskStatusActive || task.SolverID != "" {
		return nil, errors.Conflict("Task has already been accepted")
	}

	now := time.Now()
	clone := *task
	clone.SolverID = solverID
	clone.Status = entity.TaskStatusInProgress
	clone.AcceptedAt = &now
	clone.UpdatedAt = now
	r.tasks[id] = &clone

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chat.TaskID = id
	chat.Participants = []string{clone.RaiserID, solverID}
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	chat.CreatedAt = now
	chat.UpdatedAt = now
	chat.LastMessageAt = now
	if r.chats != nil {
		chatClone := *chat
		r.chats.store(&chatClone)
	}

	result := clone
	return &result, nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memoryUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type memoryRatingRepo struct {
	mu      sync.Mutex
	ratings map[string]*entity.Rating
}

func newMemoryRatingRepo() *memoryRatingRepo {
	return &memoryRatingRepo{ratings: make(map[string]*entity.Rating)}
}

func (r *memoryRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating.ID = rating.TaskID + "_" + rating.RaterID
	if _, exists := r.ratings[rating.ID]; exists {
		return errors.Conflict("You have already rated this task")
	}
	rating.CreatedAt = time.Now()
	clone := *rating
	r.ratings[rating.ID] = &clone
	return nil
}

func (r *memoryRatingRepo) GetByTaskAndRater(ctx context.Context, taskID, raterID string) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rating := range r.ratings {
		if rating.TaskID == taskID && rating.RaterID == raterID {
			clone := *rating
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Rating", nil)
}

func (r *memoryRatingRepo) ListByRatee(ctx context.Context, rateeID string) ([]*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ratings []*entity.Rating
	for _, rating := range r.ratings {
		if rating.RateeID == rateeID {
			clone := *rating
			ratings = append(ratings, &clone)
		}
	}
	return ratings, nil
}

type memoryTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
}

func newMemoryTransactionRepo() *memoryTransactionRepo {
	return &memoryTransactionRepo{transactions: make(map[string]*entity.Transaction)}
}

func (r *memoryTransactionRepo) CreateEscrow(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = "escrow_" + transaction.TaskID
	if _, exists := r.transactions[transaction.ID]; exists {
		return errors.Conflict("Escrow already exists for this task")
	}
	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	clone := *transaction
	r.transactions[transaction.ID] = &clone
	return nil
}

func (r *memoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	clone := *transaction
	return &clone, nil
}

func (r *memoryTransactionRepo) GetEscrowByTaskID(ctx context.Context, taskID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.escrowByTaskLocked(taskID)
}

func (r *memoryTransactionRepo) escrowByTaskLocked(taskID string) (*entity.Transaction, error) {
	for _, transaction := range r.transactions {
		if transaction.TaskID == taskID && transaction.Status == entity.TransactionStatusEscrow {
			clone := *transaction
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Escrow transaction", nil)
}

func (r *memoryTransactionRepo) ListByPayer(ctx context.Context, payerID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var transactions []*entity.Transaction
	for _, transaction := range r.transactions {
		if transaction.PayerID == payerID {
			clone := *transaction
			transactions = append(transactions, &clone)
		}
	}
	return transactions, int64(len(transactions)), nil
}

func (r *memoryTransactionRepo) Release(ctx context.Context, taskID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, transaction := range r.transactions {
		if transaction.TaskID == taskID {
			if transaction.Status != entity.TransactionStatusEscrow {
				return nil, errors.Conflict("Escrow has already been released")
			}
			now := time.Now()
			clone := *transaction
			clone.Status = entity.TransactionStatusCompleted
			clone.CompletedAt = &now
			clone.UpdatedAt = now
			r.transactions[id] = &clone
			result := clone
			return &result, nil
		}
	}
	return nil, errors.NotFound("Escrow transaction", nil)
}

type memoryChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newMemoryChatRepo() *memoryChatRepo {
	return &memoryChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *memoryChatRepo) store(chat *entity.Chat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[chat.ID] = chat
}

func (r *memoryChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	clone := *chat
	r.store(&clone)
	return nil
}

func (r *memoryChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	clone := *chat
	clone.UnreadCount = copyCounts(chat.UnreadCount)
	return &clone, nil
}

func (r *memoryChatRepo) GetByTaskID(ctx context.Context, taskID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if chat.TaskID == taskID {
			clone := *chat
			clone.UnreadCount = copyCounts(chat.UnreadCount)
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *memoryChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var chats []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			clone := *chat
			clone.UnreadCount = copyCounts(chat.UnreadCount)
			chats = append(chats, &clone)
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})
	return chats, int64(len(chats)), nil
}

func (r *memoryChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	clone := *chat
	clone.UnreadCount = copyCounts(chat.UnreadCount)
	r.chats[chat.ID] = &clone
	return nil
}

func (r *memoryChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	clone := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &clone)
	return nil
}

func (r *memoryChatRepo) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.messages[chatID]
	messages := make([]*entity.Message, 0, len(stored))
	for _, message := range stored {
		clone := *message
		messages = append(messages, &clone)
	}
	total := int64(len(messages))
	if offset > 0 {
		if offset >= len(messages) {
			return nil, total, nil
		}
		messages = messages[offset:]
	}
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}
	return messages, total, nil
}

func (r *memoryChatRepo) MarkMessagesRead(ctx context.Context, chatID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, message := range r.messages[chatID] {
		if message.SenderID == userID || message.ReadByUser(userID) {
			continue
		}
		message.ReadBy = append(message.ReadBy, userID)
		count++
	}
	return count, nil
}

func copyCounts(counts map[string]int) map[string]int {
	copied := make(map[string]int, len(counts))
	for key, value := range counts {
		copied[key] = value
	}
	return copied
}
