package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
	"webond/pkg/logger"
)

const (
	minTitleLen       = 5
	maxTitleLen       = 200
	minDescriptionLen = 20
	maxDescriptionLen = 2000
	minRewardHKD      = 50
	maxRewardHKD      = 5000
)

// RecommendationCache is the optional Redis-backed layer in front of
// the recommendation pass. A nil cache disables caching.
type RecommendationCache interface {
	Get(ctx context.Context, userID string) ([]*entity.Task, bool)
	Set(ctx context.Context, userID string, tasks []*entity.Task)
}

type TaskUseCase struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	cache    RecommendationCache
}

func NewTaskUseCase(taskRepo repository.TaskRepository, userRepo repository.UserRepository, cache RecommendationCache) *TaskUseCase {
	return &TaskUseCase{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

type TaskInput struct {
	Title                   string
	Description             string
	Category                string
	Location                string
	RewardAmount            float64
	PreferredLanguage       string
	PreferredCompletionDate *time.Time
}

func validateTaskInput(input TaskInput) error {
	if len(input.Title) < minTitleLen || len(input.Title) > maxTitleLen {
		return errors.BadRequest(fmt.Sprintf("Title must be between %d and %d characters", minTitleLen, maxTitleLen), nil)
	}
	if len(input.Description) < minDescriptionLen || len(input.Description) > maxDescriptionLen {
		return errors.BadRequest(fmt.Sprintf("Description must be between %d and %d characters", minDescriptionLen, maxDescriptionLen), nil)
	}

	validCategory := false
	for _, category := range entity.TaskCategories {
		if input.Category == category {
			validCategory = true
			break
		}
	}
	if !validCategory {
		return errors.BadRequest("Invalid task category", nil)
	}

	if input.RewardAmount < minRewardHKD || input.RewardAmount > maxRewardHKD {
		return errors.BadRequest(fmt.Sprintf("Reward must be between %d and %d HKD", minRewardHKD, maxRewardHKD), nil)
	}

	return nil
}

// Create stores a new task in draft status.
func (uc *TaskUseCase) Create(ctx context.Context, raiserID string, input TaskInput) (*entity.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task := &entity.Task{
		RaiserID:                raiserID,
		Title:                   input.Title,
		Description:             input.Description,
		Category:                input.Category,
		Location:                input.Location,
		RewardAmount:            input.RewardAmount,
		PreferredLanguage:       input.PreferredLanguage,
		PreferredCompletionDate: input.PreferredCompletionDate,
		Status:                  entity.TaskStatusDraft,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get returns a task. Drafts are only visible to their raiser.
func (uc *TaskUseCase) Get(ctx context.Context, id, viewerID string) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status == entity.TaskStatusDraft && task.RaiserID != viewerID {
		return nil, errors.NotFound("Task", nil)
	}

	return task, nil
}

// Update edits a task. Only the raiser may edit, and only while the
// task is still a draft.
func (uc *TaskUseCase) Update(ctx context.Context, id, userID string, input TaskInput) (*entity.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	return uc.taskRepo.Transition(ctx, id, func(task *entity.Task) error {
		if task.RaiserID != userID {
			return errors.Forbidden("Only the task raiser can edit this task", nil)
		}
		if task.Status != entity.TaskStatusDraft {
			return errors.Forbidden("Only draft tasks can be edited", nil)
		}

		task.Title = input.Title
		task.Description = input.Description
		task.Category = input.Category
		task.Location = input.Location
		task.RewardAmount = input.RewardAmount
		task.PreferredLanguage = input.PreferredLanguage
		task.PreferredCompletionDate = input.PreferredCompletionDate

		return nil
	})
}

// Publish moves a draft to the public active state.
func (uc *TaskUseCase) Publish(ctx context.Context, id, userID string) (*entity.Task, error) {
	return uc.taskRepo.Transition(ctx, id, func(task *entity.Task) error {
		if task.RaiserID != userID {
			return errors.Forbidden("Only the task raiser can publish this task", nil)
		}
		if task.Status != entity.TaskStatusDraft {
			return errors.Forbidden("Only draft tasks can be published", nil)
		}

		now := time.Now()
		task.Status = entity.TaskStatusActive
		task.PostedAt = &now

		return nil
	})
}

// List returns the public task feed. Status defaults to active.
func (uc *TaskUseCase) List(ctx context.Context, filter repository.TaskFilter, limit, offset int) ([]*entity.Task, int64, error) {
	if filter.Status == "" {
		filter.Status = entity.TaskStatusActive
	}
	if filter.Status == entity.TaskStatusDraft {
		return nil, 0, errors.Forbidden("Draft tasks are not publicly listable", nil)
	}

	return uc.taskRepo.List(ctx, filter, limit, offset)
}

// ListMine returns tasks the user raised or is solving.
func (uc *TaskUseCase) ListMine(ctx context.Context, userID string, limit, offset int) ([]*entity.Task, int64, error) {
	return uc.taskRepo.ListByUser(ctx, userID, limit, offset)
}

// Accept assigns the caller as the task's solver. The storage layer
// guarantees exactly one acceptance wins under contention; the chat is
// created in the same transaction.
func (uc *TaskUseCase) Accept(ctx context.Context, id, solverID string) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.RaiserID == solverID {
		return nil, errors.Forbidden("You cannot accept your own task", nil)
	}
	if task.Status != entity.TaskStatusActive {
		return nil, errors.Forbidden("Task is not open for acceptance", nil)
	}

	chat := &entity.Chat{}
	return uc.taskRepo.AcceptAndCreateChat(ctx, id, solverID, chat)
}

// Complete records the caller's completion confirmation. The task
// finishes once both parties have confirmed.
func (uc *TaskUseCase) Complete(ctx context.Context, id, userID string) (*entity.Task, error) {
	return uc.taskRepo.Transition(ctx, id, func(task *entity.Task) error {
		if !task.IsParty(userID) {
			return errors.Forbidden("Only task participants can confirm completion", nil)
		}
		if task.Status != entity.TaskStatusInProgress {
			return errors.Forbidden("Only in-progress tasks can be completed", nil)
		}

		switch userID {
		case task.RaiserID:
			task.CompletionConfirmedRaiser = true
		case task.SolverID:
			task.CompletionConfirmedSolver = true
		}

		if task.CompletionConfirmedRaiser && task.CompletionConfirmedSolver {
			now := time.Now()
			task.Status = entity.TaskStatusCompleted
			task.CompletedAt = &now
		}

		return nil
	})
}

// Cancel withdraws a task. The raiser can cancel a draft or active
// task; once in progress, both parties must agree off-platform, so
// cancellation stays raiser-initiated but is still allowed.
func (uc *TaskUseCase) Cancel(ctx context.Context, id, userID string) (*entity.Task, error) {
	return uc.taskRepo.Transition(ctx, id, func(task *entity.Task) error {
		if task.RaiserID != userID {
			return errors.Forbidden("Only the task raiser can cancel this task", nil)
		}

		switch task.Status {
		case entity.TaskStatusDraft, entity.TaskStatusActive, entity.TaskStatusInProgress:
		default:
			return errors.Forbidden("Task can no longer be cancelled", nil)
		}

		now := time.Now()
		task.Status = entity.TaskStatusCancelled
		task.CancelledAt = &now

		return nil
	})
}

// Dispute flags the task for arbitration. Either party can raise a
// dispute while the task is in progress or after completion.
func (uc *TaskUseCase) Dispute(ctx context.Context, id, userID string) (*entity.Task, error) {
	return uc.taskRepo.Transition(ctx, id, func(task *entity.Task) error {
		if !task.IsParty(userID) {
			return errors.Forbidden("Only task participants can raise a dispute", nil)
		}

		switch task.Status {
		case entity.TaskStatusInProgress, entity.TaskStatusCompleted:
		default:
			return errors.Forbidden("Task is not in a disputable state", nil)
		}

		now := time.Now()
		task.Status = entity.TaskStatusDisputed
		task.DisputedAt = &now

		return nil
	})
}

// Recommendations returns active tasks ranked for the user, preferring
// language matches and newer postings. Results are cached; on any
// cache or profile failure the unranked active feed is returned.
func (uc *TaskUseCase) Recommendations(ctx context.Context, userID string, limit int) ([]*entity.Task, error) {
	if limit <= 0 {
		limit = 10
	}

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, userID); ok {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	tasks, _, err := uc.taskRepo.List(ctx, repository.TaskFilter{Status: entity.TaskStatusActive}, 50, 0)
	if err != nil {
		return nil, err
	}

	var candidates []*entity.Task
	for _, task := range tasks {
		if task.RaiserID == userID {
			continue
		}
		candidates = append(candidates, task)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("recommendations falling back to unranked feed for %s: %v", userID, err)
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return recommendationScore(candidates[i], user) > recommendationScore(candidates[j], user)
		})
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, userID, candidates)
	}

	return candidates, nil
}

func recommendationScore(task *entity.Task, user *entity.User) int {
	score := 0
	if task.PreferredLanguage != "" && task.PreferredLanguage == user.PreferredLanguage {
		score += 3
	}
	for _, language := range user.LanguagesSpoken {
		if task.PreferredLanguage == language {
			score += 2
			break
		}
	}
	if task.Location != "" && task.Location == user.Location {
		score += 2
	}
	return score
}
