package usecase

import (
	"context"
	"math"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
)

type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
}

func NewRatingUseCase(ratingRepo repository.RatingRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		taskRepo:   taskRepo,
		userRepo:   userRepo,
	}
}

type CreateRatingInput struct {
	TaskID string
	Score  int
	Review string
}

// Create records the rater's review of their counterparty on a
// completed task. One rating per (task, rater).
func (uc *RatingUseCase) Create(ctx context.Context, raterID string, input CreateRatingInput) (*entity.Rating, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, errors.BadRequest("Score must be between 1 and 5", nil)
	}

	task, err := uc.taskRepo.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if task.Status != entity.TaskStatusCompleted {
		return nil, errors.Forbidden("Only completed tasks can be rated", nil)
	}
	if !task.IsParty(raterID) {
		return nil, errors.Forbidden("Only task participants can rate this task", nil)
	}

	if existing, err := uc.ratingRepo.GetByTaskAndRater(ctx, input.TaskID, raterID); err == nil && existing != nil {
		return nil, errors.Conflict("You have already rated this task")
	}

	rating := &entity.Rating{
		TaskID:  input.TaskID,
		RaterID: raterID,
		RateeID: task.Counterparty(raterID),
		Score:   input.Score,
		Review:  input.Review,
	}

	if err := uc.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

type UserRatingSummary struct {
	Ratings       []*entity.Rating `json:"ratings"`
	AverageRating float64          `json:"average_rating"`
	TotalRatings  int              `json:"total_ratings"`
}

// GetUserRatings returns a user's received ratings with their average
// score, rounded to two decimals. No ratings yields an average of 0.
func (uc *RatingUseCase) GetUserRatings(ctx context.Context, userID string) (*UserRatingSummary, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	ratings, err := uc.ratingRepo.ListByRatee(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &UserRatingSummary{
		Ratings:      ratings,
		TotalRatings: len(ratings),
	}

	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Score
		}
		average := float64(sum) / float64(len(ratings))
		summary.AverageRating = math.Round(average*100) / 100
	}

	return summary, nil
}
