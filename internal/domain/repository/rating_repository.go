package repository

import (
	"context"

	"webond/internal/domain/entity"
)

type RatingRepository interface {
	// Create inserts a rating keyed by (task, rater), so a concurrent
	// duplicate by the same rater fails with Conflict.
	Create(ctx context.Context, rating *entity.Rating) error
	GetByTaskAndRater(ctx context.Context, taskID, raterID string) (*entity.Rating, error)
	ListByRatee(ctx context.Context, rateeID string) ([]*entity.Rating, error)
}
