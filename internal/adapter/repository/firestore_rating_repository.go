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

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	// The doc is keyed by (task, rater). Firestore Create fails on an
	// existing doc, so a concurrent second rating loses with Conflict.
	rating.ID = rating.TaskID + "_" + rating.RaterID
	rating.CreatedAt = time.Now()

	_, err := r.client.Collection("ratings").Doc(rating.ID).Create(ctx, rating)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("You have already rated this task")
		}
		return errors.Internal("Failed to create rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) GetByTaskAndRater(ctx context.Context, taskID, raterID string) (*entity.Rating, error) {
	iter := r.client.Collection("ratings").
		Where("taskId", "==", taskID).
		Where("raterId", "==", raterID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Rating", err)
		}
		return nil, errors.Internal("Failed to get rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) ListByRatee(ctx context.Context, rateeID string) ([]*entity.Rating, error) {
	query := r.client.Collection("ratings").
		Where("rateeId", "==", rateeID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var ratings []*entity.Rating

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate ratings", err)
		}

		var rating entity.Rating
		if err := doc.DataTo(&rating); err != nil {
			return nil, errors.Internal("Failed to parse rating data", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}
