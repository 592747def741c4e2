package usecase

import (
	"context"
	"time"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
}

func NewUserUseCase(userRepo repository.UserRepository, ratingRepo repository.RatingRepository) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName          string
	Bio               string
	Location          string
	PreferredLanguage string
	LanguagesSpoken   []string
	Role              string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.PreferredLanguage != "" {
		user.PreferredLanguage = input.PreferredLanguage
	}
	if input.LanguagesSpoken != nil {
		user.LanguagesSpoken = input.LanguagesSpoken
	}
	if input.Role != "" {
		switch input.Role {
		case entity.UserRoleRaiser, entity.UserRoleSolver, entity.UserRoleBoth:
			user.Role = input.Role
		default:
			return nil, errors.BadRequest("Invalid role", nil)
		}
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user", err)
	}

	return user, nil
}
