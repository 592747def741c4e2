package usecase

import (
	"context"
	"time"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/pkg/errors"
	"webond/pkg/logger"
)

type AuthUseCase struct {
	userRepo   repository.UserRepository
	authClient AuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, authClient AuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Email             string
	Password          string
	FullName          string
	Role              string
	PreferredLanguage string
}

type AuthResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	role := input.Role
	switch role {
	case entity.UserRoleRaiser, entity.UserRoleSolver, entity.UserRoleBoth:
	case "":
		role = entity.UserRoleBoth
	default:
		return nil, errors.BadRequest("Invalid role", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:                 uid,
		Email:              input.Email,
		FullName:           input.FullName,
		Role:               role,
		Status:             "active",
		PreferredLanguage:  input.PreferredLanguage,
		VerificationStatus: "unverified",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	accessToken, refreshToken, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	accessToken, refreshToken, err := uc.authClient.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Debug("login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.authClient.VerifyToken(ctx, accessToken)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.LastLoginAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("failed to record login time for %s: %v", uid, err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	accessToken, newRefreshToken, err := uc.authClient.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}
