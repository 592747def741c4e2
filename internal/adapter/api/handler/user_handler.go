package handler

import (
	"github.com/labstack/echo/v4"

	"webond/internal/usecase"
	"webond/pkg/errors"
	"webond/pkg/response"
)

type UserHandler struct {
	userUseCase   *usecase.UserUseCase
	ratingUseCase *usecase.RatingUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, ratingUseCase *usecase.RatingUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		ratingUseCase: ratingUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	FullName          string   `json:"full_name" validate:"omitempty,min=2"`
	Bio               string   `json:"bio" validate:"omitempty,max=500"`
	Location          string   `json:"location"`
	PreferredLanguage string   `json:"preferred_language"`
	LanguagesSpoken   []string `json:"languages_spoken"`
	Role              string   `json:"role" validate:"omitempty,oneof=raiser solver both"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FullName:          req.FullName,
		Bio:               req.Bio,
		Location:          req.Location,
		PreferredLanguage: req.PreferredLanguage,
		LanguagesSpoken:   req.LanguagesSpoken,
		Role:              req.Role,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// GetUser returns another user's public profile.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// GetUserRatings returns a user's received ratings and their average.
func (h *UserHandler) GetUserRatings(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	summary, err := h.ratingUseCase.GetUserRatings(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}
