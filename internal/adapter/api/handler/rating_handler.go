package handler

import (
	"github.com/labstack/echo/v4"

	"webond/internal/usecase"
	"webond/pkg/errors"
	"webond/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

type createRatingRequest struct {
	Score  int    `json:"score" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"omitempty,max=1000"`
}

func (h *RatingHandler) Create(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req createRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	rating, err := h.ratingUseCase.Create(c.Request().Context(), userID, usecase.CreateRatingInput{
		TaskID: taskID,
		Score:  req.Score,
		Review: req.Review,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}
