package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"webond/internal/domain/entity"
	"webond/internal/domain/repository"
	"webond/internal/usecase"
	"webond/pkg/errors"
	"webond/pkg/response"
	"webond/pkg/utils"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

type taskRequest struct {
	Title                   string  `json:"title" validate:"required,min=5,max=200"`
	Description             string  `json:"description" validate:"required,min=20,max=2000"`
	Category                string  `json:"category" validate:"required,oneof=translation visa_help navigation shopping admin_help other"`
	Location                string  `json:"location"`
	RewardAmount            float64 `json:"reward_amount" validate:"required,min=50,max=5000"`
	PreferredLanguage       string  `json:"preferred_language"`
	PreferredCompletionDate string  `json:"preferred_completion_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r taskRequest) toInput() (usecase.TaskInput, error) {
	input := usecase.TaskInput{
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		Location:          r.Location,
		RewardAmount:      r.RewardAmount,
		PreferredLanguage: r.PreferredLanguage,
	}

	if r.PreferredCompletionDate != "" {
		date, err := time.Parse("2006-01-02", r.PreferredCompletionDate)
		if err != nil {
			return input, errors.BadRequest("Invalid preferred completion date", err)
		}
		input.PreferredCompletionDate = &date
	}

	return input, nil
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.Create(c.Request().Context(), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, task)
}

func (h *TaskHandler) Get(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	viewerID, _ := c.Get("uid").(string)

	task, err := h.taskUseCase.Get(c.Request().Context(), taskID, viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) List(c echo.Context) error {
	filter := repository.TaskFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}

	if minReward := c.QueryParam("min_reward"); minReward != "" {
		value, err := strconv.ParseFloat(minReward, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid min_reward value", err))
		}
		filter.MinReward = value
	}
	if maxReward := c.QueryParam("max_reward"); maxReward != "" {
		value, err := strconv.ParseFloat(maxReward, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid max_reward value", err))
		}
		filter.MaxReward = value
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskUseCase.List(c.Request().Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, params.Page, params.PageSize)
}

func (h *TaskHandler) ListMine(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskUseCase.ListMine(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, params.Page, params.PageSize)
}

func (h *TaskHandler) Update(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input, err := req.toInput()
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.Update(c.Request().Context(), taskID, userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) Publish(c echo.Context) error {
	return h.transition(c, h.taskUseCase.Publish)
}

func (h *TaskHandler) Accept(c echo.Context) error {
	return h.transition(c, h.taskUseCase.Accept)
}

func (h *TaskHandler) Complete(c echo.Context) error {
	return h.transition(c, h.taskUseCase.Complete)
}

func (h *TaskHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.taskUseCase.Cancel)
}

func (h *TaskHandler) Dispute(c echo.Context) error {
	return h.transition(c, h.taskUseCase.Dispute)
}

func (h *TaskHandler) Recommendations(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		value, err := strconv.Atoi(limitStr)
		if err != nil || value < 1 || value > 50 {
			return response.Error(c, errors.BadRequest("Invalid limit value", nil))
		}
		limit = value
	}

	tasks, err := h.taskUseCase.Recommendations(c.Request().Context(), userID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tasks)
}

func (h *TaskHandler) transition(c echo.Context, op func(ctx context.Context, id, userID string) (*entity.Task, error)) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	task, err := op(c.Request().Context(), taskID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}
