package handler

import (
	"github.com/labstack/echo/v4"

	"webond/internal/usecase"
	"webond/pkg/response"
)

type AssistHandler struct {
	assistUseCase *usecase.AssistUseCase
}

func NewAssistHandler(assistUseCase *usecase.AssistUseCase) *AssistHandler {
	return &AssistHandler{
		assistUseCase: assistUseCase,
	}
}

type matchRequest struct {
	TaskDescription string `json:"task_description" validate:"required"`
	Location        string `json:"location"`
}

func (h *AssistHandler) MatchSolvers(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.assistUseCase.MatchSolvers(req.TaskDescription, req.Location)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

type analyzeRequest struct {
	TaskDescription string `json:"task_description" validate:"required"`
}

func (h *AssistHandler) AnalyzeFraud(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	analysis, err := h.assistUseCase.AnalyzeFraud(req.TaskDescription)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, analysis)
}

type draftRequest struct {
	Draft string `json:"draft" validate:"required"`
}

func (h *AssistHandler) DraftTask(c echo.Context) error {
	var req draftRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	draft, err := h.assistUseCase.DraftTask(req.Draft)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, draft)
}

type disputeRequest struct {
	Description string `json:"description" validate:"required"`
}

func (h *AssistHandler) ResolveDispute(c echo.Context) error {
	var req disputeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	resolution, err := h.assistUseCase.ResolveDispute(req.Description)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resolution)
}
