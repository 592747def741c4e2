package handler

import (
	"github.com/labstack/echo/v4"

	"webond/internal/usecase"
	"webond/pkg/errors"
	"webond/pkg/response"
	"webond/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type escrowResponse struct {
	Transaction  interface{} `json:"transaction"`
	ClientSecret string      `json:"client_secret,omitempty"`
}

func (h *PaymentHandler) CreateEscrow(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	result, err := h.paymentUseCase.CreateEscrow(c.Request().Context(), taskID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, escrowResponse{
		Transaction:  result.Transaction,
		ClientSecret: result.ClientSecret,
	})
}

func (h *PaymentHandler) ReleaseEscrow(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	transaction, err := h.paymentUseCase.ReleaseEscrow(c.Request().Context(), taskID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

func (h *PaymentHandler) GetTaskEscrow(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	transaction, err := h.paymentUseCase.GetTaskEscrow(c.Request().Context(), taskID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

func (h *PaymentHandler) ListMyTransactions(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	transactions, total, err := h.paymentUseCase.ListMyTransactions(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, transactions, total, params.Page, params.PageSize)
}
