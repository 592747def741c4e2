package handler

import (
	"github.com/labstack/echo/v4"

	"webond/internal/usecase"
	"webond/pkg/errors"
	"webond/pkg/response"
	"webond/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) ListMyChats(c echo.Context) error {
	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListMyChats(c.Request().Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, params.Page, params.PageSize)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChat(c.Request().Context(), chatID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) GetTaskChat(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetTaskChat(c.Request().Context(), taskID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	userID := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), chatID, userID, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, params.Page, params.PageSize)
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	chatID := c.Param("id")
	if chatID == "" {
		return response.Error(c, errors.BadRequest("Chat ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), chatID, userID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.chatUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"unread_count": count})
}
