package handler

import (
	"webond/internal/usecase"
)

var (
	authHandler    *AuthHandler
	userHandler    *UserHandler
	taskHandler    *TaskHandler
	paymentHandler *PaymentHandler
	ratingHandler  *RatingHandler
	chatHandler    *ChatHandler
	assistHandler  *AssistHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	taskUseCase *usecase.TaskUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	ratingUseCase *usecase.RatingUseCase,
	chatUseCase *usecase.ChatUseCase,
	assistUseCase *usecase.AssistUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase, ratingUseCase)
	taskHandler = NewTaskHandler(taskUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	assistHandler = NewAssistHandler(assistUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetTaskHandler() *TaskHandler {
	return taskHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetAssistHandler() *AssistHandler {
	return assistHandler
}
