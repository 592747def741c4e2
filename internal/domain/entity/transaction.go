package entity

import (
	"time"
)

const (
	TransactionStatusEscrow    = "escrow"
	TransactionStatusCompleted = "completed"
)

// Transaction is the escrow record for a task's reward. One per
// task-payment cycle; it is created in "escrow" and moved to
// "completed" when the raiser releases the payment.
type Transaction struct {
	ID      string  `json:"id" firestore:"id"`
	TaskID  string  `json:"task_id" firestore:"taskId"`
	PayerID string  `json:"payer_id" firestore:"payerId"`
	Amount  float64 `json:"amount" firestore:"amount"`
	Status  string  `json:"status" firestore:"status"`

	PaymentIntentID string `json:"payment_intent_id,omitempty" firestore:"paymentIntentId,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}
