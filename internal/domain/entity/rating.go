package entity

import (
	"time"
)

// Rating is a one-sided post-completion review. At most one rating
// exists per (task, rater) pair; the ratee is the rater's counterparty
// on that task.
type Rating struct {
	ID      string `json:"id" firestore:"id"`
	TaskID  string `json:"task_id" firestore:"taskId"`
	RaterID string `json:"rater_id" firestore:"raterId"`
	RateeID string `json:"ratee_id" firestore:"rateeId"`

	Score  int    `json:"score" firestore:"score"` // 1-5
	Review string `json:"review,omitempty" firestore:"review,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
