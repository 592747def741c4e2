package entity

import (
	"time"
)

// Task lifecycle statuses. A task moves draft -> active -> in_progress ->
// completed; cancelled is reachable from draft/active/in_progress and
// disputed from in_progress/completed.
const (
	TaskStatusDraft      = "draft"
	TaskStatusActive     = "active"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
	TaskStatusDisputed   = "disputed"
)

var TaskCategories = []string{"translation", "visa_help", "navigation", "shopping", "admin_help", "other"}

type Task struct {
	ID       string `json:"id" firestore:"id"`
	RaiserID string `json:"raiser_id" firestore:"raiserId"`
	SolverID string `json:"solver_id,omitempty" firestore:"solverId,omitempty"` // write-once, set on acceptance

	Title        string  `json:"title" firestore:"title"`
	Description  string  `json:"description" firestore:"description"`
	Category     string  `json:"category" firestore:"category"`
	Location     string  `json:"location" firestore:"location"`
	RewardAmount float64 `json:"reward_amount" firestore:"rewardAmount"`

	PreferredLanguage       string     `json:"preferred_language,omitempty" firestore:"preferredLanguage,omitempty"`
	PreferredCompletionDate *time.Time `json:"preferred_completion_date,omitempty" firestore:"preferredCompletionDate,omitempty"`

	Status string `json:"status" firestore:"status"`

	CompletionConfirmedRaiser bool `json:"completion_confirmed_raiser" firestore:"completionConfirmedRaiser"`
	CompletionConfirmedSolver bool `json:"completion_confirmed_solver" firestore:"completionConfirmedSolver"`

	PostedAt    *time.Time `json:"posted_at,omitempty" firestore:"postedAt,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" firestore:"acceptedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	DisputedAt  *time.Time `json:"disputed_at,omitempty" firestore:"disputedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsParty reports whether the user is the task's raiser or its solver.
func (t *Task) IsParty(userID string) bool {
	return t.RaiserID == userID || (t.SolverID != "" && t.SolverID == userID)
}

// Counterparty returns the other side of the task for a participant,
// or "" if the user is not a participant or no solver is assigned yet.
func (t *Task) Counterparty(userID string) string {
	switch userID {
	case t.RaiserID:
		return t.SolverID
	case t.SolverID:
		return t.RaiserID
	}
	return ""
}
