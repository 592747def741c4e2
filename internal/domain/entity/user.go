package entity

import (
	"time"
)

const (
	UserRoleRaiser = "raiser"
	UserRoleSolver = "solver"
	UserRoleBoth   = "both"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	FullName string `json:"full_name" firestore:"fullName"`
	Role     string `json:"role" firestore:"role"` // "raiser", "solver", "both"
	Status   string `json:"status" firestore:"status"` // "active", "suspended", "banned"

	Bio               string   `json:"bio,omitempty" firestore:"bio,omitempty"`
	Location          string   `json:"location,omitempty" firestore:"location,omitempty"`
	PreferredLanguage string   `json:"preferred_language,omitempty" firestore:"preferredLanguage,omitempty"`
	LanguagesSpoken   []string `json:"languages_spoken,omitempty" firestore:"languagesSpoken,omitempty"`

	VerificationStatus string `json:"verification_status" firestore:"verificationStatus"` // "unverified", "pending", "verified", "rejected"

	LastLoginAt time.Time `json:"last_login_at,omitempty" firestore:"lastLoginAt,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
