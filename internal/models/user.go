// Package models defines data structures for Folio
package models

import "time"

// User represents an authenticated account as returned by the backend.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// AuthTokens is the credential pair issued at login and rotated on refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (t AuthTokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// AuthResponse is the login response payload.
type AuthResponse struct {
	User   *User      `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserStats is the aggregate account view from GET /users/stats.
type UserStats struct {
	UserID            string  `json:"userId"`
	Email             string  `json:"email"`
	TotalPortfolios   int     `json:"totalPortfolios"`
	TotalInvestments  int     `json:"totalInvestments"`
	TotalTransactions int     `json:"totalTransactions"`
	TotalInvested     float64 `json:"totalInvested"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
	TotalGainLoss     float64 `json:"totalGainLoss"`
	MemberSince       string  `json:"memberSince"`
}
