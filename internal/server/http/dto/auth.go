package dto

import "github.com/polkiloo/megano/internal/domain/model"

// SignUpRequest describes the registration payload.
type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest describes the login payload.
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileRequest updates the user's contact data.
type ProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ProfileResponse returns the user's contact data.
type ProfileResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PasswordChangeRequest carries the old and new password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// NewProfileResponse converts a stored profile.
func NewProfileResponse(p model.Profile) ProfileResponse {
	return ProfileResponse{FullName: p.FullName, Email: p.Email, Phone: p.Phone}
}
