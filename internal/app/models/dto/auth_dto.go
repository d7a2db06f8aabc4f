package dto

import "github.com/edutrack/schoolms/internal/app/models"

// LoginRequest represents login credentials. Identifier is a username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"STUTEST000125"`
	Password   string `json:"password" binding:"required" example:"s3cret!Pw"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email,omitempty"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      models.Role `json:"role" example:"student"`
	SchoolID  *int64      `json:"schoolId,omitempty"`
	IsActive  bool        `json:"isActive"`
}

// NewUserResponse maps a user onto its public representation
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.EmailValue(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role(),
		SchoolID:  u.SchoolID,
		IsActive:  u.IsActive,
	}
}

// ProfileResponse is the tagged profile variant as sent to clients
type ProfileResponse struct {
	Kind string         `json:"kind" example:"student" enums:"student,teacher,guardian,none"`
	Data models.Profile `json:"data,omitempty" swaggertype:"object"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token        TokenResponse   `json:"token"`
	User         UserResponse    `json:"user"`
	RedirectPath string          `json:"redirectPath" example:"/student/dashboard"`
	Profile      ProfileResponse `json:"profile"`
}

// MeResponse is returned by GET /auth/me
type MeResponse struct {
	User         UserResponse    `json:"user"`
	RedirectPath string          `json:"redirectPath"`
	Profile      ProfileResponse `json:"profile"`
}
