package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Username    string     `json:"username" db:"username" example:"STUTEST000125"`
	Email       *string    `json:"email,omitempty" db:"email" example:"ama.mensah@example.com"`
	Password    string     `json:"-" db:"password"`
	FirstName   string     `json:"firstName" db:"first_name" example:"Ama"`
	LastName    string     `json:"lastName" db:"last_name" example:"Mensah"`
	SchoolID    *int64     `json:"schoolId,omitempty" db:"school_id" example:"1"` // NULL only for superusers
	IsSuperuser bool       `json:"isSuperuser" db:"is_superuser"`
	IsAdmin     bool       `json:"isAdmin" db:"is_admin"`
	IsTeacher   bool       `json:"isTeacher" db:"is_teacher"`
	IsStudent   bool       `json:"isStudent" db:"is_student"`
	IsGuardian  bool       `json:"isGuardian" db:"is_guardian"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Flags returns the user's role flags
func (u *User) Flags() RoleFlags {
	return RoleFlags{
		IsSuperuser: u.IsSuperuser,
		IsAdmin:     u.IsAdmin,
		IsTeacher:   u.IsTeacher,
		IsStudent:   u.IsStudent,
		IsGuardian:  u.IsGuardian,
	}
}

// Role classifies the user once from its flags
func (u *User) Role() Role {
	return ClassifyRole(u.Flags())
}

// EmailValue returns the email or "" when unset
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// FullName joins first and last name
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// RefreshToken is a stored, revocable refresh token
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IsRevoked bool      `json:"isRevoked" db:"is_revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
