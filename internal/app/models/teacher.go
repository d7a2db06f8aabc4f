package models

import (
	"time"
)

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	SchoolID  int64  `json:"schoolId" db:"school_id" example:"1"`
	UserID    *int64 `json:"userId,omitempty" db:"user_id"`
	TeacherID string `json:"teacherId" db:"teacher_id" example:"TCHTEST000125"`
	Person
	EmploymentDate time.Time `json:"employmentDate" db:"employment_date"`
	Qualification  string    `json:"qualification" db:"qualification" example:"B.Ed"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Catalogue subjects the teacher is assigned to, from teacher_subjects
	Subjects []Subject `json:"subjects"`
}
