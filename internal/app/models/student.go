package models

import (
	"strings"
	"time"
)

// Gender of a person record
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// ParseGender accepts M/F in any case
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	}
	return "", false
}

// StudentStatus is the enrolment state of a student
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "active"
	StudentStatusGraduated   StudentStatus = "graduated"
	StudentStatusWithdrawn   StudentStatus = "withdrawn"
	StudentStatusSuspended   StudentStatus = "suspended"
	StudentStatusTransferred StudentStatus = "transferred"
)

// Valid reports whether s is a known status
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusGraduated, StudentStatusWithdrawn,
		StudentStatusSuspended, StudentStatusTransferred:
		return true
	}
	return false
}

// Person holds the fields students and teachers share
type Person struct {
	FirstName       string    `json:"firstName" db:"first_name" example:"Ama"`
	MiddleName      string    `json:"middleName" db:"middle_name"`
	LastName        string    `json:"lastName" db:"last_name" example:"Mensah"`
	Gender          Gender    `json:"gender" db:"gender" example:"F"`
	DateOfBirth     time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Phone           string    `json:"phone" db:"phone" example:"+233241234567"`
	Email           string    `json:"email" db:"email" example:"ama.mensah@example.com"`
	Address         string    `json:"address" db:"address"`
	GhanaCardNumber *string   `json:"ghanaCardNumber,omitempty" db:"ghana_card_number" example:"GHA-123456789-0"`
}

// FullName joins first, middle and last names
func (p *Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	SchoolID  int64  `json:"schoolId" db:"school_id" example:"1"`
	UserID    *int64 `json:"userId,omitempty" db:"user_id"`
	StudentID string `json:"studentId" db:"student_id" example:"STUTEST000125"` // Generated once, never changed
	Person
	YearAdmitted   int           `json:"yearAdmitted" db:"year_admitted" example:"2025"`
	CurrentClassID *int64        `json:"currentClassId,omitempty" db:"current_class_id"`
	Status         StudentStatus `json:"status" db:"status" example:"active"`
	IsActive       bool          `json:"isActive" db:"is_active"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations
	CurrentClass *Class            `json:"currentClass,omitempty"`
	Guardians    []StudentGuardian `json:"guardians,omitempty"`
}

// Age returns the age in whole years on the given day
func Age(dob, on time.Time) int {
	years := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		years--
	}
	return years
}
