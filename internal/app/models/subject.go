package models

import (
	"strings"
	"time"
	"unicode"
)

// SubjectType groups subjects the way timetables and report cards do
type SubjectType string

const (
	SubjectCore            SubjectType = "core"
	SubjectElective        SubjectType = "elective"
	SubjectExtracurricular SubjectType = "extracurricular"
)

// SubjectTypes lists every subject type in display order
var SubjectTypes = []SubjectType{SubjectCore, SubjectElective, SubjectExtracurricular}

// Valid reports whether t is a known subject type
func (t SubjectType) Valid() bool {
	switch t {
	case SubjectCore, SubjectElective, SubjectExtracurricular:
		return true
	}
	return false
}

// Subject is an entry of a school's subject catalogue
type Subject struct {
	ID          int64       `json:"id" db:"id" example:"1"`
	SchoolID    int64       `json:"schoolId" db:"school_id" example:"1"`
	Name        string      `json:"name" db:"name" example:"English Language"`
	Code        string      `json:"code" db:"code" example:"ENG"`
	Type        SubjectType `json:"subjectType" db:"subject_type" example:"core"`
	Description string      `json:"description" db:"description"`
	IsActive    bool        `json:"isActive" db:"is_active"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// SubjectCodeFromName takes the first three letters or digits of the name,
// upper-cased. "English Language" gives "ENG".
func SubjectCodeFromName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if b.Len() == 3 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
