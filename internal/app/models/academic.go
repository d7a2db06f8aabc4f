package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Stage is an educational stage in the Ghanaian system
type Stage string

const (
	StageKindergarten Stage = "KG"
	StagePrimary      Stage = "PR"
	StageJHS          Stage = "JHS"
	StageSHS          Stage = "SHS"
)

// DefaultMaxStudents is the class capacity used when none is given
const DefaultMaxStudents = 50

var stageLimits = map[Stage]int{
	StageKindergarten: 2,
	StagePrimary:      6,
	StageJHS:          3,
	StageSHS:          3,
}

var stagePrefixes = map[Stage]string{
	StageKindergarten: "KG",
	StagePrimary:      "P",
	StageJHS:          "JHS",
	StageSHS:          "SHS",
}

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	_, ok := stageLimits[s]
	return ok
}

// MaxLevel is the highest level allowed within the stage
func (s Stage) MaxLevel() int {
	return stageLimits[s]
}

// RequiresProgramme reports whether classes of this stage must name a programme
func (s Stage) RequiresProgramme() bool {
	return s == StageSHS
}

// Programme is an SHS course of study (Science, Arts, ...)
type Programme struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	SchoolID    int64     `json:"schoolId" db:"school_id" example:"1"`
	Name        string    `json:"name" db:"name" example:"General Science"`
	Code        string    `json:"code" db:"code" example:"GS"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

var programmeSkipWords = map[string]bool{
	"and": true, "or": true, "the": true, "of": true, "in": true, "for": true, "to": true,
}

// ProgrammeCodeFromName derives the base code for a programme name. Collisions are
// resolved by the caller with a numeric suffix.
func ProgrammeCodeFromName(name string) string {
	words := strings.Fields(name)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if !programmeSkipWords[strings.ToLower(w)] {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		filtered = words
	}

	var code string
	switch len(filtered) {
	case 0:
		return ""
	case 1:
		r := []rune(filtered[0])
		if len(r) > 2 {
			r = r[:2]
		}
		code = string(r)
	default:
		if len(filtered) > 3 {
			filtered = filtered[:3]
		}
		var b strings.Builder
		for _, w := range filtered {
			b.WriteRune([]rune(w)[0])
		}
		code = b.String()
	}
	return strings.ToUpper(stripNonAlphanumeric(code))
}

func stripNonAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}

// WithNumericSuffix returns base when taken reports false, otherwise base2, base3, ...
func WithNumericSuffix(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for n := 1; ; n++ {
		if n > 1 {
			candidate = base + strconv.Itoa(n-1)
		}
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
}

// Class is a class group within a school
type Class struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	SchoolID    int64     `json:"schoolId" db:"school_id" example:"1"`
	Stage       Stage     `json:"stage" db:"stage" example:"PR"`
	Level       int       `json:"level" db:"level" example:"1"`
	Stream      string    `json:"stream" db:"stream" example:"A"`
	ProgrammeID *int64    `json:"programmeId,omitempty" db:"programme_id"`
	MaxStudents int       `json:"maxStudents" db:"max_students" example:"50"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations, populated by joins
	Programme  *Programme `json:"programme,omitempty"`
	Enrollment int        `json:"enrollment"`
}

// DisplayName renders the class as KG1A, P3B, JHS2C or "SHS3 SCI Gold"
func (c *Class) DisplayName() string {
	prefix := stagePrefixes[c.Stage]
	if c.Stage == StageSHS && c.Programme != nil {
		return fmt.Sprintf("%s%d %s %s", prefix, c.Level, c.Programme.Code, c.Stream)
	}
	return fmt.Sprintf("%s%d%s", prefix, c.Level, c.Stream)
}

// IsFull reports whether enrollment has reached capacity
func (c *Class) IsFull() bool {
	return c.Enrollment >= c.MaxStudents
}

// AvailableSeats returns the remaining capacity, never negative
func (c *Class) AvailableSeats() int {
	if seats := c.MaxStudents - c.Enrollment; seats > 0 {
		return seats
	}
	return 0
}

// CapacityPercentage is enrollment as a percentage of capacity
func (c *Class) CapacityPercentage() float64 {
	if c.MaxStudents <= 0 {
		return 0
	}
	return float64(c.Enrollment) / float64(c.MaxStudents) * 100
}

// AcademicYear is a named school year such as 2024-2025
type AcademicYear struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	SchoolID  int64     `json:"schoolId" db:"school_id" example:"1"`
	Name      string    `json:"name" db:"name" example:"2024-2025"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"is_current"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ParseAcademicYearName validates the YYYY-YYYY form with consecutive years
func ParseAcademicYearName(name string) (start, end int, err error) {
	parts := strings.Split(name, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return 0, 0, fmt.Errorf("academic year must be in the format YYYY-YYYY")
	}
	if start, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("academic year must be in the format YYYY-YYYY")
	}
	if end, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("academic year must be in the format YYYY-YYYY")
	}
	if end != start+1 {
		return 0, 0, fmt.Errorf("academic year must span consecutive years")
	}
	return start, end, nil
}

// Term is a division of an academic year
type Term struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id" example:"1"`
	SchoolID       int64     `json:"schoolId" db:"school_id" example:"1"`
	TermNumber     int       `json:"termNumber" db:"term_number" example:"1"`
	StartDate      time.Time `json:"startDate" db:"start_date"`
	EndDate        time.Time `json:"endDate" db:"end_date"`
	IsCurrent      bool      `json:"isCurrent" db:"is_current"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}
