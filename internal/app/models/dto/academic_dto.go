package dto

import "github.com/edutrack/schoolms/internal/app/models"

// ProgrammeRequest creates or updates a programme. A blank code is derived from the name.
type ProgrammeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"General Science"`
	Code        string `json:"code" binding:"omitempty,max=10" example:"GS"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// SubjectRequest creates or updates a catalogue subject. A blank code is derived from the name.
type SubjectRequest struct {
	Name        string             `json:"name" binding:"required,min=2,max=100" example:"English Language"`
	Code        string             `json:"code" binding:"omitempty,max=10,alphanum" example:"ENG"`
	Type        models.SubjectType `json:"subjectType" binding:"omitempty,oneof=core elective extracurricular" example:"core"`
	Description string             `json:"description" binding:"omitempty,max=1000"`
}

// SubjectFilter narrows the subject list
type SubjectFilter struct {
	ListParams
	Type models.SubjectType `form:"subjectType" binding:"omitempty,oneof=core elective extracurricular"`
}

// SubjectSummary counts the subjects of a school by type
type SubjectSummary struct {
	Total  int64                        `json:"total" example:"14"`
	ByType map[models.SubjectType]int64 `json:"byType"`
}

// ClassRequest creates or updates a class
type ClassRequest struct {
	Stage       models.Stage `json:"stage" binding:"required,oneof=KG PR JHS SHS" example:"PR"`
	Level       int          `json:"level" binding:"required,min=1,max=6" example:"1"`
	Stream      string       `json:"stream" binding:"required,max=128" example:"A"`
	ProgrammeID *int64       `json:"programmeId" binding:"omitempty,gt=0"`
	MaxStudents int          `json:"maxStudents" binding:"omitempty,min=1,max=500" example:"50"`
}

// ClassFilter narrows the class list
type ClassFilter struct {
	ListParams
	Stage       models.Stage `form:"stage"`
	Level       int          `form:"level"`
	ProgrammeID int64        `form:"programmeId"`
}

// ClassResponse adds the derived display and capacity fields
type ClassResponse struct {
	*models.Class
	DisplayName        string  `json:"displayName" example:"P1A"`
	IsFull             bool    `json:"isFull"`
	AvailableSeats     int     `json:"availableSeats"`
	CapacityPercentage float64 `json:"capacityPercentage"`
}

// NewClassResponse decorates a class with its derived fields
func NewClassResponse(c *models.Class) ClassResponse {
	return ClassResponse{
		Class:              c,
		DisplayName:        c.DisplayName(),
		IsFull:             c.IsFull(),
		AvailableSeats:     c.AvailableSeats(),
		CapacityPercentage: c.CapacityPercentage(),
	}
}

// AcademicYearRequest creates or updates an academic year
type AcademicYearRequest struct {
	Name      string `json:"name" binding:"required,academicyear" example:"2024-2025"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02" example:"2024-09-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02" example:"2025-07-25"`
	IsCurrent bool   `json:"isCurrent"`
}

// TermRequest creates or updates a term of an academic year
type TermRequest struct {
	TermNumber int    `json:"termNumber" binding:"required,min=1,max=3" example:"1"`
	StartDate  string `json:"startDate" binding:"required,datetime=2006-01-02" example:"2024-09-02"`
	EndDate    string `json:"endDate" binding:"required,datetime=2006-01-02" example:"2024-12-13"`
	IsCurrent  bool   `json:"isCurrent"`
}

// ToggleActiveRequest flips the active flag of a record
type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
