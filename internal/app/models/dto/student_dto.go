package dto

import (
	"github.com/edutrack/schoolms/internal/app/models"
)

// PersonRequest holds the personal fields shared by students and teachers
type PersonRequest struct {
	FirstName       string `json:"firstName" binding:"required,min=2,max=100" example:"Ama"`
	MiddleName      string `json:"middleName" binding:"omitempty,max=100"`
	LastName        string `json:"lastName" binding:"required,min=2,max=100" example:"Mensah"`
	Gender          string `json:"gender" binding:"required,gender" example:"F"`
	DateOfBirth     string `json:"dateOfBirth" binding:"required,pastdate" example:"2012-03-14"`
	Phone           string `json:"phone" binding:"omitempty,phone" example:"+233241234567"`
	Email           string `json:"email" binding:"omitempty,email" example:"ama.mensah@example.com"`
	Address         string `json:"address" binding:"omitempty,max=500"`
	GhanaCardNumber string `json:"ghanaCardNumber" binding:"omitempty,ghanacard" example:"GHA-123456789-0"`
}

// GuardianInput is a guardian submitted together with a student. An existing guardian of
// the school with the same email, or failing that the same phone, is reused.
type GuardianInput struct {
	Title            models.GuardianTitle `json:"title" binding:"required,guardiantitle" example:"Mrs."`
	Name             string               `json:"name" binding:"required,min=2,max=200" example:"Akosua Mensah"`
	Phone            string               `json:"phone" binding:"required,phone" example:"+233201234567"`
	Email            string               `json:"email" binding:"omitempty,email"`
	Address          string               `json:"address" binding:"omitempty,max=500"`
	Relationship     models.Relationship  `json:"relationship" binding:"omitempty,relationship" example:"mother"`
	IsPrimary        bool                 `json:"isPrimary"`
	CanPickup        *bool                `json:"canPickup"`
	EmergencyContact bool                 `json:"emergencyContact"`
}

// CreateStudentRequest is used by administrators to enrol a student directly
type CreateStudentRequest struct {
	PersonRequest
	YearAdmitted  int             `json:"yearAdmitted" binding:"omitempty,min=2000" example:"2025"`
	ClassID       *int64          `json:"classId" binding:"omitempty,gt=0"`
	CreateAccount bool            `json:"createAccount"`
	Guardians     []GuardianInput `json:"guardians" binding:"omitempty,dive"`
}

// UpdateStudentRequest changes personal fields. The student ID and school never change.
type UpdateStudentRequest struct {
	FirstName       *string `json:"firstName" binding:"omitempty,min=2,max=100"`
	MiddleName      *string `json:"middleName" binding:"omitempty,max=100"`
	LastName        *string `json:"lastName" binding:"omitempty,min=2,max=100"`
	Gender          *string `json:"gender" binding:"omitempty,gender"`
	DateOfBirth     *string `json:"dateOfBirth" binding:"omitempty,pastdate"`
	Phone           *string `json:"phone" binding:"omitempty,phone"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Address         *string `json:"address" binding:"omitempty,max=500"`
	GhanaCardNumber *string `json:"ghanaCardNumber" binding:"omitempty,ghanacard"`
	YearAdmitted    *int    `json:"yearAdmitted" binding:"omitempty,min=2000"`
	ClassID         *int64  `json:"classId" binding:"omitempty,gt=0"`
}

// StudentStatusRequest changes the enrolment status of a student
type StudentStatusRequest struct {
	Status models.StudentStatus `json:"status" binding:"required,oneof=active graduated withdrawn suspended transferred" example:"withdrawn"`
}

// StudentFilter narrows the student list and the CSV export
type StudentFilter struct {
	ListParams
	Status       models.StudentStatus `form:"status"`
	Gender       models.Gender        `form:"gender"`
	ClassID      int64                `form:"classId"`
	ProgrammeID  int64                `form:"programmeId"`
	YearAdmitted int                  `form:"yearAdmitted"`
}

// StudentCreatedResponse is returned when a student is created by an administrator
type StudentCreatedResponse struct {
	Student     *models.Student      `json:"student"`
	Credentials *CredentialsResponse `json:"credentials,omitempty"`
}

// BulkMoveRequest moves students to another class (promotion, demotion, reshuffle)
type BulkMoveRequest struct {
	StudentIDs    []int64 `json:"studentIds" binding:"required,min=1,max=500,dive,gt=0"`
	TargetClassID int64   `json:"targetClassId" binding:"required,gt=0"`
}

// BulkMoveResult reports the outcome per student
type BulkMoveResult struct {
	Moved  []int64     `json:"moved"`
	Failed []ItemError `json:"failed"`
}

// ItemError is a per-item failure in a batch operation
type ItemError struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ImportRowError is a failure for one CSV data row (1-based, header excluded)
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises a CSV import
type ImportResult struct {
	SuccessCount int              `json:"successCount"`
	ErrorCount   int              `json:"errorCount"`
	CreatedIDs   []string         `json:"createdIds"`
	Errors       []ImportRowError `json:"errors"`
}
