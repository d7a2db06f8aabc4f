package dto

import "github.com/edutrack/schoolms/internal/app/models"

// CreateSchoolRequest registers a new school together with its first administrator
type CreateSchoolRequest struct {
	Name                   string            `json:"name" binding:"required,min=3,max=200" example:"Test Academy"`
	Code                   string            `json:"code" binding:"omitempty,alphanum,max=10" example:"TEST"`
	SchoolType             models.SchoolType `json:"schoolType" binding:"required,oneof=basic shs technical combined" example:"basic"`
	Ownership              models.Ownership  `json:"ownership" binding:"required,oneof=public private mission international" example:"private"`
	Region                 string            `json:"region" binding:"omitempty,max=100"`
	District               string            `json:"district" binding:"omitempty,max=100"`
	Town                   string            `json:"town" binding:"omitempty,max=100"`
	DigitalAddress         string            `json:"digitalAddress" binding:"omitempty,max=20"`
	PhysicalAddress        string            `json:"physicalAddress"`
	HeadmasterName         string            `json:"headmasterName" binding:"omitempty,max=200"`
	Email                  string            `json:"email" binding:"omitempty,email"`
	PhonePrimary           string            `json:"phonePrimary" binding:"omitempty,phone"`
	PhoneSecondary         string            `json:"phoneSecondary" binding:"omitempty,phone"`
	Website                string            `json:"website" binding:"omitempty,url"`
	Motto                  string            `json:"motto" binding:"omitempty,max=200"`
	HasBoarding            bool              `json:"hasBoarding"`
	AcademicYearStartMonth int               `json:"academicYearStartMonth" binding:"omitempty,min=1,max=12" example:"9"`
	TermsPerYear           int               `json:"termsPerYear" binding:"omitempty,oneof=2 3" example:"3"`
	Admin                  AccountRequest    `json:"admin" binding:"required"`
}

// UpdateSchoolRequest updates the mutable parts of a school. The code never changes.
type UpdateSchoolRequest struct {
	Name                   *string            `json:"name" binding:"omitempty,min=3,max=200"`
	SchoolType             *models.SchoolType `json:"schoolType" binding:"omitempty,oneof=basic shs technical combined"`
	Ownership              *models.Ownership  `json:"ownership" binding:"omitempty,oneof=public private mission international"`
	Region                 *string            `json:"region" binding:"omitempty,max=100"`
	District               *string            `json:"district" binding:"omitempty,max=100"`
	Town                   *string            `json:"town" binding:"omitempty,max=100"`
	DigitalAddress         *string            `json:"digitalAddress" binding:"omitempty,max=20"`
	PhysicalAddress        *string            `json:"physicalAddress"`
	HeadmasterName         *string            `json:"headmasterName" binding:"omitempty,max=200"`
	Email                  *string            `json:"email" binding:"omitempty,email"`
	PhonePrimary           *string            `json:"phonePrimary" binding:"omitempty,phone"`
	PhoneSecondary         *string            `json:"phoneSecondary" binding:"omitempty,phone"`
	Website                *string            `json:"website" binding:"omitempty,url"`
	Motto                  *string            `json:"motto" binding:"omitempty,max=200"`
	PrimaryColor           *string            `json:"primaryColor" binding:"omitempty,hexcolor"`
	SecondaryColor         *string            `json:"secondaryColor" binding:"omitempty,hexcolor"`
	AccentColor            *string            `json:"accentColor" binding:"omitempty,hexcolor"`
	HasBoarding            *bool              `json:"hasBoarding"`
	AcademicYearStartMonth *int               `json:"academicYearStartMonth" binding:"omitempty,min=1,max=12"`
	TermsPerYear           *int               `json:"termsPerYear" binding:"omitempty,oneof=2 3"`
}

// SchoolResponse is a school plus its first administrator, returned on creation
type SchoolResponse struct {
	School *models.School `json:"school"`
	Admin  *UserResponse  `json:"admin,omitempty"`
}

// LogoUploadResponse is returned after a logo upload
type LogoUploadResponse struct {
	LogoURL string `json:"logoUrl" example:"http://localhost:8080/uploads/logos/3f1c.png"`
}
