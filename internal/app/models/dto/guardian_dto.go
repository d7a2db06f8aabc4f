package dto

import "github.com/edutrack/schoolms/internal/app/models"

// GuardianRequest creates or updates a guardian
type GuardianRequest struct {
	Title   models.GuardianTitle `json:"title" binding:"required,guardiantitle" example:"Mr."`
	Name    string               `json:"name" binding:"required,min=2,max=200" example:"Kofi Mensah"`
	Phone   string               `json:"phone" binding:"required,phone" example:"+233201234567"`
	Email   string               `json:"email" binding:"omitempty,email"`
	Address string               `json:"address" binding:"omitempty,max=500"`
}

// LinkGuardianRequest links an existing guardian to a student
type LinkGuardianRequest struct {
	GuardianID       int64               `json:"guardianId" binding:"required,gt=0"`
	Relationship     models.Relationship `json:"relationship" binding:"omitempty,relationship" example:"father"`
	IsPrimary        bool                `json:"isPrimary"`
	CanPickup        *bool               `json:"canPickup"`
	EmergencyContact bool                `json:"emergencyContact"`
}

// UpdateGuardianLinkRequest changes the metadata of a link
type UpdateGuardianLinkRequest struct {
	Relationship     *models.Relationship `json:"relationship" binding:"omitempty,relationship"`
	IsPrimary        *bool                `json:"isPrimary"`
	CanPickup        *bool                `json:"canPickup"`
	EmergencyContact *bool                `json:"emergencyContact"`
}

// GuardianFilter narrows the guardian list
type GuardianFilter struct {
	ListParams
}

// GuardianAccountResponse is returned when a portal account is opened for a guardian
type GuardianAccountResponse struct {
	Guardian    *models.Guardian     `json:"guardian"`
	Credentials *CredentialsResponse `json:"credentials"`
}
