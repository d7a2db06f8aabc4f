package dto

import "github.com/edutrack/schoolms/internal/app/models"

// GenerateVouchersRequest creates a batch of vouchers
type GenerateVouchersRequest struct {
	Quantity  int                `json:"quantity" binding:"required,min=1" example:"50"`
	Kind      models.VoucherKind `json:"kind" binding:"required,oneof=student teacher" example:"student"`
	ClassID   *int64             `json:"classId" binding:"omitempty,gt=0"`
	CanSignin *bool              `json:"canSignin"`
}

// VoucherFilter narrows the voucher list and export
type VoucherFilter struct {
	ListParams
	Kind    models.VoucherKind `form:"kind"`
	IsUsed  *bool              `form:"isUsed"`
	ClassID int64              `form:"classId"`
}

// GenerateVouchersResponse lists the vouchers of a new batch, PINs included
type GenerateVouchersResponse struct {
	Count    int               `json:"count"`
	Vouchers []*models.Voucher `json:"vouchers"`
}

// StudentRegistrationRequest is a public self-registration with a student voucher
type StudentRegistrationRequest struct {
	SerialNumber string `json:"serialNumber" binding:"required,max=20" example:"SABC-12345678"`
	PIN          string `json:"pin" binding:"required,len=12,numeric" example:"000000000000"`
	PersonRequest
	YearAdmitted int             `json:"yearAdmitted" binding:"omitempty,min=2000"`
	Guardians    []GuardianInput `json:"guardians" binding:"omitempty,max=5,dive"`
}

// TeacherRegistrationRequest is a public self-registration with a teacher voucher
type TeacherRegistrationRequest struct {
	SerialNumber string `json:"serialNumber" binding:"required,max=20" example:"TABC-12345678"`
	PIN          string `json:"pin" binding:"required,len=12,numeric" example:"000000000000"`
	PersonRequest
	EmploymentDate string  `json:"employmentDate" binding:"omitempty,datetime=2006-01-02"`
	SubjectIDs     []int64 `json:"subjectIds" binding:"omitempty,max=20,dive,gt=0"`
	Qualification  string  `json:"qualification" binding:"omitempty,max=200"`
}

// RegistrationResponse is the result of a successful voucher registration
type RegistrationResponse struct {
	Student      *models.Student      `json:"student,omitempty"`
	Teacher      *models.Teacher      `json:"teacher,omitempty"`
	Credentials  *CredentialsResponse `json:"credentials,omitempty"`
	LoginEnabled bool                 `json:"loginEnabled"`
}
