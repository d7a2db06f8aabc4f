package models

import (
	"time"
)

// VoucherKind says what a voucher registers
type VoucherKind string

const (
	VoucherKindStudent VoucherKind = "student"
	VoucherKindTeacher VoucherKind = "teacher"
)

// Valid reports whether k is a known kind
func (k VoucherKind) Valid() bool {
	return k == VoucherKindStudent || k == VoucherKindTeacher
}

// SerialPrefix is the leading letter of serial numbers of this kind
func (k VoucherKind) SerialPrefix() string {
	if k == VoucherKindTeacher {
		return "T"
	}
	return "S"
}

// Voucher is a single-use serial/PIN pair that authorises one self-registration
type Voucher struct {
	ID              int64       `json:"id" db:"id" example:"1"`
	SchoolID        int64       `json:"schoolId" db:"school_id" example:"1"`
	Kind            VoucherKind `json:"kind" db:"kind" example:"student"`
	SerialNumber    string      `json:"serialNumber" db:"serial_number" example:"STES-1A2B3C4D"`
	PIN             string      `json:"pin,omitempty" db:"pin" example:"123456789012"`
	ClassID         *int64      `json:"classId,omitempty" db:"class_id"`
	CanSignin       bool        `json:"canSignin" db:"can_signin"`
	IsUsed          bool        `json:"isUsed" db:"is_used"`
	UsedAt          *time.Time  `json:"usedAt,omitempty" db:"used_at"`
	UsedByStudentID *int64      `json:"usedByStudentId,omitempty" db:"used_by_student_id"`
	UsedByTeacherID *int64      `json:"usedByTeacherId,omitempty" db:"used_by_teacher_id"`
	CreatedByUserID *int64      `json:"createdByUserId,omitempty" db:"created_by"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`

	Class *Class `json:"class,omitempty"`
}

// VoucherStats summarises a school's vouchers
type VoucherStats struct {
	Total         int64 `json:"total"`
	Used          int64 `json:"used"`
	Unused        int64 `json:"unused"`
	StudentTotal  int64 `json:"studentTotal"`
	TeacherTotal  int64 `json:"teacherTotal"`
	SigninEnabled int64 `json:"signinEnabled"`
}
