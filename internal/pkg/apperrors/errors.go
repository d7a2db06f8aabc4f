package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrPermissionDenied = errors.New("permission denied")
	ErrSchoolRequired   = errors.New("no school associated with this request")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Identity errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrIdentifierExists      = errors.New("generated identifier already exists")
	ErrSchoolCodeMissing     = errors.New("school has no code configured")
)

// Academic structure errors
var (
	ErrSchoolNotFound          = errors.New("school not found")
	ErrSchoolAlreadyExists     = errors.New("school with this code, slug or EMIS code already exists")
	ErrProgrammeNotFound       = errors.New("programme not found")
	ErrProgrammeAlreadyExists  = errors.New("programme with this name or code already exists")
	ErrSubjectNotFound         = errors.New("subject not found")
	ErrSubjectAlreadyExists    = errors.New("subject with this name or code already exists")
	ErrSubjectInUse            = errors.New("subject is assigned to teachers")
	ErrClassNotFound           = errors.New("class not found")
	ErrClassAlreadyExists      = errors.New("a class with these details already exists in this school")
	ErrClassFull               = errors.New("class has reached its maximum capacity")
	ErrAcademicYearNotFound    = errors.New("academic year not found")
	ErrAcademicYearExists      = errors.New("academic year already exists")
	ErrTermNotFound            = errors.New("term not found")
	ErrTermAlreadyExists       = errors.New("term already exists for this academic year")
	ErrStudentNotFound         = errors.New("student not found")
	ErrTeacherNotFound         = errors.New("teacher not found")
	ErrGuardianNotFound        = errors.New("guardian not found")
	ErrGuardianLinkNotFound    = errors.New("guardian is not linked to this student")
	ErrGuardianAlreadyLinked   = errors.New("guardian is already linked to this student")
	ErrGhanaCardAlreadyExists  = errors.New("ghana card number already registered")
	ErrPersonEmailAlreadyExist = errors.New("email already registered for another record")
)

// Voucher and registration errors
var (
	ErrVoucherNotFound          = errors.New("voucher not found")
	ErrVoucherInvalid           = errors.New("invalid voucher serial number or PIN")
	ErrVoucherAlreadyUsed       = errors.New("voucher has already been used")
	ErrVoucherKindMismatch      = errors.New("voucher cannot be used for this registration")
	ErrMissingContactInfo       = errors.New("email is required when the voucher grants sign-in access")
	ErrMultiplePrimaryGuardians = errors.New("only one guardian can be marked as primary")
)

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors. It unwraps to ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError starts a ValidationError with one field error
func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// Add appends a field error
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field error was collected
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when nothing was collected, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
