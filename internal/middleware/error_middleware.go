package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
)

// errorRule maps a sentinel onto a status, code and public message
type errorRule struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorRules is checked in order; the first rule whose target matches wins.
var errorRules = []errorRule{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrVoucherInvalid, http.StatusUnauthorized, dto.ErrorCodeVoucherInvalid, "Invalid voucher serial number or PIN"},
	{apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},

	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrSchoolRequired, http.StatusBadRequest, dto.ErrorCodeSchoolRequired, "No school selected for this request"},

	{apperrors.ErrVoucherAlreadyUsed, http.StatusBadRequest, dto.ErrorCodeVoucherAlreadyUsed, "Voucher has already been used"},
	{apperrors.ErrMissingContactInfo, http.StatusBadRequest, dto.ErrorCodeMissingContactInfo, "Email is required when the voucher grants sign-in access"},
	{apperrors.ErrMultiplePrimaryGuardians, http.StatusBadRequest, dto.ErrorCodeMultiplePrimary, "Only one guardian can be marked as primary"},
	{apperrors.ErrClassFull, http.StatusBadRequest, dto.ErrorCodeClassFull, "Class has reached its maximum capacity"},
	{apperrors.ErrVoucherKindMismatch, http.StatusBadRequest, dto.ErrorCodeVoucherKindMismatch, "Voucher cannot be used for this registration"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},

	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrSchoolNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "School not found"},
	{apperrors.ErrProgrammeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Programme not found"},
	{apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subject not found"},
	{apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Class not found"},
	{apperrors.ErrAcademicYearNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Academic year not found"},
	{apperrors.ErrTermNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Term not found"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrTeacherNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Teacher not found"},
	{apperrors.ErrGuardianNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Guardian not found"},
	{apperrors.ErrGuardianLinkNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Guardian is not linked to this student"},
	{apperrors.ErrVoucherNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Voucher not found"},

	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrUsernameAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists"},
	{apperrors.ErrIdentifierExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Generated identifier already exists"},
	{apperrors.ErrSchoolAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "School already exists"},
	{apperrors.ErrProgrammeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Programme already exists"},
	{apperrors.ErrSubjectAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Subject already exists"},
	{apperrors.ErrSubjectInUse, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Subject is assigned to teachers, deactivate it instead"},
	{apperrors.ErrClassAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Class already exists"},
	{apperrors.ErrAcademicYearExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Academic year already exists"},
	{apperrors.ErrTermAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Term already exists"},
	{apperrors.ErrGuardianAlreadyLinked, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Guardian is already linked to this student"},
	{apperrors.ErrGhanaCardAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Ghana card number already registered"},
	{apperrors.ErrPersonEmailAlreadyExist, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered"},

	{apperrors.ErrSchoolCodeMissing, http.StatusInternalServerError, dto.ErrorCodeSchoolCodeMissing, "School is not fully configured"},
}

// ErrorStatus returns the HTTP status and error detail HandleAPIError would send for err
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(verr.Fields)
		if len(verr.Fields) == 1 {
			detail = detail.WithField(verr.Fields[0].Field)
		}
		return http.StatusBadRequest, detail
	}

	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		message := rule.message
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" && rule.status < http.StatusInternalServerError {
			message = custom.Message
		}
		detail := dto.NewErrorDetail(rule.code, message)
		if custom != nil && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		return rule.status, detail
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError writes the error response for err and aborts the chain.
// Server errors are logged with the request id; their text never reaches the client.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("requestID", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Str("path", c.FullPath()).Msg("Request rejected")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
