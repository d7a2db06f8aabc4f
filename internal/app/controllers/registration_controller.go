package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// RegistrationController handles public self-registration with vouchers
type RegistrationController struct {
	registrationService *services.RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService *services.RegistrationService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

// RegisterStudent enrols a student with a student voucher
// @Summary Register a student with a voucher
// @Description Validates the voucher, creates the student (and a login account when the voucher allows sign-in), links guardians and consumes the voucher in one transaction
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.StudentRegistrationRequest true "Voucher and student details"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Validation failed, voucher used, email missing, class full or several primary guardians"
// @Failure 401 {object} dto.ErrorResponse "Invalid serial number or PIN"
// @Failure 409 {object} dto.ErrorResponse "Email or Ghana card already registered"
// @Router /register/student [post]
func (c *RegistrationController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.registrationService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Debug().Err(err).Str("serial", req.SerialNumber).Msg("Student registration rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Registration successful")
}

// RegisterTeacher adds a teacher with a teacher voucher
// @Summary Register a teacher with a voucher
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.TeacherRegistrationRequest true "Voucher and teacher details"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Teacher registered"
// @Failure 400 {object} dto.ErrorResponse "Validation failed, voucher used or email missing"
// @Failure 401 {object} dto.ErrorResponse "Invalid serial number or PIN"
// @Failure 409 {object} dto.ErrorResponse "Email or Ghana card already registered"
// @Router /register/teacher [post]
func (c *RegistrationController) RegisterTeacher(ctx *gin.Context) {
	var req dto.TeacherRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.registrationService.RegisterTeacher(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Debug().Err(err).Str("serial", req.SerialNumber).Msg("Teacher registration rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Registration successful")
}
