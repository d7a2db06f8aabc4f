package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// TeacherController handles the teachers of a school
type TeacherController struct {
	teacherService *services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// CreateTeacher adds a teacher
// @Summary Create a teacher
// @Description Generates the TCH identifier and optionally opens a login account
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.CreateTeacherRequest true "Teacher"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Teacher created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email or Ghana card already registered"
// @Router /teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.teacherService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Teacher created")
}

// ListTeachers returns a page of teachers
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in teacher ID, names, email and phone"
// @Param gender query string false "M or F"
// @Param subjectId query int false "Catalogue subject the teacher is assigned"
// @Param isActive query bool false "Filter by active flag"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Teacher}} "Teachers"
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	var filter dto.TeacherFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	teachers, total, err := c.teacherService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, teachers, total, filter.ListParams)
}

// GetTeacher returns one teacher
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Teacher record ID"
// @Success 200 {object} dto.APIResponse{data=models.Teacher} "Teacher"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	teacher, err := c.teacherService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, teacher, "")
}

// UpdateTeacher changes a teacher
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Teacher record ID"
// @Param request body dto.UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Teacher} "Teacher updated"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	teacher, err := c.teacherService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, teacher, "Teacher updated")
}

// SetTeacherActive toggles a teacher together with its account
// @Summary Activate or deactivate a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Teacher record ID"
// @Param request body dto.ToggleActiveRequest true "New state"
// @Success 200 {object} dto.APIResponse "Teacher updated"
// @Router /teachers/{id}/status [patch]
func (c *TeacherController) SetTeacherActive(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.teacherService.SetActive(ctx.Request.Context(), middleware.SchoolID(ctx), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "isActive": *req.IsActive}, "Teacher updated")
}

// DeactivateTeacher disables a teacher and its account
// @Summary Deactivate a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Teacher record ID"
// @Success 200 {object} dto.APIResponse "Teacher deactivated"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [delete]
func (c *TeacherController) DeactivateTeacher(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.teacherService.Deactivate(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "isActive": false}, "Teacher deactivated")
}
