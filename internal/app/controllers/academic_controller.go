package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// AcademicController handles academic years and their terms
type AcademicController struct {
	academicService *services.AcademicService
}

// NewAcademicController creates a new AcademicController
func NewAcademicController(academicService *services.AcademicService) *AcademicController {
	return &AcademicController{academicService: academicService}
}

// CreateYear creates an academic year
// @Summary Create an academic year
// @Description The name must be two consecutive years (2024-2025). Marking it current clears the other current year.
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.AcademicYearRequest true "Academic year"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Academic year already exists"
// @Router /academic-years [post]
func (c *AcademicController) CreateYear(ctx *gin.Context) {
	var req dto.AcademicYearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.academicService.CreateYear(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, year, "Academic year created")
}

// ListYears returns every academic year of the school, newest first
// @Summary List academic years
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear} "Academic years"
// @Router /academic-years [get]
func (c *AcademicController) ListYears(ctx *gin.Context) {
	years, err := c.academicService.ListYears(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, years, "")
}

// GetYear returns one academic year
// @Summary Get an academic year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Academic year"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [get]
func (c *AcademicController) GetYear(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	year, err := c.academicService.GetYear(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, year, "")
}

// CurrentYear returns the current academic year
// @Summary Current academic year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Current academic year"
// @Failure 404 {object} dto.ErrorResponse "No current academic year"
// @Router /academic-years/current [get]
func (c *AcademicController) CurrentYear(ctx *gin.Context) {
	year, err := c.academicService.CurrentYear(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, year, "")
}

// UpdateYear changes an academic year
// @Summary Update an academic year
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Academic year ID"
// @Param request body dto.AcademicYearRequest true "Academic year"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Academic year updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [put]
func (c *AcademicController) UpdateYear(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AcademicYearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.academicService.UpdateYear(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, year, "Academic year updated")
}

// SetCurrentYear marks an academic year current
// @Summary Set the current academic year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Current academic year set"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/current [post]
func (c *AcademicController) SetCurrentYear(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	year, err := c.academicService.SetCurrentYear(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, year, "Current academic year set")
}

// CreateTerm adds a term to an academic year
// @Summary Create a term
// @Description The term number must be within the school's terms per year and the dates inside the year
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Academic year ID"
// @Param request body dto.TermRequest true "Term"
// @Success 201 {object} dto.APIResponse{data=models.Term} "Term created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Term already exists"
// @Router /academic-years/{id}/terms [post]
func (c *AcademicController) CreateTerm(ctx *gin.Context) {
	yearID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.TermRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	term, err := c.academicService.CreateTerm(ctx.Request.Context(), middleware.SchoolID(ctx), yearID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, term, "Term created")
}

// ListTerms returns the terms of an academic year
// @Summary List terms of a year
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Term} "Terms"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/terms [get]
func (c *AcademicController) ListTerms(ctx *gin.Context) {
	yearID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	terms, err := c.academicService.ListTerms(ctx.Request.Context(), middleware.SchoolID(ctx), yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, terms, "")
}

// GetTerm returns one term
// @Summary Get a term
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=models.Term} "Term"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Router /terms/{id} [get]
func (c *AcademicController) GetTerm(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	term, err := c.academicService.GetTerm(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "")
}

// CurrentTerm returns the current term
// @Summary Current term
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Success 200 {object} dto.APIResponse{data=models.Term} "Current term"
// @Failure 404 {object} dto.ErrorResponse "No current term"
// @Router /terms/current [get]
func (c *AcademicController) CurrentTerm(ctx *gin.Context) {
	term, err := c.academicService.CurrentTerm(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "")
}

// UpdateTerm changes a term
// @Summary Update a term
// @Tags academic
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Term ID"
// @Param request body dto.TermRequest true "Term"
// @Success 200 {object} dto.APIResponse{data=models.Term} "Term updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Router /terms/{id} [put]
func (c *AcademicController) UpdateTerm(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.TermRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	term, err := c.academicService.UpdateTerm(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "Term updated")
}

// SetCurrentTerm marks a term current
// @Summary Set the current term
// @Tags academic
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=models.Term} "Current term set"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Router /terms/{id}/current [post]
func (c *AcademicController) SetCurrentTerm(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	term, err := c.academicService.SetCurrentTerm(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, term, "Current term set")
}
