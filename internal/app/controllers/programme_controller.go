package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// ProgrammeController handles the programmes of a school
type ProgrammeController struct {
	programmeService *services.ProgrammeService
}

// NewProgrammeController creates a new ProgrammeController
func NewProgrammeController(programmeService *services.ProgrammeService) *ProgrammeController {
	return &ProgrammeController{programmeService: programmeService}
}

// CreateProgramme handles programme creation
// @Summary Create a programme
// @Description A blank code is derived from the name and made unique within the school
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.ProgrammeRequest true "Programme"
// @Success 201 {object} dto.APIResponse{data=models.Programme} "Programme created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Programme already exists"
// @Router /programmes [post]
func (c *ProgrammeController) CreateProgramme(ctx *gin.Context) {
	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	programme, err := c.programmeService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, programme, "Programme created")
}

// ListProgrammes returns a page of programmes
// @Summary List programmes
// @Tags programmes
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in name and code"
// @Param isActive query bool false "Filter by active flag"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Programme}} "Programmes"
// @Router /programmes [get]
func (c *ProgrammeController) ListProgrammes(ctx *gin.Context) {
	var params dto.ListParams
	if !bindList(ctx, &params, &params) {
		return
	}

	programmes, total, err := c.programmeService.List(ctx.Request.Context(), middleware.SchoolID(ctx), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, programmes, total, params)
}

// GetProgramme returns one programme
// @Summary Get a programme
// @Tags programmes
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Programme ID"
// @Success 200 {object} dto.APIResponse{data=models.Programme} "Programme"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id} [get]
func (c *ProgrammeController) GetProgramme(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	programme, err := c.programmeService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, programme, "")
}

// UpdateProgramme renames a programme
// @Summary Update a programme
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Programme ID"
// @Param request body dto.ProgrammeRequest true "Programme"
// @Success 200 {object} dto.APIResponse{data=models.Programme} "Programme updated"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Failure 409 {object} dto.ErrorResponse "Programme already exists"
// @Router /programmes/{id} [put]
func (c *ProgrammeController) UpdateProgramme(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ProgrammeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	programme, err := c.programmeService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, programme, "Programme updated")
}

// SetProgrammeActive toggles a programme
// @Summary Activate or deactivate a programme
// @Tags programmes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Programme ID"
// @Param request body dto.ToggleActiveRequest true "New state"
// @Success 200 {object} dto.APIResponse "Programme updated"
// @Failure 404 {object} dto.ErrorResponse "Programme not found"
// @Router /programmes/{id}/status [patch]
func (c *ProgrammeController) SetProgrammeActive(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.programmeService.SetActive(ctx.Request.Context(), middleware.SchoolID(ctx), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "isActive": *req.IsActive}, "Programme updated")
}
