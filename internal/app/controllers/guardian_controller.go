package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// GuardianController handles guardians and their links to students
type GuardianController struct {
	guardianService *services.GuardianService
}

// NewGuardianController creates a new GuardianController
func NewGuardianController(guardianService *services.GuardianService) *GuardianController {
	return &GuardianController{guardianService: guardianService}
}

// CreateGuardian adds a guardian
// @Summary Create a guardian
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.GuardianRequest true "Guardian"
// @Success 201 {object} dto.APIResponse{data=models.Guardian} "Guardian created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /guardians [post]
func (c *GuardianController) CreateGuardian(ctx *gin.Context) {
	var req dto.GuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	guardian, err := c.guardianService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, guardian, "Guardian created")
}

// ListGuardians returns a page of guardians
// @Summary List guardians
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in name, email and phone"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Guardian}} "Guardians"
// @Router /guardians [get]
func (c *GuardianController) ListGuardians(ctx *gin.Context) {
	var filter dto.GuardianFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	guardians, total, err := c.guardianService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, guardians, total, filter.ListParams)
}

// GetGuardian returns one guardian
// @Summary Get a guardian
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Guardian ID"
// @Success 200 {object} dto.APIResponse{data=models.Guardian} "Guardian"
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /guardians/{id} [get]
func (c *GuardianController) GetGuardian(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	guardian, err := c.guardianService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, guardian, "")
}

// UpdateGuardian changes a guardian
// @Summary Update a guardian
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Guardian ID"
// @Param request body dto.GuardianRequest true "Guardian"
// @Success 200 {object} dto.APIResponse{data=models.Guardian} "Guardian updated"
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /guardians/{id} [put]
func (c *GuardianController) UpdateGuardian(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.GuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	guardian, err := c.guardianService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, guardian, "Guardian updated")
}

// ListWards returns the students a guardian is linked to
// @Summary List the wards of a guardian
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Guardian ID"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentGuardian} "Wards"
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Router /guardians/{id}/wards [get]
func (c *GuardianController) ListWards(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	wards, err := c.guardianService.ListWards(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, wards, "")
}

// OpenAccount creates a portal login for a guardian
// @Summary Open a guardian account
// @Description The username is the guardian's email, or the phone number when there is no email
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Guardian ID"
// @Success 201 {object} dto.APIResponse{data=dto.GuardianAccountResponse} "Account created"
// @Failure 404 {object} dto.ErrorResponse "Guardian not found"
// @Failure 409 {object} dto.ErrorResponse "Guardian already has an account"
// @Router /guardians/{id}/account [post]
func (c *GuardianController) OpenAccount(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.guardianService.OpenAccount(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Account created")
}

// ListStudentGuardians returns the guardians of a student
// @Summary List the guardians of a student
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.APIResponse{data=[]models.StudentGuardian} "Guardians, primary first"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/guardians [get]
func (c *GuardianController) ListStudentGuardians(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	links, err := c.guardianService.ListByStudent(ctx.Request.Context(), middleware.SchoolID(ctx), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, links, "")
}

// LinkGuardian links an existing guardian to a student
// @Summary Link a guardian to a student
// @Description Marking the link primary clears the other primary guardian of the student
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Param request body dto.LinkGuardianRequest true "Link"
// @Success 201 {object} dto.APIResponse{data=models.StudentGuardian} "Guardian linked"
// @Failure 404 {object} dto.ErrorResponse "Student or guardian not found"
// @Failure 409 {object} dto.ErrorResponse "Already linked"
// @Router /students/{id}/guardians [post]
func (c *GuardianController) LinkGuardian(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.LinkGuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	link, err := c.guardianService.Link(ctx.Request.Context(), middleware.SchoolID(ctx), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, link, "Guardian linked")
}

// UpdateGuardianLink changes the relationship metadata of a link
// @Summary Update a guardian link
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Param guardianId path int true "Guardian ID"
// @Param request body dto.UpdateGuardianLinkRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.StudentGuardian} "Link updated"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Router /students/{id}/guardians/{guardianId} [put]
func (c *GuardianController) UpdateGuardianLink(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	guardianID, ok := middleware.ParamID(ctx, "guardianId")
	if !ok {
		return
	}
	var req dto.UpdateGuardianLinkRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	link, err := c.guardianService.UpdateLink(ctx.Request.Context(), middleware.SchoolID(ctx), studentID, guardianID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, link, "Link updated")
}

// UnlinkGuardian removes a guardian from a student
// @Summary Unlink a guardian
// @Tags guardians
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Param guardianId path int true "Guardian ID"
// @Success 200 {object} dto.APIResponse "Guardian unlinked"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Router /students/{id}/guardians/{guardianId} [delete]
func (c *GuardianController) UnlinkGuardian(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	guardianID, ok := middleware.ParamID(ctx, "guardianId")
	if !ok {
		return
	}

	if err := c.guardianService.Unlink(ctx.Request.Context(), middleware.SchoolID(ctx), studentID, guardianID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Guardian unlinked")
}
