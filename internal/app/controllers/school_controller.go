package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
)

// SchoolController handles school management. Superusers manage every school,
// administrators only their own through the /school routes.
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// CreateSchool registers a school with its first administrator
// @Summary Create a school
// @Description Creates a school and its first administrator account. A blank code is generated from the name.
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSchoolRequest true "School and administrator"
// @Success 201 {object} dto.APIResponse{data=dto.SchoolResponse} "School created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Superuser only"
// @Failure 409 {object} dto.ErrorResponse "Code, slug or username already exists"
// @Router /schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	var req dto.CreateSchoolRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.schoolService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "School created")
}

// ListSchools returns a page of schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in name, code, town and district"
// @Param isActive query bool false "Filter by active flag"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.School}} "Schools"
// @Failure 403 {object} dto.ErrorResponse "Superuser only"
// @Router /schools [get]
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	var params dto.ListParams
	if !bindList(ctx, &params, &params) {
		return
	}

	schools, total, err := c.schoolService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, schools, total, params)
}

// GetSchool returns one school
// @Summary Get a school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School} "School"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	school, err := c.schoolService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, school, "")
}

// UpdateSchool changes a school
// @Summary Update a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.UpdateSchoolRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.School} "School updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id} [put]
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	c.update(ctx, id)
}

// SetSchoolActive activates or deactivates a school
// @Summary Activate or deactivate a school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID"
// @Param request body dto.ToggleActiveRequest true "New state"
// @Success 200 {object} dto.APIResponse "School updated"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id}/status [patch]
func (c *SchoolController) SetSchoolActive(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.schoolService.SetActive(ctx.Request.Context(), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "isActive": *req.IsActive}, "School updated")
}

// GetOwnSchool returns the school of the request
// @Summary Get my school
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Success 200 {object} dto.APIResponse{data=models.School} "School"
// @Router /school [get]
func (c *SchoolController) GetOwnSchool(ctx *gin.Context) {
	school, ok := middleware.GetSchool(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrSchoolRequired)
		return
	}
	respond(ctx, http.StatusOK, school, "")
}

// UpdateOwnSchool changes the school of the request
// @Summary Update my school
// @Description Updates contact, location, branding colours and academic settings. The code never changes.
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.UpdateSchoolRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.School} "School updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /school [put]
func (c *SchoolController) UpdateOwnSchool(ctx *gin.Context) {
	c.update(ctx, middleware.SchoolID(ctx))
}

func (c *SchoolController) update(ctx *gin.Context, id int64) {
	var req dto.UpdateSchoolRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	school, err := c.schoolService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, school, "School updated")
}

// UploadLogo replaces the logo of the school of the request
// @Summary Upload school logo
// @Description Accepts png, jpeg, gif or webp up to the configured size
// @Tags school
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param logo formData file true "Logo image"
// @Success 200 {object} dto.APIResponse{data=dto.LogoUploadResponse} "Logo uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Router /school/logo [post]
func (c *SchoolController) UploadLogo(ctx *gin.Context) {
	file, err := ctx.FormFile("logo")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("logo", "logo file is required"))
		return
	}

	url, err := c.schoolService.UploadLogo(ctx.Request.Context(), middleware.SchoolID(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.LogoUploadResponse{LogoURL: url}, "Logo uploaded")
}
