package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// ClassController handles the classes of a school
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

func classResponses(classes []*models.Class) []dto.ClassResponse {
	out := make([]dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		out = append(out, dto.NewClassResponse(c))
	}
	return out
}

// CreateClass handles class creation
// @Summary Create a class
// @Description Levels are limited per stage (KG 2, PR 6, JHS 3, SHS 3). SHS classes need a programme, other stages must not have one.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.ClassRequest true "Class"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Class created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Class already exists"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, dto.NewClassResponse(class), "Class created")
}

// ListClasses returns a page of classes with their capacity view
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param stage query string false "KG, PR, JHS or SHS"
// @Param level query int false "Level within the stage"
// @Param programmeId query int false "Programme"
// @Param isActive query bool false "Filter by active flag"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.ClassResponse}} "Classes"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	var filter dto.ClassFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	classes, total, err := c.classService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, classResponses(classes), total, filter.ListParams)
}

// GetClass returns one class
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	class, err := c.classService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewClassResponse(class), "")
}

// UpdateClass changes a class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Class ID"
// @Param request body dto.ClassRequest true "Class"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewClassResponse(class), "Class updated")
}

// SetClassActive toggles a class
// @Summary Activate or deactivate a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Class ID"
// @Param request body dto.ToggleActiveRequest true "New state"
// @Success 200 {object} dto.APIResponse "Class updated"
// @Router /classes/{id}/status [patch]
func (c *ClassController) SetClassActive(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.ToggleActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.classService.SetActive(ctx.Request.Context(), middleware.SchoolID(ctx), id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "isActive": *req.IsActive}, "Class updated")
}
