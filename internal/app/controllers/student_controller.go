package controllers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
)

// StudentController handles student records of a school
type StudentController struct {
	studentService *services.StudentService
	maxImportBytes int64
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, maxImportBytes int64, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		maxImportBytes: maxImportBytes,
		logger:         logger,
	}
}

// CreateStudent enrols a student
// @Summary Create a student
// @Description Generates the student ID, optionally opens a login account and links guardians (found by email, then phone, or created)
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.StudentCreatedResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed, class full or several primary guardians"
// @Failure 409 {object} dto.ErrorResponse "Email or Ghana card already registered"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.studentService.Create(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Student created")
}

// ListStudents returns a page of students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in student ID, names, email and phone"
// @Param orderBy query string false "studentId, firstName, lastName, yearAdmitted or createdAt"
// @Param desc query bool false "Descending order"
// @Param status query string false "Enrolment status"
// @Param gender query string false "M or F"
// @Param classId query int false "Current class"
// @Param programmeId query int false "Programme of the current class"
// @Param yearAdmitted query int false "Year admitted"
// @Param isActive query bool false "Filter by active flag"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Student}} "Students"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	students, total, err := c.studentService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, students, total, filter.ListParams)
}

// GetStudent returns a student with class and guardians
// @Summary Get a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "")
}

// UpdateStudent changes personal fields of a student
// @Summary Update a student
// @Description The student ID and the school never change
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or class full"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), middleware.SchoolID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Student updated")
}

// SetStudentStatus changes the enrolment status
// @Summary Change student status
// @Description Any status other than active also deactivates the student's login account
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Param request body dto.StudentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Status changed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/status [patch]
func (c *StudentController) SetStudentStatus(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	var req dto.StudentStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.SetStatus(ctx.Request.Context(), middleware.SchoolID(ctx), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Status changed")
}

// DeactivateStudent withdraws a student
// @Summary Deactivate a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.APIResponse "Student deactivated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeactivateStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Deactivate(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gin.H{"id": id, "status": models.StudentStatusWithdrawn}, "Student deactivated")
}

// BulkMove moves students to another class
// @Summary Move students to a class
// @Description Promotes, demotes or reshuffles students. Each student is moved on its own; failures are reported per student.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.BulkMoveRequest true "Students and target class"
// @Success 200 {object} dto.APIResponse{data=dto.BulkMoveResult} "Move finished"
// @Failure 404 {object} dto.ErrorResponse "Target class not found"
// @Router /students/bulk-move [post]
func (c *StudentController) BulkMove(ctx *gin.Context) {
	var req dto.BulkMoveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.studentService.BulkMove(ctx.Request.Context(), middleware.SchoolID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result, "Move finished")
}

// ExportStudents downloads the filtered students as CSV
// @Summary Export students
// @Tags students
// @Produce text/csv
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param status query string false "Enrolment status"
// @Param classId query int false "Current class"
// @Param search query string false "Search in student ID, names, email and phone"
// @Success 200 {file} file "students CSV"
// @Router /students/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	var buf bytes.Buffer
	if _, err := c.studentService.ExportCSV(ctx.Request.Context(), middleware.SchoolID(ctx), filter, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendCSV(ctx, "students", &buf)
}

// ImportStudents creates students from an uploaded CSV file
// @Summary Import students
// @Description Uses the export header. Every row is created on its own; failing rows are reported with their row number.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param file formData file true "CSV file"
// @Param defaultClassId formData int false "Class for rows without a known class_name"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad header or too many rows"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "csv file is required"))
		return
	}
	if c.maxImportBytes > 0 && fileHeader.Size > c.maxImportBytes {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "file is too large"))
		return
	}

	var defaultClassID *int64
	if raw := strings.TrimSpace(ctx.PostForm("defaultClassId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("defaultClassId", "must be a positive number"))
			return
		}
		defaultClassID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded csv")
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.studentService.ImportCSV(ctx.Request.Context(), middleware.SchoolID(ctx), file, defaultClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, result, "Import finished")
}
