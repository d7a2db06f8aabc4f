package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/controllers"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/middleware"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
)

// HealthCheck reports whether the backing services are reachable
type HealthCheck func(ctx context.Context) error

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	School       *controllers.SchoolController
	Programme    *controllers.ProgrammeController
	Subject      *controllers.SubjectController
	Class        *controllers.ClassController
	Academic     *controllers.AcademicController
	Student      *controllers.StudentController
	Teacher      *controllers.TeacherController
	Guardian     *controllers.GuardianController
	Voucher      *controllers.VoucherController
	Registration *controllers.RegistrationController
	Dashboard    *controllers.DashboardController
	Events       *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware, health HealthCheck) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(health))

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// --- Public voucher registration ---
	register := v1.Group("/register")
	{
		register.POST("/student", c.Registration.RegisterStudent)
		register.POST("/teacher", c.Registration.RegisterTeacher)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.GET("/auth/me", c.Auth.Me)
		authenticated.POST("/auth/change-password", c.Auth.ChangePassword)
		authenticated.GET("/dashboard", c.Dashboard.GetDashboard)
	}

	// --- Superuser: school management ---
	schools := authenticated.Group("/schools")
	schools.Use(authMiddleware.RequireRoles(models.RoleSuperuser))
	{
		schools.POST("", c.School.CreateSchool)
		schools.GET("", c.School.ListSchools)
		schools.GET("/:id", c.School.GetSchool)
		schools.PUT("/:id", c.School.UpdateSchool)
		schools.PATCH("/:id/status", c.School.SetSchoolActive)
	}

	// Staff can read the structure of their school, only administrators change it.
	staff := authenticated.Group("")
	staff.Use(authMiddleware.RequireRoles(models.RoleSchoolAdmin, models.RoleTeacher), authMiddleware.SchoolScope())
	{
		staff.GET("/school", c.School.GetOwnSchool)
		staff.GET("/programmes", c.Programme.ListProgrammes)
		staff.GET("/programmes/:id", c.Programme.GetProgramme)
		staff.GET("/subjects", c.Subject.ListSubjects)
		staff.GET("/subjects/summary", c.Subject.SubjectSummary)
		staff.GET("/subjects/:id", c.Subject.GetSubject)
		staff.GET("/classes", c.Class.ListClasses)
		staff.GET("/classes/:id", c.Class.GetClass)
		staff.GET("/academic-years", c.Academic.ListYears)
		staff.GET("/academic-years/current", c.Academic.CurrentYear)
		staff.GET("/academic-years/:id", c.Academic.GetYear)
		staff.GET("/academic-years/:id/terms", c.Academic.ListTerms)
		staff.GET("/terms/current", c.Academic.CurrentTerm)
		staff.GET("/terms/:id", c.Academic.GetTerm)
		staff.GET("/students", c.Student.ListStudents)
		staff.GET("/students/:id", c.Student.GetStudent)
		staff.GET("/students/:id/guardians", c.Guardian.ListStudentGuardians)
	}

	admin := authenticated.Group("")
	admin.Use(authMiddleware.RequireRoles(models.RoleSchoolAdmin), authMiddleware.SchoolScope())
	{
		admin.PUT("/school", c.School.UpdateOwnSchool)
		admin.POST("/school/logo", c.School.UploadLogo)

		admin.POST("/programmes", c.Programme.CreateProgramme)
		admin.PUT("/programmes/:id", c.Programme.UpdateProgramme)
		admin.PATCH("/programmes/:id/status", c.Programme.SetProgrammeActive)

		admin.POST("/subjects", c.Subject.CreateSubject)
		admin.PUT("/subjects/:id", c.Subject.UpdateSubject)
		admin.PATCH("/subjects/:id/status", c.Subject.SetSubjectActive)
		admin.DELETE("/subjects/:id", c.Subject.DeleteSubject)

		admin.POST("/classes", c.Class.CreateClass)
		admin.PUT("/classes/:id", c.Class.UpdateClass)
		admin.PATCH("/classes/:id/status", c.Class.SetClassActive)

		admin.POST("/academic-years", c.Academic.CreateYear)
		admin.PUT("/academic-years/:id", c.Academic.UpdateYear)
		admin.POST("/academic-years/:id/current", c.Academic.SetCurrentYear)
		admin.POST("/academic-years/:id/terms", c.Academic.CreateTerm)
		admin.PUT("/terms/:id", c.Academic.UpdateTerm)
		admin.POST("/terms/:id/current", c.Academic.SetCurrentTerm)

		admin.POST("/students", c.Student.CreateStudent)
		admin.GET("/students/export", c.Student.ExportStudents)
		admin.POST("/students/import", c.Student.ImportStudents)
		admin.POST("/students/bulk-move", c.Student.BulkMove)
		admin.PUT("/students/:id", c.Student.UpdateStudent)
		admin.PATCH("/students/:id/status", c.Student.SetStudentStatus)
		admin.DELETE("/students/:id", c.Student.DeactivateStudent)
		admin.POST("/students/:id/guardians", c.Guardian.LinkGuardian)
		admin.PUT("/students/:id/guardians/:guardianId", c.Guardian.UpdateGuardianLink)
		admin.DELETE("/students/:id/guardians/:guardianId", c.Guardian.UnlinkGuardian)

		admin.GET("/teachers", c.Teacher.ListTeachers)
		admin.POST("/teachers", c.Teacher.CreateTeacher)
		admin.GET("/teachers/:id", c.Teacher.GetTeacher)
		admin.PUT("/teachers/:id", c.Teacher.UpdateTeacher)
		admin.PATCH("/teachers/:id/status", c.Teacher.SetTeacherActive)
		admin.DELETE("/teachers/:id", c.Teacher.DeactivateTeacher)

		admin.GET("/guardians", c.Guardian.ListGuardians)
		admin.POST("/guardians", c.Guardian.CreateGuardian)
		admin.GET("/guardians/:id", c.Guardian.GetGuardian)
		admin.PUT("/guardians/:id", c.Guardian.UpdateGuardian)
		admin.GET("/guardians/:id/wards", c.Guardian.ListWards)
		admin.POST("/guardians/:id/account", c.Guardian.OpenAccount)

		admin.POST("/vouchers", c.Voucher.GenerateVouchers)
		admin.GET("/vouchers", c.Voucher.ListVouchers)
		admin.GET("/vouchers/stats", c.Voucher.VoucherStats)
		admin.GET("/vouchers/export", c.Voucher.ExportVouchers)
		admin.GET("/vouchers/:id", c.Voucher.GetVoucher)

		admin.GET("/events/ws", c.Events.HandleConnection)
	}
}

// healthHandler godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse "Service healthy"
// @Failure 503 {object} dto.ErrorResponse "Database unreachable"
// @Router /health [get]
func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if check != nil {
			checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(checkCtx); err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unreachable")
				ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
				return
			}
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	}
}
