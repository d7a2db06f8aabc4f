package dto

import "github.com/edutrack/schoolms/internal/app/models"

// DashboardResponse is the role-specific landing summary
type DashboardResponse struct {
	Role models.Role `json:"role" example:"school_admin"`
	Data interface{} `json:"data"`
}

// PlatformSummary is shown to superusers
type PlatformSummary struct {
	TotalSchools  int64 `json:"totalSchools"`
	ActiveSchools int64 `json:"activeSchools"`
}

// SchoolSummary counts the main records of a school
type SchoolSummary struct {
	School         *models.School       `json:"school"`
	ActiveStudents int64                `json:"activeStudents"`
	ActiveTeachers int64                `json:"activeTeachers"`
	ActiveClasses  int64                `json:"activeClasses"`
	Guardians      int64                `json:"guardians"`
	UnusedVouchers int64                `json:"unusedVouchers"`
	CurrentYear    *models.AcademicYear `json:"currentYear,omitempty"`
	CurrentTerm    *models.Term         `json:"currentTerm,omitempty"`
}

// TeacherDashboard is shown to teachers
type TeacherDashboard struct {
	Teacher *models.Teacher `json:"teacher"`
	Summary *SchoolSummary  `json:"summary"`
}

// StudentDashboard is shown to students
type StudentDashboard struct {
	Student   *models.Student          `json:"student"`
	Class     *ClassResponse           `json:"class,omitempty"`
	Guardians []models.StudentGuardian `json:"guardians"`
}

// GuardianDashboard is shown to guardians
type GuardianDashboard struct {
	Guardian *models.Guardian         `json:"guardian"`
	Wards    []models.StudentGuardian `json:"wards"`
}
