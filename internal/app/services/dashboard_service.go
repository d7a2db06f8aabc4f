package services

import (
	"context"
	"errors"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
)

// DashboardService builds the role-specific landing summaries
type DashboardService struct {
	users     UserStore
	schools   SchoolStore
	classes   ClassStore
	academic  AcademicStore
	students  StudentStore
	teachers  TeacherStore
	subjects  SubjectStore
	guardians GuardianStore
	vouchers  VoucherStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(d Deps) *DashboardService {
	return &DashboardService{
		users:     d.Users,
		schools:   d.Schools,
		classes:   d.Classes,
		academic:  d.Academic,
		students:  d.Students,
		teachers:  d.Teachers,
		subjects:  d.Subjects,
		guardians: d.Guardians,
		vouchers:  d.Vouchers,
	}
}

// Get returns the dashboard of the user's classified role
func (s *DashboardService) Get(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role := user.Role()
	resp := &dto.DashboardResponse{Role: role}

	switch role {
	case models.RoleSuperuser:
		total, active, err := s.schools.Count(ctx)
		if err != nil {
			return nil, err
		}
		resp.Data = dto.PlatformSummary{TotalSchools: total, ActiveSchools: active}

	case models.RoleSchoolAdmin:
		if user.SchoolID == nil {
			return nil, apperrors.ErrSchoolRequired
		}
		summary, err := s.SchoolSummary(ctx, *user.SchoolID)
		if err != nil {
			return nil, err
		}
		resp.Data = summary

	case models.RoleTeacher:
		teacher, err := s.teachers.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if err := attachSubjects(ctx, s.subjects, teacher); err != nil {
			return nil, err
		}
		summary, err := s.SchoolSummary(ctx, teacher.SchoolID)
		if err != nil {
			return nil, err
		}
		resp.Data = dto.TeacherDashboard{Teacher: teacher, Summary: summary}

	case models.RoleStudent:
		student, err := s.students.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		board := dto.StudentDashboard{Student: student}
		if student.CurrentClassID != nil {
			class, err := s.classes.GetByID(ctx, student.SchoolID, *student.CurrentClassID)
			if err != nil {
				return nil, err
			}
			cr := dto.NewClassResponse(class)
			board.Class = &cr
		}
		if board.Guardians, err = s.guardians.ListByStudent(ctx, student.ID); err != nil {
			return nil, err
		}
		resp.Data = board

	case models.RoleGuardian:
		guardian, err := s.guardians.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		wards, err := s.guardians.ListWards(ctx, guardian.ID)
		if err != nil {
			return nil, err
		}
		resp.Data = dto.GuardianDashboard{Guardian: guardian, Wards: wards}
	}
	return resp, nil
}

// SchoolSummary counts the main records of a school
func (s *DashboardService) SchoolSummary(ctx context.Context, schoolID int64) (*dto.SchoolSummary, error) {
	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	summary := &dto.SchoolSummary{School: school}

	if summary.ActiveStudents, err = s.students.CountActive(ctx, schoolID); err != nil {
		return nil, err
	}
	if summary.ActiveTeachers, err = s.teachers.CountActive(ctx, schoolID); err != nil {
		return nil, err
	}
	if summary.ActiveClasses, err = s.classes.CountActive(ctx, schoolID); err != nil {
		return nil, err
	}
	if summary.Guardians, err = s.guardians.Count(ctx, schoolID); err != nil {
		return nil, err
	}
	stats, err := s.vouchers.Stats(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	summary.UnusedVouchers = stats.Unused

	year, err := s.academic.CurrentYear(ctx, schoolID)
	if err != nil && !errors.Is(err, apperrors.ErrAcademicYearNotFound) {
		return nil, err
	}
	summary.CurrentYear = year

	term, err := s.academic.CurrentTerm(ctx, schoolID)
	if err != nil && !errors.Is(err, apperrors.ErrTermNotFound) {
		return nil, err
	}
	summary.CurrentTerm = term
	return summary, nil
}
