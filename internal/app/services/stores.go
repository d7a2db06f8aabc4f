package services

import (
	"context"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/repositories"
)

// The stores below are the persistence operations each service depends on.
// The repositories package implements all of them on Postgres.

// SchoolStore persists schools
type SchoolStore interface {
	Create(ctx context.Context, s *models.School) error
	GetByID(ctx context.Context, id int64) (*models.School, error)
	Update(ctx context.Context, s *models.School) error
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateLogo(ctx context.Context, id int64, logoURL *string) error
	List(ctx context.Context, params dto.ListParams) ([]*models.School, int64, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Count(ctx context.Context) (total, active int64, err error)
}

// UserStore persists login accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, hash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, email *string) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetUserIDByToken(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// ProgrammeStore persists SHS programmes
type ProgrammeStore interface {
	Create(ctx context.Context, p *models.Programme) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Programme, error)
	Update(ctx context.Context, p *models.Programme) error
	SetActive(ctx context.Context, schoolID, id int64, active bool) error
	List(ctx context.Context, schoolID int64, params dto.ListParams) ([]*models.Programme, int64, error)
	CodeExists(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error)
	NameExists(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error)
}

// SubjectStore persists the subject catalogue and the subjects assigned to teachers
type SubjectStore interface {
	Create(ctx context.Context, s *models.Subject) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Subject, error)
	Update(ctx context.Context, s *models.Subject) error
	SetActive(ctx context.Context, schoolID, id int64, active bool) error
	Delete(ctx context.Context, schoolID, id int64) error
	List(ctx context.Context, schoolID int64, f dto.SubjectFilter) ([]*models.Subject, int64, error)
	ListByIDs(ctx context.Context, schoolID int64, ids []int64) ([]*models.Subject, error)
	CodeExists(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error)
	NameExists(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error)
	CountByType(ctx context.Context, schoolID int64) (map[models.SubjectType]int64, error)
	ReplaceTeacherSubjects(ctx context.Context, teacherID int64, subjectIDs []int64) error
	ListForTeachers(ctx context.Context, teacherIDs []int64) (map[int64][]models.Subject, error)
	CountTeachers(ctx context.Context, subjectID int64) (int64, error)
}

// ClassStore persists classes
type ClassStore interface {
	Create(ctx context.Context, c *models.Class) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Class, error)
	// LockForEnrollment returns the class with its enrollment and holds a row
	// lock until the surrounding transaction ends.
	LockForEnrollment(ctx context.Context, schoolID, id int64) (*models.Class, error)
	Update(ctx context.Context, c *models.Class) error
	SetActive(ctx context.Context, schoolID, id int64, active bool) error
	List(ctx context.Context, schoolID int64, f dto.ClassFilter) ([]*models.Class, int64, error)
	ListAll(ctx context.Context, schoolID int64) ([]*models.Class, error)
	DuplicateExists(ctx context.Context, c *models.Class) (bool, error)
	CountActive(ctx context.Context, schoolID int64) (int64, error)
}

// AcademicStore persists academic years and terms
type AcademicStore interface {
	CreateYear(ctx context.Context, y *models.AcademicYear) error
	GetYear(ctx context.Context, schoolID, id int64) (*models.AcademicYear, error)
	CurrentYear(ctx context.Context, schoolID int64) (*models.AcademicYear, error)
	UpdateYear(ctx context.Context, y *models.AcademicYear) error
	ListYears(ctx context.Context, schoolID int64) ([]*models.AcademicYear, error)
	ClearCurrentYear(ctx context.Context, schoolID, keepID int64) error
	CreateTerm(ctx context.Context, t *models.Term) error
	GetTerm(ctx context.Context, schoolID, id int64) (*models.Term, error)
	CurrentTerm(ctx context.Context, schoolID int64) (*models.Term, error)
	UpdateTerm(ctx context.Context, t *models.Term) error
	ListTerms(ctx context.Context, schoolID, yearID int64) ([]*models.Term, error)
	ClearCurrentTerm(ctx context.Context, schoolID, keepID int64) error
}

// StudentStore persists students
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	Update(ctx context.Context, s *models.Student) error
	SetStatus(ctx context.Context, schoolID, id int64, status models.StudentStatus, active bool) error
	SetActive(ctx context.Context, schoolID, id int64, active bool) error
	SetUserID(ctx context.Context, schoolID, id, userID int64) error
	SetClass(ctx context.Context, schoolID, id int64, classID *int64) error
	List(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, int64, error)
	ListAll(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, error)
	EmailExists(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error)
	GhanaCardExists(ctx context.Context, card string, excludeID int64) (bool, error)
	CountActive(ctx context.Context, schoolID int64) (int64, error)
}

// TeacherStore persists teachers
type TeacherStore interface {
	Create(ctx context.Context, t *models.Teacher) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	Update(ctx context.Context, t *models.Teacher) error
	SetActive(ctx context.Context, schoolID, id int64, active bool) error
	SetUserID(ctx context.Context, schoolID, id, userID int64) error
	List(ctx context.Context, schoolID int64, f dto.TeacherFilter) ([]*models.Teacher, int64, error)
	EmailExists(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error)
	GhanaCardExists(ctx context.Context, card string, excludeID int64) (bool, error)
	CountActive(ctx context.Context, schoolID int64) (int64, error)
}

// GuardianStore persists guardians and their links to students
type GuardianStore interface {
	Create(ctx context.Context, g *models.Guardian) error
	GetByID(ctx context.Context, schoolID, id int64) (*models.Guardian, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Guardian, error)
	FindByEmail(ctx context.Context, schoolID int64, email string) (*models.Guardian, error)
	FindByPhone(ctx context.Context, schoolID int64, phone string) (*models.Guardian, error)
	Update(ctx context.Context, g *models.Guardian) error
	SetUserID(ctx context.Context, schoolID, id, userID int64) error
	List(ctx context.Context, schoolID int64, f dto.GuardianFilter) ([]*models.Guardian, int64, error)
	Count(ctx context.Context, schoolID int64) (int64, error)
	Link(ctx context.Context, l *models.StudentGuardian) error
	GetLink(ctx context.Context, studentID, guardianID int64) (*models.StudentGuardian, error)
	UpdateLink(ctx context.Context, l *models.StudentGuardian) error
	Unlink(ctx context.Context, studentID, guardianID int64) error
	ClearPrimary(ctx context.Context, studentID, exceptGuardianID int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.StudentGuardian, error)
	ListWards(ctx context.Context, guardianID int64) ([]models.StudentGuardian, error)
}

// VoucherStore persists registration vouchers
type VoucherStore interface {
	Insert(ctx context.Context, v *models.Voucher) (bool, error)
	GetByID(ctx context.Context, schoolID, id int64) (*models.Voucher, error)
	FindBySerialAndPIN(ctx context.Context, serial, pin string) (*models.Voucher, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Voucher, error)
	MarkUsed(ctx context.Context, id int64, studentID, teacherID *int64) (bool, error)
	List(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, int64, error)
	ListAll(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, error)
	Stats(ctx context.Context, schoolID int64) (*models.VoucherStats, error)
}

// SequenceStore hands out ID sequence numbers
type SequenceStore interface {
	Next(ctx context.Context, schoolID int64, entityType string, year int) (int, error)
}

// EventPublisher fans domain events out to live subscribers of a school.
// Publish must not block.
type EventPublisher interface {
	Publish(schoolID int64, eventType string, payload interface{})
}

var (
	_ SchoolStore    = (*repositories.SchoolRepository)(nil)
	_ UserStore      = (*repositories.UserRepository)(nil)
	_ TokenStore     = (*repositories.TokenRepository)(nil)
	_ ProgrammeStore = (*repositories.ProgrammeRepository)(nil)
	_ SubjectStore   = (*repositories.SubjectRepository)(nil)
	_ ClassStore     = (*repositories.ClassRepository)(nil)
	_ AcademicStore  = (*repositories.AcademicRepository)(nil)
	_ StudentStore   = (*repositories.StudentRepository)(nil)
	_ TeacherStore   = (*repositories.TeacherRepository)(nil)
	_ GuardianStore  = (*repositories.GuardianRepository)(nil)
	_ VoucherStore   = (*repositories.VoucherRepository)(nil)
	_ SequenceStore  = (*repositories.SequenceRepository)(nil)
)

type noopPublisher struct{}

func (noopPublisher) Publish(int64, string, interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
