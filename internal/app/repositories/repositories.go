package repositories

import (
	"github.com/edutrack/schoolms/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	SchoolRepository    *SchoolRepository
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	ProgrammeRepository *ProgrammeRepository
	SubjectRepository   *SubjectRepository
	ClassRepository     *ClassRepository
	AcademicRepository  *AcademicRepository
	StudentRepository   *StudentRepository
	TeacherRepository   *TeacherRepository
	GuardianRepository  *GuardianRepository
	VoucherRepository   *VoucherRepository
	SequenceRepository  *SequenceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Querier) *Repositories {
	return &Repositories{
		SchoolRepository:    NewSchoolRepository(pool),
		UserRepository:      NewUserRepository(pool),
		TokenRepository:     NewTokenRepository(pool),
		ProgrammeRepository: NewProgrammeRepository(pool),
		SubjectRepository:   NewSubjectRepository(pool),
		ClassRepository:     NewClassRepository(pool),
		AcademicRepository:  NewAcademicRepository(pool),
		StudentRepository:   NewStudentRepository(pool),
		TeacherRepository:   NewTeacherRepository(pool),
		GuardianRepository:  NewGuardianRepository(pool),
		VoucherRepository:   NewVoucherRepository(pool),
		SequenceRepository:  NewSequenceRepository(pool),
	}
}
