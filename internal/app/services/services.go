package services

import (
	"github.com/edutrack/schoolms/internal/app/repositories"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/edutrack/schoolms/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// Deps groups the collaborators shared by the school-scoped services
type Deps struct {
	Tx         db.Transactor
	Schools    SchoolStore
	Users      UserStore
	Tokens     TokenStore
	Programmes ProgrammeStore
	Subjects   SubjectStore
	Classes    ClassStore
	Academic   AcademicStore
	Students   StudentStore
	Teachers   TeacherStore
	Guardians  GuardianStore
	Vouchers   VoucherStore
	Sequences  SequenceStore
	Notifier   email.Notifier
	Events     EventPublisher
	Policy     Policy
	Logger     zerolog.Logger
}

// DepsFromRepositories fills the stores of Deps from the Postgres repositories
func DepsFromRepositories(tx db.Transactor, repos *repositories.Repositories) Deps {
	return Deps{
		Tx:         tx,
		Schools:    repos.SchoolRepository,
		Users:      repos.UserRepository,
		Tokens:     repos.TokenRepository,
		Programmes: repos.ProgrammeRepository,
		Subjects:   repos.SubjectRepository,
		Classes:    repos.ClassRepository,
		Academic:   repos.AcademicRepository,
		Students:   repos.StudentRepository,
		Teachers:   repos.TeacherRepository,
		Guardians:  repos.GuardianRepository,
		Vouchers:   repos.VoucherRepository,
		Sequences:  repos.SequenceRepository,
	}
}

func (d Deps) idGenerator() *IDGenerator {
	return NewIDGenerator(d.Schools, d.Sequences)
}

// Services holds all the service instances
type Services struct {
	Auth         *AuthService
	School       *SchoolService
	Programme    *ProgrammeService
	Subject      *SubjectService
	Class        *ClassService
	Academic     *AcademicService
	Student      *StudentService
	Teacher      *TeacherService
	Guardian     *GuardianService
	Voucher      *VoucherService
	Registration *RegistrationService
	Dashboard    *DashboardService
}

// NewServices wires every service from d
func NewServices(d Deps, jwtService *auth.JWTService, storage filestorage.FileStorage, maxLogoSize int64) *Services {
	return &Services{
		Auth:         NewAuthService(d.Users, d.Tokens, d.Students, d.Teachers, d.Guardians, jwtService, d.Logger),
		School:       NewSchoolService(d.Tx, d.Schools, d.Users, storage, maxLogoSize, d.Logger),
		Programme:    NewProgrammeService(d.Programmes),
		Subject:      NewSubjectService(d.Subjects, d.Logger),
		Class:        NewClassService(d.Classes, d.Programmes),
		Academic:     NewAcademicService(d.Tx, d.Academic, d.Schools),
		Student:      NewStudentService(d),
		Teacher:      NewTeacherService(d),
		Guardian:     NewGuardianService(d),
		Voucher:      NewVoucherService(d),
		Registration: NewRegistrationService(d),
		Dashboard:    NewDashboardService(d),
	}
}
