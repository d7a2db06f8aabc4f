package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/idgen"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSerial = "SABC-12345678"
	testPIN    = "000000000000"
)

type registrationFixture struct {
	db      *memDB
	deps    Deps
	svc     *RegistrationService
	school  *models.School
	class   *models.Class
	voucher *models.Voucher
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	class := m.addClass(models.Class{SchoolID: school.ID, Stage: models.StagePrimary, Level: 1, Stream: "A", MaxStudents: 50, IsActive: true})
	voucher := m.addVoucher(models.Voucher{
		SchoolID:     school.ID,
		Kind:         models.VoucherKindStudent,
		SerialNumber: testSerial,
		PIN:          testPIN,
		ClassID:      &class.ID,
		CanSignin:    true,
	})
	d := m.deps()
	return &registrationFixture{db: m, deps: d, svc: NewRegistrationService(d), school: school, class: class, voucher: voucher}
}

func (f *registrationFixture) notifier() *recordingNotifier {
	return f.deps.Notifier.(*recordingNotifier)
}

func (f *registrationFixture) publisher() *recordingPublisher {
	return f.deps.Events.(*recordingPublisher)
}

func studentRequest(email string) *dto.StudentRegistrationRequest {
	return &dto.StudentRegistrationRequest{
		SerialNumber: testSerial,
		PIN:          testPIN,
		PersonRequest: dto.PersonRequest{
			FirstName:   "Ama",
			LastName:    "Mensah",
			Gender:      "F",
			DateOfBirth: "2012-03-14",
			Email:       email,
		},
	}
}

func TestRegisterStudent_Scenario(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	resp, err := f.svc.RegisterStudent(ctx, studentRequest("ama@example.com"))
	require.NoError(t, err)

	wantID := fmt.Sprintf("STUTEST0001%02d", time.Now().Year()%100)
	assert.Equal(t, wantID, resp.Student.StudentID)
	assert.Equal(t, &f.class.ID, resp.Student.CurrentClassID)
	assert.True(t, resp.LoginEnabled)
	require.NotNil(t, resp.Credentials)
	assert.Equal(t, wantID, resp.Credentials.Username)
	assert.Len(t, resp.Credentials.Password, 8)

	used := f.db.voucher(f.voucher.ID)
	assert.True(t, used.IsUsed)
	assert.NotNil(t, used.UsedAt)
	assert.Equal(t, &resp.Student.ID, used.UsedByStudentID)

	assert.Equal(t, []string{"ama@example.com"}, f.notifier().recipients())
	assert.Equal(t, []string{websocket.EventStudentRegistered, websocket.EventVoucherConsumed}, f.publisher().types())

	_, err = f.svc.RegisterStudent(ctx, studentRequest("kofi@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrVoucherAlreadyUsed)

	students, users, _ := f.db.counts()
	assert.Equal(t, 1, students)
	assert.Equal(t, 1, users)
}

func TestRegisterStudent_ConcurrentUseOfOneVoucher(t *testing.T) {
	f := newRegistrationFixture(t)
	const attempts = 12

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.RegisterStudent(context.Background(), studentRequest(fmt.Sprintf("pupil%d@example.com", i)))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	require.Len(t, failures, attempts-1)
	for _, err := range failures {
		assert.ErrorIs(t, err, apperrors.ErrVoucherAlreadyUsed)
	}
	students, users, _ := f.db.counts()
	assert.Equal(t, 1, students)
	assert.Equal(t, 1, users)
}

func TestRegisterStudent_SigninVoucherRequiresEmail(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.svc.RegisterStudent(context.Background(), studentRequest(""))
	assert.ErrorIs(t, err, apperrors.ErrMissingContactInfo)

	students, users, _ := f.db.counts()
	assert.Zero(t, students)
	assert.Zero(t, users)
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)
}

func TestRegisterStudent_NoSigninWithoutEmail(t *testing.T) {
	f := newRegistrationFixture(t)
	f.db.mu.Lock()
	v := f.db.vouchers[f.voucher.ID]
	v.CanSignin = false
	f.db.vouchers[f.voucher.ID] = v
	f.db.mu.Unlock()

	resp, err := f.svc.RegisterStudent(context.Background(), studentRequest(""))
	require.NoError(t, err)
	assert.False(t, resp.LoginEnabled)
	assert.Nil(t, resp.Credentials)
	assert.Nil(t, resp.Student.UserID)

	_, users, _ := f.db.counts()
	assert.Zero(t, users)
}

func TestRegisterStudent_TwoPrimaryGuardiansFailBeforeWriting(t *testing.T) {
	f := newRegistrationFixture(t)
	req := studentRequest("ama@example.com")
	req.Guardians = []dto.GuardianInput{
		{Title: models.TitleMr, Name: "Kofi Mensah", Phone: "0201234567", IsPrimary: true},
		{Title: models.TitleMrs, Name: "Akosua Mensah", Phone: "0241234567", IsPrimary: true},
	}

	_, err := f.svc.RegisterStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrMultiplePrimaryGuardians)

	students, users, links := f.db.counts()
	assert.Zero(t, students)
	assert.Zero(t, users)
	assert.Zero(t, links)
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)
}

func TestRegisterStudent_FailureRollsEverythingBack(t *testing.T) {
	f := newRegistrationFixture(t)
	req := studentRequest("ama@example.com")
	req.Guardians = []dto.GuardianInput{
		{Title: models.TitleMrs, Name: "Akosua Mensah", Phone: "0241234567", Relationship: "cousin"},
	}

	_, err := f.svc.RegisterStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	students, users, links := f.db.counts()
	assert.Zero(t, students)
	assert.Zero(t, users)
	assert.Zero(t, links)
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)
	assert.Empty(t, f.notifier().recipients())
	assert.Empty(t, f.publisher().types())

	// the rolled back sequence number is handed out again
	resp, err := f.svc.RegisterStudent(context.Background(), studentRequest("ama@example.com"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("STUTEST0001%02d", time.Now().Year()%100), resp.Student.StudentID)
}

func TestRegisterStudent_GuardiansAreLinkedAndNotified(t *testing.T) {
	f := newRegistrationFixture(t)
	req := studentRequest("ama@example.com")
	req.Guardians = []dto.GuardianInput{
		{Title: models.TitleMrs, Name: "Akosua Mensah", Phone: "024 123 4567", Email: "Akosua@Example.com",
			Relationship: models.RelationshipMother, IsPrimary: true},
		{Title: models.TitleMr, Name: "Kofi Mensah", Phone: "0201234567"},
	}

	resp, err := f.svc.RegisterStudent(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Student.Guardians, 2)

	primary := resp.Student.Guardians[0]
	assert.True(t, primary.IsPrimary)
	assert.True(t, primary.CanPickup)
	assert.Equal(t, "akosua@example.com", primary.Guardian.Email)
	assert.Equal(t, models.RelationshipGuardian, resp.Student.Guardians[1].Relationship)

	assert.ElementsMatch(t, []string{"ama@example.com", "akosua@example.com"}, f.notifier().recipients())
}

func TestRegisterStudent_ReusesGuardianAcrossSiblings(t *testing.T) {
	f := newRegistrationFixture(t)
	second := f.db.addVoucher(models.Voucher{
		SchoolID: f.school.ID, Kind: models.VoucherKindStudent, SerialNumber: "SABC-87654321", PIN: "111111111111",
	})
	mother := dto.GuardianInput{Title: models.TitleMrs, Name: "Akosua Mensah", Phone: "0241234567", IsPrimary: true}

	first := studentRequest("ama@example.com")
	first.Guardians = []dto.GuardianInput{mother}
	_, err := f.svc.RegisterStudent(context.Background(), first)
	require.NoError(t, err)

	sibling := studentRequest("")
	sibling.SerialNumber, sibling.PIN = second.SerialNumber, second.PIN
	sibling.FirstName = "Yaw"
	sibling.Guardians = []dto.GuardianInput{mother}
	resp, err := f.svc.RegisterStudent(context.Background(), sibling)
	require.NoError(t, err)

	f.db.mu.Lock()
	guardians := len(f.db.guardians)
	f.db.mu.Unlock()
	assert.Equal(t, 1, guardians)
	assert.Nil(t, resp.Student.CurrentClassID)

	wards, err := memGuardians{f.db}.ListWards(context.Background(), resp.Student.Guardians[0].GuardianID)
	require.NoError(t, err)
	assert.Len(t, wards, 2)
}

func TestRegisterStudent_FullClass(t *testing.T) {
	f := newRegistrationFixture(t)
	f.db.mu.Lock()
	c := f.db.classes[f.class.ID]
	c.MaxStudents = 1
	f.db.classes[f.class.ID] = c
	f.db.students[999] = models.Student{ID: 999, SchoolID: f.school.ID, StudentID: "STUTEST999925", CurrentClassID: &f.class.ID, IsActive: true}
	f.db.mu.Unlock()

	_, err := f.svc.RegisterStudent(context.Background(), studentRequest("ama@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrClassFull)
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)
}

func TestRegisterStudent_InactiveClass(t *testing.T) {
	f := newRegistrationFixture(t)
	f.db.mu.Lock()
	c := f.db.classes[f.class.ID]
	c.IsActive = false
	f.db.classes[f.class.ID] = c
	f.db.mu.Unlock()

	_, err := f.svc.RegisterStudent(context.Background(), studentRequest("ama@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	students, users, _ := f.db.counts()
	assert.Zero(t, students)
	assert.Zero(t, users)
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)
}

func TestRegisterStudent_YearAdmittedBounds(t *testing.T) {
	f := newRegistrationFixture(t)

	for _, year := range []int{1901, 1999, time.Now().Year() + 2} {
		req := studentRequest("ama@example.com")
		req.YearAdmitted = year
		_, err := f.svc.RegisterStudent(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "year %d", year)
	}
	assert.False(t, f.db.voucher(f.voucher.ID).IsUsed)

	req := studentRequest("ama@example.com")
	req.YearAdmitted = 2001
	resp, err := f.svc.RegisterStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "STUTEST000101", resp.Student.StudentID)
}

func TestIDGenerator_RejectsYearsOutsideTheCentury(t *testing.T) {
	f := newRegistrationFixture(t)
	ids := f.deps.idGenerator()

	var id string
	err := f.db.WithTransaction(context.Background(), func(ctx context.Context, _ pgx.Tx) error {
		_, err := ids.Next(ctx, f.school.ID, idgen.EntityStudent, 1901)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		_, err = ids.Next(ctx, f.school.ID, idgen.EntityTeacher, 2100)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		id, err = ids.Next(ctx, f.school.ID, idgen.EntityStudent, 2001)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "STUTEST000101", id)
}

func TestRegisterStudent_InvalidVoucher(t *testing.T) {
	f := newRegistrationFixture(t)

	req := studentRequest("ama@example.com")
	req.PIN = "999999999999"
	_, err := f.svc.RegisterStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrVoucherInvalid)

	teacherReq := &dto.TeacherRegistrationRequest{SerialNumber: testSerial, PIN: testPIN, PersonRequest: req.PersonRequest}
	_, err = f.svc.RegisterTeacher(context.Background(), teacherReq)
	assert.ErrorIs(t, err, apperrors.ErrVoucherKindMismatch)
}

func TestRegisterStudent_InactiveSchool(t *testing.T) {
	f := newRegistrationFixture(t)
	require.NoError(t, memSchools{f.db}.SetActive(context.Background(), f.school.ID, false))

	_, err := f.svc.RegisterStudent(context.Background(), studentRequest("ama@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRegisterTeacher(t *testing.T) {
	f := newRegistrationFixture(t)
	v := f.db.addVoucher(models.Voucher{
		SchoolID: f.school.ID, Kind: models.VoucherKindTeacher, SerialNumber: "TTES-00000001", PIN: "222222222222", CanSignin: true,
	})

	maths := f.db.addSubject(models.Subject{SchoolID: f.school.ID, Name: "Mathematics", Code: "MAT", IsActive: true})
	science := f.db.addSubject(models.Subject{SchoolID: f.school.ID, Name: "Integrated Science", Code: "INT", IsActive: true})

	resp, err := f.svc.RegisterTeacher(context.Background(), &dto.TeacherRegistrationRequest{
		SerialNumber: v.SerialNumber,
		PIN:          v.PIN,
		PersonRequest: dto.PersonRequest{
			FirstName: "Kwame", LastName: "Boateng", Gender: "m", DateOfBirth: "1988-07-01", Email: "kwame@example.com",
		},
		EmploymentDate: "2023-09-01",
		SubjectIDs:     []int64{maths.ID, science.ID, maths.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "TCHTEST000123", resp.Teacher.TeacherID)
	require.Len(t, resp.Teacher.Subjects, 2)
	assert.Equal(t, "Integrated Science", resp.Teacher.Subjects[0].Name)
	assert.Equal(t, "Mathematics", resp.Teacher.Subjects[1].Name)
	assert.ElementsMatch(t, []int64{maths.ID, science.ID}, f.db.assigned[resp.Teacher.ID])
	require.NotNil(t, resp.Credentials)
	assert.Equal(t, "TCHTEST000123", resp.Credentials.Username)

	used := f.db.voucher(v.ID)
	assert.True(t, used.IsUsed)
	assert.Equal(t, &resp.Teacher.ID, used.UsedByTeacherID)

	user, err := memUsers{f.db}.GetByID(context.Background(), *resp.Teacher.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role())
}

func TestRegisterTeacher_EmploymentYearBounds(t *testing.T) {
	f := newRegistrationFixture(t)
	v := f.db.addVoucher(models.Voucher{
		SchoolID: f.school.ID, Kind: models.VoucherKindTeacher, SerialNumber: "TTES-00000002", PIN: "333333333333",
	})
	person := dto.PersonRequest{FirstName: "Kwame", LastName: "Boateng", Gender: "M", DateOfBirth: "1960-07-01"}

	_, err := f.svc.RegisterTeacher(context.Background(), &dto.TeacherRegistrationRequest{
		SerialNumber: v.SerialNumber, PIN: v.PIN, PersonRequest: person, EmploymentDate: "1925-09-01",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.False(t, f.db.voucher(v.ID).IsUsed)

	admin := NewTeacherService(f.deps)
	_, err = admin.Create(context.Background(), f.school.ID, &dto.CreateTeacherRequest{
		PersonRequest: person, EmploymentDate: "1925-09-01",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	resp, err := f.svc.RegisterTeacher(context.Background(), &dto.TeacherRegistrationRequest{
		SerialNumber: v.SerialNumber, PIN: v.PIN, PersonRequest: person, EmploymentDate: "2025-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "TCHTEST000125", resp.Teacher.TeacherID)
}

func TestRegisterTeacher_RejectsUnknownOrInactiveSubjects(t *testing.T) {
	f := newRegistrationFixture(t)
	v := f.db.addVoucher(models.Voucher{
		SchoolID: f.school.ID, Kind: models.VoucherKindTeacher, SerialNumber: "TTES-00000003", PIN: "444444444444",
	})
	retired := f.db.addSubject(models.Subject{SchoolID: f.school.ID, Name: "Latin", Code: "LAT"})
	other := f.db.addSchool(models.School{Name: "Other School", Code: "OS", IsActive: true})
	foreign := f.db.addSubject(models.Subject{SchoolID: other.ID, Name: "French", Code: "FRE", IsActive: true})
	person := dto.PersonRequest{FirstName: "Kwame", LastName: "Boateng", Gender: "M", DateOfBirth: "1988-07-01"}

	for _, ids := range [][]int64{{retired.ID}, {foreign.ID}, {9999}} {
		_, err := f.svc.RegisterTeacher(context.Background(), &dto.TeacherRegistrationRequest{
			SerialNumber: v.SerialNumber, PIN: v.PIN, PersonRequest: person, SubjectIDs: ids,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "subjects %v", ids)
	}
	assert.False(t, f.db.voucher(v.ID).IsUsed)
}
