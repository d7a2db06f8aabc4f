package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/csvio"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studentFixture struct {
	db     *memDB
	deps   Deps
	svc    *StudentService
	school *models.School
	class  *models.Class
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	class := m.addClass(models.Class{SchoolID: school.ID, Stage: models.StagePrimary, Level: 1, Stream: "A", MaxStudents: 50, IsActive: true})
	d := m.deps()
	return &studentFixture{db: m, deps: d, svc: NewStudentService(d), school: school, class: class}
}

func createRequest(first, email string) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		PersonRequest: dto.PersonRequest{
			FirstName:   first,
			LastName:    "Owusu",
			Gender:      "M",
			DateOfBirth: "2011-05-20",
			Email:       email,
		},
	}
}

func TestStudentCreate_ConcurrentIDsAreDistinct(t *testing.T) {
	f := newStudentFixture(t)
	const n = 25

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.svc.Create(context.Background(), f.school.ID, createRequest(fmt.Sprintf("Kofi%d", i), ""))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[resp.Student.StudentID] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, ids, n)
	yy := time.Now().Year() % 100
	for seq := 1; seq <= n; seq++ {
		assert.True(t, ids[fmt.Sprintf("STUTEST%04d%02d", seq, yy)], "sequence %d missing", seq)
	}
}

func TestStudentCreate_WithAccount(t *testing.T) {
	f := newStudentFixture(t)
	req := createRequest("Kofi", "Kofi.Owusu@Example.com")
	req.CreateAccount = true
	req.ClassID = &f.class.ID
	req.YearAdmitted = 2024

	resp, err := f.svc.Create(context.Background(), f.school.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "STUTEST000124", resp.Student.StudentID)
	assert.Equal(t, "kofi.owusu@example.com", resp.Student.Email)
	require.NotNil(t, resp.Credentials)
	assert.Equal(t, resp.Student.StudentID, resp.Credentials.Username)

	user, err := memUsers{f.db}.GetByID(context.Background(), *resp.Student.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role())
	assert.Contains(t, f.deps.Events.(*recordingPublisher).types(), websocket.EventStudentCreated)

	_, err = f.svc.Create(context.Background(), f.school.ID, createRequest("Kwesi", "kofi.owusu@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrPersonEmailAlreadyExist)
}

func TestStudentCreate_Validation(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	req := createRequest("Kofi", "")
	req.CreateAccount = true
	_, err := f.svc.Create(ctx, f.school.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrMissingContactInfo)

	req = createRequest("Kofi", "")
	req.DateOfBirth = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	_, err = f.svc.Create(ctx, f.school.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = createRequest("Kofi", "")
	req.YearAdmitted = time.Now().Year() + 2
	_, err = f.svc.Create(ctx, f.school.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = createRequest("Kofi", "")
	req.YearAdmitted = 1999
	_, err = f.svc.Create(ctx, f.school.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	students, _, _ := f.db.counts()
	assert.Zero(t, students)
}

func TestStudentSetStatus_DisablesAccount(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	req := createRequest("Kofi", "kofi@example.com")
	req.CreateAccount = true
	created, err := f.svc.Create(ctx, f.school.ID, req)
	require.NoError(t, err)
	id := created.Student.ID

	student, err := f.svc.SetStatus(ctx, f.school.ID, id, models.StudentStatusSuspended)
	require.NoError(t, err)
	assert.False(t, student.IsActive)
	user, err := memUsers{f.db}.GetByID(ctx, *student.UserID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	student, err = f.svc.SetStatus(ctx, f.school.ID, id, models.StudentStatusActive)
	require.NoError(t, err)
	assert.True(t, student.IsActive)
	user, err = memUsers{f.db}.GetByID(ctx, *student.UserID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = f.svc.SetStatus(ctx, f.school.ID, id, "expelled")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentUpdate_SyncsAccountAndKeepsID(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	req := createRequest("Kofi", "kofi@example.com")
	req.CreateAccount = true
	created, err := f.svc.Create(ctx, f.school.ID, req)
	require.NoError(t, err)

	name, mail := "Kwabena", "kwabena@example.com"
	updated, err := f.svc.Update(ctx, f.school.ID, created.Student.ID, &dto.UpdateStudentRequest{
		FirstName: &name, Email: &mail, ClassID: &f.class.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, created.Student.StudentID, updated.StudentID)
	assert.Equal(t, &f.class.ID, updated.CurrentClassID)

	user, err := memUsers{f.db}.GetByID(ctx, *updated.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Kwabena", user.FirstName)
	assert.Equal(t, "kwabena@example.com", user.EmailValue())

	empty := ""
	_, err = f.svc.Update(ctx, f.school.ID, created.Student.ID, &dto.UpdateStudentRequest{Email: &empty})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentUpdate_YearAdmittedIsFixed(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	req := createRequest("Kofi", "")
	req.YearAdmitted = 2024
	created, err := f.svc.Create(ctx, f.school.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "STUTEST000124", created.Student.StudentID)

	same := 2024
	updated, err := f.svc.Update(ctx, f.school.ID, created.Student.ID, &dto.UpdateStudentRequest{YearAdmitted: &same})
	require.NoError(t, err)
	assert.Equal(t, 2024, updated.YearAdmitted)

	other := 2023
	_, err = f.svc.Update(ctx, f.school.ID, created.Student.ID, &dto.UpdateStudentRequest{YearAdmitted: &other})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	stored, err := f.svc.Get(ctx, f.school.ID, created.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2024, stored.YearAdmitted)
	assert.Equal(t, "STUTEST000124", stored.StudentID)
}

func TestStudentBulkMove_RespectsCapacity(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	target := f.db.addClass(models.Class{SchoolID: f.school.ID, Stage: models.StagePrimary, Level: 2, Stream: "A", MaxStudents: 2, IsActive: true})

	var ids []int64
	for i := 0; i < 3; i++ {
		resp, err := f.svc.Create(ctx, f.school.ID, createRequest(fmt.Sprintf("Kofi%d", i), ""))
		require.NoError(t, err)
		ids = append(ids, resp.Student.ID)
	}

	result, err := f.svc.BulkMove(ctx, f.school.ID, &dto.BulkMoveRequest{
		StudentIDs:    append(ids, ids[0], 424242),
		TargetClassID: target.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, ids[:2], result.Moved)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, ids[2], result.Failed[0].ID)
	assert.Contains(t, result.Failed[0].Message, "capacity")
	assert.Equal(t, int64(424242), result.Failed[1].ID)

	class, err := memClasses{f.db}.GetByID(ctx, f.school.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, class.Enrollment)
}

func TestStudentExportImport_RoundTrip(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	card := "GHA-123456789-0"
	inputs := []*dto.CreateStudentRequest{
		{
			PersonRequest: dto.PersonRequest{
				FirstName: "Ama", MiddleName: "Serwaa", LastName: "Mensah", Gender: "F", DateOfBirth: "2012-03-14",
				Email: "ama@example.com", Phone: "+233241234567", Address: "12 Ring Road, Accra", GhanaCardNumber: card,
			},
			YearAdmitted: 2024,
			ClassID:      &f.class.ID,
		},
		{
			PersonRequest: dto.PersonRequest{FirstName: "Kojo", LastName: "Asante", Gender: "M", DateOfBirth: "2010-11-02"},
			YearAdmitted:  2023,
		},
	}
	for _, in := range inputs {
		_, err := f.svc.Create(ctx, f.school.ID, in)
		require.NoError(t, err)
	}

	var exported bytes.Buffer
	n, err := f.svc.ExportCSV(ctx, f.school.ID, dto.StudentFilter{}, &exported)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	original := exported.String()

	other := f.db.addSchool(models.School{Name: "Other School", Code: "OTH", IsActive: true})
	f.db.addClass(models.Class{SchoolID: other.ID, Stage: models.StagePrimary, Level: 1, Stream: "A", MaxStudents: 50, IsActive: true})

	// ghana card numbers are unique across schools
	f.db.mu.Lock()
	for id, st := range f.db.students {
		st.GhanaCardNumber = nil
		f.db.students[id] = st
	}
	f.db.mu.Unlock()

	result, err := f.svc.ImportCSV(ctx, other.ID, strings.NewReader(original), nil)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, 2, result.SuccessCount)

	var reexported bytes.Buffer
	_, err = f.svc.ExportCSV(ctx, other.ID, dto.StudentFilter{}, &reexported)
	require.NoError(t, err)

	before, err := csvio.ReadStudents(strings.NewReader(original), 0)
	require.NoError(t, err)
	after, err := csvio.ReadStudents(&reexported, 0)
	require.NoError(t, err)
	require.Len(t, after, len(before))

	byName := func(rows []csvio.StudentRow) map[string]csvio.StudentRecord {
		out := map[string]csvio.StudentRecord{}
		for _, r := range rows {
			rec := r.Record
			rec.StudentID = ""
			out[rec.FirstName] = rec
		}
		return out
	}
	assert.Equal(t, byName(before), byName(after))
	assert.Equal(t, card, byName(after)["Ama"].GhanaCardNumber)
	assert.Equal(t, "P1A", byName(after)["Ama"].ClassName)
}

func TestStudentImport_RowErrors(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	tooYoung := time.Now().AddDate(-3, 0, 0).Format("02/01/2006")

	data := "first_name,last_name,gender,date_of_birth,year_admitted,class_name,email\n" +
		"Kofi,Owusu,m,14/03/2011,2024,p1a,kofi@example.com\n" +
		"Ama,Mensah,X,2011-01-01,2024,,\n" +
		"Yaw,Boateng,M," + tooYoung + ",2024,,\n" +
		"Efua,Asante,F,2011-01-01,1999,,\n" +
		"Akua,Asante,F,2011-01-01,2024,JHS3Z,\n" +
		"Kwesi,Owusu,M,2011-01-01,2024,,kofi@example.com\n" +
		"Abena,Owusu,F,2011-01-01,2024,,\n"

	result, err := f.svc.ImportCSV(ctx, f.school.ID, strings.NewReader(data), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 5, result.ErrorCount)

	rows := make([]int, 0, len(result.Errors))
	for _, e := range result.Errors {
		rows = append(rows, e.Row)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, rows)
	assert.Contains(t, result.Errors[1].Message, "age")
	assert.Contains(t, result.Errors[4].Message, apperrors.ErrPersonEmailAlreadyExist.Error())

	kofi, err := memStudents{f.db}.GetByID(ctx, f.school.ID, f.db.allStudents()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, &f.class.ID, kofi.CurrentClassID)
	assert.Contains(t, f.deps.Events.(*recordingPublisher).types(), websocket.EventStudentImported)
}

func TestStudentImport_HeaderProblemsFailTheFile(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.ImportCSV(context.Background(), f.school.ID, strings.NewReader("first_name,last_name\nKofi,Owusu\n"), nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.ImportCSV(context.Background(), f.school.ID, strings.NewReader(""), nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
