package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/rs/zerolog"
)

// memDB is an in-memory stand-in for the Postgres schema. Transactions are
// serialised and roll back by restoring a snapshot, which is enough to observe
// the row-lock and atomicity behaviour the services rely on.
type memDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID     int64
	schools    map[int64]models.School
	users      map[int64]models.User
	tokens     map[string]memToken
	programmes map[int64]models.Programme
	subjects   map[int64]models.Subject
	assigned   map[int64][]int64
	classes    map[int64]models.Class
	years      map[int64]models.AcademicYear
	terms      map[int64]models.Term
	students   map[int64]models.Student
	teachers   map[int64]models.Teacher
	guardians  map[int64]models.Guardian
	links      map[int64]models.StudentGuardian
	vouchers   map[int64]models.Voucher
	sequences  map[string]int
}

type memToken struct {
	userID  int64
	expires time.Time
	revoked bool
}

func newMemDB() *memDB {
	return &memDB{
		schools:    map[int64]models.School{},
		users:      map[int64]models.User{},
		tokens:     map[string]memToken{},
		programmes: map[int64]models.Programme{},
		subjects:   map[int64]models.Subject{},
		assigned:   map[int64][]int64{},
		classes:    map[int64]models.Class{},
		years:      map[int64]models.AcademicYear{},
		terms:      map[int64]models.Term{},
		students:   map[int64]models.Student{},
		teachers:   map[int64]models.Teacher{},
		guardians:  map[int64]models.Guardian{},
		links:      map[int64]models.StudentGuardian{},
		vouchers:   map[int64]models.Voucher{},
		sequences:  map[string]int{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memDB) snapshot() *memDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memDB{
		nextID:     m.nextID,
		schools:    copyMap(m.schools),
		users:      copyMap(m.users),
		tokens:     copyMap(m.tokens),
		programmes: copyMap(m.programmes),
		subjects:   copyMap(m.subjects),
		assigned:   copyMap(m.assigned),
		classes:    copyMap(m.classes),
		years:      copyMap(m.years),
		terms:      copyMap(m.terms),
		students:   copyMap(m.students),
		teachers:   copyMap(m.teachers),
		guardians:  copyMap(m.guardians),
		links:      copyMap(m.links),
		vouchers:   copyMap(m.vouchers),
		sequences:  copyMap(m.sequences),
	}
}

func (m *memDB) restore(s *memDB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schools, m.users, m.tokens = s.schools, s.users, s.tokens
	m.programmes, m.classes, m.years, m.terms = s.programmes, s.classes, s.years, s.terms
	m.subjects, m.assigned = s.subjects, s.assigned
	m.students, m.teachers, m.guardians, m.links = s.students, s.teachers, s.guardians, s.links
	m.vouchers, m.sequences = s.vouchers, s.sequences
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

type memTxKey struct{}

// WithTransaction implements db.Transactor
func (m *memDB) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx, nil)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true), nil); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

var _ db.Transactor = (*memDB)(nil)

// deps wires every store of the services to m
func (m *memDB) deps() Deps {
	return Deps{
		Tx:         m,
		Schools:    memSchools{m},
		Users:      memUsers{m},
		Tokens:     memTokens{m},
		Programmes: memProgrammes{m},
		Subjects:   memSubjects{m},
		Classes:    memClasses{m},
		Academic:   memAcademic{m},
		Students:   memStudents{m},
		Teachers:   memTeachers{m},
		Guardians:  memGuardians{m},
		Vouchers:   memVouchers{m},
		Sequences:  memSequences{m},
		Notifier:   &recordingNotifier{},
		Events:     &recordingPublisher{},
		Policy:     DefaultPolicy(),
		Logger:     zerolog.Nop(),
	}
}

// counts returns the row counts tests assert on
func (m *memDB) counts() (students, users, links int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.students), len(m.users), len(m.links)
}

func (m *memDB) addSchool(s models.School) *models.School {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	if s.TermsPerYear == 0 {
		s.TermsPerYear = 3
	}
	m.schools[s.ID] = s
	return &s
}

func (m *memDB) addClass(c models.Class) *models.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	m.classes[c.ID] = c
	return &c
}

func (m *memDB) addSubject(sub models.Subject) *models.Subject {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = m.id()
	if sub.Type == "" {
		sub.Type = models.SubjectCore
	}
	m.subjects[sub.ID] = sub
	return &sub
}

func (m *memDB) addVoucher(v models.Voucher) *models.Voucher {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = m.id()
	m.vouchers[v.ID] = v
	return &v
}

func (m *memDB) voucher(id int64) models.Voucher {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vouchers[id]
}

func (m *memDB) allStudents() []models.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func page[T any](items []T, params dto.ListParams) ([]T, int64) {
	total := int64(len(items))
	size := params.Size
	if size <= 0 {
		size = len(items)
	}
	start := (params.Page - 1) * size
	if params.Page < 1 {
		start = 0
	}
	if start >= len(items) {
		return []T{}, total
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// --- schools ---

type memSchools struct{ m *memDB }

func (s memSchools) Create(_ context.Context, school *models.School) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.schools {
		if existing.Code == school.Code || existing.Slug == school.Slug {
			return apperrors.ErrSchoolAlreadyExists
		}
	}
	school.ID = s.m.id()
	school.CreatedAt = time.Now()
	s.m.schools[school.ID] = *school
	return nil
}

func (s memSchools) GetByID(_ context.Context, id int64) (*models.School, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	school, ok := s.m.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	return &school, nil
}

func (s memSchools) Update(_ context.Context, school *models.School) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.schools[school.ID]; !ok {
		return apperrors.ErrSchoolNotFound
	}
	s.m.schools[school.ID] = *school
	return nil
}

func (s memSchools) SetActive(_ context.Context, id int64, active bool) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	school, ok := s.m.schools[id]
	if !ok {
		return apperrors.ErrSchoolNotFound
	}
	school.IsActive = active
	s.m.schools[id] = school
	return nil
}

func (s memSchools) UpdateLogo(_ context.Context, id int64, logoURL *string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	school, ok := s.m.schools[id]
	if !ok {
		return apperrors.ErrSchoolNotFound
	}
	school.LogoURL = logoURL
	s.m.schools[id] = school
	return nil
}

func (s memSchools) List(_ context.Context, params dto.ListParams) ([]*models.School, int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.School
	for _, school := range s.m.schools {
		school := school
		out = append(out, &school)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, params)
	return items, total, nil
}

func (s memSchools) CodeExists(_ context.Context, code string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, school := range s.m.schools {
		if school.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s memSchools) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, school := range s.m.schools {
		if school.Slug == slug && school.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s memSchools) Count(_ context.Context) (total, active int64, err error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, school := range s.m.schools {
		total++
		if school.IsActive {
			active++
		}
	}
	return total, active, nil
}

// --- users and tokens ---

type memUsers struct{ m *memDB }

func (u memUsers) Create(_ context.Context, user *models.User) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	for _, existing := range u.m.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return apperrors.ErrUsernameAlreadyExists
		}
		if user.Email != nil && existing.Email != nil && strings.EqualFold(*existing.Email, *user.Email) {
			return apperrors.NewConflictError("email already registered")
		}
	}
	user.ID = u.m.id()
	u.m.users[user.ID] = *user
	return nil
}

func (u memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	user, ok := u.m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (u memUsers) GetByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	for _, user := range u.m.users {
		if strings.EqualFold(user.Username, identifier) ||
			(user.Email != nil && strings.EqualFold(*user.Email, identifier)) {
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (u memUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	for _, user := range u.m.users {
		if strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (u memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	for _, user := range u.m.users {
		if user.Email != nil && strings.EqualFold(*user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (u memUsers) update(id int64, fn func(*models.User)) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	user, ok := u.m.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	fn(&user)
	u.m.users[id] = user
	return nil
}

func (u memUsers) UpdatePassword(_ context.Context, userID int64, hash string) error {
	return u.update(userID, func(user *models.User) { user.Password = hash })
}

func (u memUsers) UpdateLastLogin(_ context.Context, userID int64) error {
	now := time.Now()
	return u.update(userID, func(user *models.User) { user.LastLoginAt = &now })
}

func (u memUsers) SetActive(_ context.Context, userID int64, active bool) error {
	return u.update(userID, func(user *models.User) { user.IsActive = active })
}

func (u memUsers) UpdateProfile(_ context.Context, userID int64, firstName, lastName string, email *string) error {
	return u.update(userID, func(user *models.User) {
		user.FirstName, user.LastName, user.Email = firstName, lastName, email
	})
}

type memTokens struct{ m *memDB }

func (t memTokens) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	t.m.tokens[token] = memToken{userID: userID, expires: expiryDate}
	return nil
}

func (t memTokens) GetUserIDByToken(_ context.Context, token string) (int64, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	tok, ok := t.m.tokens[token]
	if !ok || tok.revoked {
		return 0, apperrors.ErrTokenNotFound
	}
	if time.Now().After(tok.expires) {
		return 0, apperrors.ErrTokenExpired
	}
	return tok.userID, nil
}

func (t memTokens) RevokeToken(_ context.Context, token string) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	tok, ok := t.m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	tok.revoked = true
	t.m.tokens[token] = tok
	return nil
}

func (t memTokens) RevokeAllUserTokens(_ context.Context, userID int64) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for k, tok := range t.m.tokens {
		if tok.userID == userID {
			tok.revoked = true
			t.m.tokens[k] = tok
		}
	}
	return nil
}

func (t memTokens) CleanupExpiredTokens(_ context.Context) (int64, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	var n int64
	for k, tok := range t.m.tokens {
		if tok.revoked || time.Now().After(tok.expires) {
			delete(t.m.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- programmes and classes ---

type memProgrammes struct{ m *memDB }

func (p memProgrammes) Create(_ context.Context, prog *models.Programme) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	prog.ID = p.m.id()
	p.m.programmes[prog.ID] = *prog
	return nil
}

func (p memProgrammes) GetByID(_ context.Context, schoolID, id int64) (*models.Programme, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	prog, ok := p.m.programmes[id]
	if !ok || prog.SchoolID != schoolID {
		return nil, apperrors.ErrProgrammeNotFound
	}
	return &prog, nil
}

func (p memProgrammes) Update(_ context.Context, prog *models.Programme) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	p.m.programmes[prog.ID] = *prog
	return nil
}

func (p memProgrammes) SetActive(_ context.Context, schoolID, id int64, active bool) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	prog, ok := p.m.programmes[id]
	if !ok || prog.SchoolID != schoolID {
		return apperrors.ErrProgrammeNotFound
	}
	prog.IsActive = active
	p.m.programmes[id] = prog
	return nil
}

func (p memProgrammes) List(_ context.Context, schoolID int64, params dto.ListParams) ([]*models.Programme, int64, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	var out []*models.Programme
	for _, prog := range p.m.programmes {
		if prog.SchoolID == schoolID {
			prog := prog
			out = append(out, &prog)
		}
	}
	items, total := page(out, params)
	return items, total, nil
}

func (p memProgrammes) CodeExists(_ context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, prog := range p.m.programmes {
		if prog.SchoolID == schoolID && prog.Code == code && prog.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (p memProgrammes) NameExists(_ context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, prog := range p.m.programmes {
		if prog.SchoolID == schoolID && strings.EqualFold(prog.Name, name) && prog.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memSubjects struct{ m *memDB }

func (p memSubjects) Create(_ context.Context, subject *models.Subject) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	subject.ID = p.m.id()
	p.m.subjects[subject.ID] = *subject
	return nil
}

func (p memSubjects) GetByID(_ context.Context, schoolID, id int64) (*models.Subject, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	subject, ok := p.m.subjects[id]
	if !ok || subject.SchoolID != schoolID {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &subject, nil
}

func (p memSubjects) Update(_ context.Context, subject *models.Subject) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	p.m.subjects[subject.ID] = *subject
	return nil
}

func (p memSubjects) SetActive(_ context.Context, schoolID, id int64, active bool) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	subject, ok := p.m.subjects[id]
	if !ok || subject.SchoolID != schoolID {
		return apperrors.ErrSubjectNotFound
	}
	subject.IsActive = active
	p.m.subjects[id] = subject
	return nil
}

func (p memSubjects) Delete(_ context.Context, schoolID, id int64) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	subject, ok := p.m.subjects[id]
	if !ok || subject.SchoolID != schoolID {
		return apperrors.ErrSubjectNotFound
	}
	delete(p.m.subjects, id)
	return nil
}

func (p memSubjects) List(_ context.Context, schoolID int64, f dto.SubjectFilter) ([]*models.Subject, int64, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	var out []*models.Subject
	for _, subject := range p.m.subjects {
		if subject.SchoolID == schoolID && (f.Type == "" || subject.Type == f.Type) {
			subject := subject
			out = append(out, &subject)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	items, total := page(out, f.ListParams)
	return items, total, nil
}

func (p memSubjects) ListByIDs(_ context.Context, schoolID int64, ids []int64) ([]*models.Subject, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	var out []*models.Subject
	for _, id := range ids {
		if subject, ok := p.m.subjects[id]; ok && subject.SchoolID == schoolID {
			out = append(out, &subject)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (p memSubjects) CodeExists(_ context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, subject := range p.m.subjects {
		if subject.SchoolID == schoolID && subject.Code == code && subject.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (p memSubjects) NameExists(_ context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, subject := range p.m.subjects {
		if subject.SchoolID == schoolID && strings.EqualFold(subject.Name, name) && subject.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (p memSubjects) CountByType(_ context.Context, schoolID int64) (map[models.SubjectType]int64, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	counts := map[models.SubjectType]int64{}
	for _, subject := range p.m.subjects {
		if subject.SchoolID == schoolID {
			counts[subject.Type]++
		}
	}
	return counts, nil
}

func (p memSubjects) ReplaceTeacherSubjects(_ context.Context, teacherID int64, subjectIDs []int64) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, id := range subjectIDs {
		if _, ok := p.m.subjects[id]; !ok {
			return apperrors.ErrSubjectNotFound
		}
	}
	p.m.assigned[teacherID] = append([]int64(nil), subjectIDs...)
	return nil
}

func (p memSubjects) ListForTeachers(_ context.Context, teacherIDs []int64) (map[int64][]models.Subject, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	out := make(map[int64][]models.Subject, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		for _, id := range p.m.assigned[teacherID] {
			out[teacherID] = append(out[teacherID], p.m.subjects[id])
		}
		sort.Slice(out[teacherID], func(i, j int) bool { return out[teacherID][i].Name < out[teacherID][j].Name })
	}
	return out, nil
}

func (p memSubjects) CountTeachers(_ context.Context, subjectID int64) (int64, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	var n int64
	for _, ids := range p.m.assigned {
		for _, id := range ids {
			if id == subjectID {
				n++
			}
		}
	}
	return n, nil
}

type memClasses struct{ m *memDB }

// load returns the class with its programme and enrollment, as the joined select does.
// The caller holds m.mu.
func (c memClasses) load(schoolID, id int64) (*models.Class, error) {
	class, ok := c.m.classes[id]
	if !ok || class.SchoolID != schoolID {
		return nil, apperrors.ErrClassNotFound
	}
	if class.ProgrammeID != nil {
		if prog, ok := c.m.programmes[*class.ProgrammeID]; ok {
			class.Programme = &prog
		}
	}
	class.Enrollment = 0
	for _, s := range c.m.students {
		if s.IsActive && s.CurrentClassID != nil && *s.CurrentClassID == id {
			class.Enrollment++
		}
	}
	return &class, nil
}

func (c memClasses) Create(_ context.Context, class *models.Class) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	class.ID = c.m.id()
	c.m.classes[class.ID] = *class
	return nil
}

func (c memClasses) GetByID(_ context.Context, schoolID, id int64) (*models.Class, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.load(schoolID, id)
}

func (c memClasses) LockForEnrollment(ctx context.Context, schoolID, id int64) (*models.Class, error) {
	if ctx.Value(memTxKey{}) == nil {
		return nil, fmt.Errorf("LockForEnrollment outside a transaction")
	}
	return c.GetByID(ctx, schoolID, id)
}

func (c memClasses) Update(_ context.Context, class *models.Class) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.classes[class.ID] = *class
	return nil
}

func (c memClasses) SetActive(_ context.Context, schoolID, id int64, active bool) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	class, ok := c.m.classes[id]
	if !ok || class.SchoolID != schoolID {
		return apperrors.ErrClassNotFound
	}
	class.IsActive = active
	c.m.classes[id] = class
	return nil
}

func (c memClasses) List(ctx context.Context, schoolID int64, f dto.ClassFilter) ([]*models.Class, int64, error) {
	all, err := c.ListAll(ctx, schoolID)
	if err != nil {
		return nil, 0, err
	}
	items, total := page(all, f.ListParams)
	return items, total, nil
}

func (c memClasses) ListAll(_ context.Context, schoolID int64) ([]*models.Class, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var out []*models.Class
	for id, class := range c.m.classes {
		if class.SchoolID == schoolID {
			loaded, _ := c.load(schoolID, id)
			out = append(out, loaded)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memClasses) DuplicateExists(_ context.Context, class *models.Class) (bool, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	for _, other := range c.m.classes {
		if other.ID != class.ID && other.SchoolID == class.SchoolID && other.Stage == class.Stage &&
			other.Level == class.Level && strings.EqualFold(other.Stream, class.Stream) {
			return true, nil
		}
	}
	return false, nil
}

func (c memClasses) CountActive(_ context.Context, schoolID int64) (int64, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	var n int64
	for _, class := range c.m.classes {
		if class.SchoolID == schoolID && class.IsActive {
			n++
		}
	}
	return n, nil
}

// --- academic calendar ---

type memAcademic struct{ m *memDB }

func (a memAcademic) CreateYear(_ context.Context, y *models.AcademicYear) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for _, other := range a.m.years {
		if other.SchoolID == y.SchoolID && other.Name == y.Name {
			return apperrors.ErrAcademicYearExists
		}
	}
	y.ID = a.m.id()
	a.m.years[y.ID] = *y
	return nil
}

func (a memAcademic) GetYear(_ context.Context, schoolID, id int64) (*models.AcademicYear, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	y, ok := a.m.years[id]
	if !ok || y.SchoolID != schoolID {
		return nil, apperrors.ErrAcademicYearNotFound
	}
	return &y, nil
}

func (a memAcademic) CurrentYear(_ context.Context, schoolID int64) (*models.AcademicYear, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for _, y := range a.m.years {
		if y.SchoolID == schoolID && y.IsCurrent {
			return &y, nil
		}
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

func (a memAcademic) UpdateYear(_ context.Context, y *models.AcademicYear) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if _, ok := a.m.years[y.ID]; !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	a.m.years[y.ID] = *y
	return nil
}

func (a memAcademic) ListYears(_ context.Context, schoolID int64) ([]*models.AcademicYear, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	var out []*models.AcademicYear
	for _, y := range a.m.years {
		if y.SchoolID == schoolID {
			y := y
			out = append(out, &y)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (a memAcademic) ClearCurrentYear(_ context.Context, schoolID, keepID int64) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for id, y := range a.m.years {
		if y.SchoolID == schoolID && id != keepID {
			y.IsCurrent = false
			a.m.years[id] = y
		}
	}
	return nil
}

func (a memAcademic) CreateTerm(_ context.Context, t *models.Term) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for _, other := range a.m.terms {
		if other.AcademicYearID == t.AcademicYearID && other.TermNumber == t.TermNumber {
			return apperrors.ErrTermAlreadyExists
		}
	}
	t.ID = a.m.id()
	a.m.terms[t.ID] = *t
	return nil
}

func (a memAcademic) GetTerm(_ context.Context, schoolID, id int64) (*models.Term, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	t, ok := a.m.terms[id]
	if !ok || t.SchoolID != schoolID {
		return nil, apperrors.ErrTermNotFound
	}
	return &t, nil
}

func (a memAcademic) CurrentTerm(_ context.Context, schoolID int64) (*models.Term, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for _, t := range a.m.terms {
		if t.SchoolID == schoolID && t.IsCurrent {
			return &t, nil
		}
	}
	return nil, apperrors.ErrTermNotFound
}

func (a memAcademic) UpdateTerm(_ context.Context, t *models.Term) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if _, ok := a.m.terms[t.ID]; !ok {
		return apperrors.ErrTermNotFound
	}
	a.m.terms[t.ID] = *t
	return nil
}

func (a memAcademic) ListTerms(_ context.Context, schoolID, yearID int64) ([]*models.Term, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	var out []*models.Term
	for _, t := range a.m.terms {
		if t.SchoolID == schoolID && t.AcademicYearID == yearID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TermNumber < out[j].TermNumber })
	return out, nil
}

func (a memAcademic) ClearCurrentTerm(_ context.Context, schoolID, keepID int64) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	for id, t := range a.m.terms {
		if t.SchoolID == schoolID && id != keepID {
			t.IsCurrent = false
			a.m.terms[id] = t
		}
	}
	return nil
}

// --- students and teachers ---

type memStudents struct{ m *memDB }

// load attaches the current class like the joined select. The caller holds m.mu.
func (s memStudents) load(st models.Student) *models.Student {
	if st.CurrentClassID != nil {
		if class, err := (memClasses{s.m}).load(st.SchoolID, *st.CurrentClassID); err == nil {
			st.CurrentClass = class
		}
	}
	st.Guardians = nil
	return &st
}

func (s memStudents) Create(_ context.Context, st *models.Student) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, other := range s.m.students {
		if other.StudentID == st.StudentID {
			return apperrors.ErrIdentifierExists
		}
	}
	st.ID = s.m.id()
	st.CreatedAt = time.Now()
	s.m.students[st.ID] = *st
	return nil
}

func (s memStudents) GetByID(_ context.Context, schoolID, id int64) (*models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.students[id]
	if !ok || st.SchoolID != schoolID {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.load(st), nil
}

func (s memStudents) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.students {
		if st.UserID != nil && *st.UserID == userID {
			return s.load(st), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s memStudents) update(schoolID, id int64, fn func(*models.Student)) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.students[id]
	if !ok || st.SchoolID != schoolID {
		return apperrors.ErrStudentNotFound
	}
	fn(&st)
	s.m.students[id] = st
	return nil
}

func (s memStudents) Update(_ context.Context, st *models.Student) error {
	return s.update(st.SchoolID, st.ID, func(stored *models.Student) {
		stored.Person = st.Person
		stored.CurrentClassID = st.CurrentClassID
	})
}

func (s memStudents) SetStatus(_ context.Context, schoolID, id int64, status models.StudentStatus, active bool) error {
	return s.update(schoolID, id, func(st *models.Student) { st.Status, st.IsActive = status, active })
}

func (s memStudents) SetActive(_ context.Context, schoolID, id int64, active bool) error {
	return s.update(schoolID, id, func(st *models.Student) { st.IsActive = active })
}

func (s memStudents) SetUserID(_ context.Context, schoolID, id, userID int64) error {
	return s.update(schoolID, id, func(st *models.Student) { st.UserID = &userID })
}

func (s memStudents) SetClass(_ context.Context, schoolID, id int64, classID *int64) error {
	return s.update(schoolID, id, func(st *models.Student) { st.CurrentClassID = classID })
}

func (s memStudents) ListAll(_ context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Student
	for _, st := range s.m.students {
		if st.SchoolID != schoolID {
			continue
		}
		if f.Status != "" && st.Status != f.Status {
			continue
		}
		if f.ClassID > 0 && (st.CurrentClassID == nil || *st.CurrentClassID != f.ClassID) {
			continue
		}
		out = append(out, s.load(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (s memStudents) List(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, int64, error) {
	all, err := s.ListAll(ctx, schoolID, f)
	if err != nil {
		return nil, 0, err
	}
	items, total := page(all, f.ListParams)
	return items, total, nil
}

func (s memStudents) EmailExists(_ context.Context, schoolID int64, email string, excludeID int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.students {
		if st.SchoolID == schoolID && st.ID != excludeID && strings.EqualFold(st.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s memStudents) GhanaCardExists(_ context.Context, card string, excludeID int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.students {
		if st.ID != excludeID && st.GhanaCardNumber != nil && *st.GhanaCardNumber == card {
			return true, nil
		}
	}
	return false, nil
}

func (s memStudents) CountActive(_ context.Context, schoolID int64) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var n int64
	for _, st := range s.m.students {
		if st.SchoolID == schoolID && st.IsActive {
			n++
		}
	}
	return n, nil
}

type memTeachers struct{ m *memDB }

func (t memTeachers) Create(_ context.Context, teacher *models.Teacher) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	teacher.ID = t.m.id()
	t.m.teachers[teacher.ID] = *teacher
	return nil
}

func (t memTeachers) GetByID(_ context.Context, schoolID, id int64) (*models.Teacher, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	teacher, ok := t.m.teachers[id]
	if !ok || teacher.SchoolID != schoolID {
		return nil, apperrors.ErrTeacherNotFound
	}
	return &teacher, nil
}

func (t memTeachers) GetByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, teacher := range t.m.teachers {
		if teacher.UserID != nil && *teacher.UserID == userID {
			return &teacher, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (t memTeachers) update(schoolID, id int64, fn func(*models.Teacher)) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	teacher, ok := t.m.teachers[id]
	if !ok || teacher.SchoolID != schoolID {
		return apperrors.ErrTeacherNotFound
	}
	fn(&teacher)
	t.m.teachers[id] = teacher
	return nil
}

func (t memTeachers) Update(_ context.Context, teacher *models.Teacher) error {
	return t.update(teacher.SchoolID, teacher.ID, func(stored *models.Teacher) { *stored = *teacher })
}

func (t memTeachers) SetActive(_ context.Context, schoolID, id int64, active bool) error {
	return t.update(schoolID, id, func(teacher *models.Teacher) { teacher.IsActive = active })
}

func (t memTeachers) SetUserID(_ context.Context, schoolID, id, userID int64) error {
	return t.update(schoolID, id, func(teacher *models.Teacher) { teacher.UserID = &userID })
}

func (t memTeachers) List(_ context.Context, schoolID int64, f dto.TeacherFilter) ([]*models.Teacher, int64, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	var out []*models.Teacher
	for _, teacher := range t.m.teachers {
		if teacher.SchoolID != schoolID {
			continue
		}
		if f.SubjectID > 0 && !containsID(t.m.assigned[teacher.ID], f.SubjectID) {
			continue
		}
		teacher := teacher
		out = append(out, &teacher)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, f.ListParams)
	return items, total, nil
}

func (t memTeachers) EmailExists(_ context.Context, schoolID int64, email string, excludeID int64) (bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, teacher := range t.m.teachers {
		if teacher.SchoolID == schoolID && teacher.ID != excludeID && strings.EqualFold(teacher.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (t memTeachers) GhanaCardExists(_ context.Context, card string, excludeID int64) (bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, teacher := range t.m.teachers {
		if teacher.ID != excludeID && teacher.GhanaCardNumber != nil && *teacher.GhanaCardNumber == card {
			return true, nil
		}
	}
	return false, nil
}

func (t memTeachers) CountActive(_ context.Context, schoolID int64) (int64, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	var n int64
	for _, teacher := range t.m.teachers {
		if teacher.SchoolID == schoolID && teacher.IsActive {
			n++
		}
	}
	return n, nil
}

// --- guardians ---

type memGuardians struct{ m *memDB }

func (g memGuardians) Create(_ context.Context, guardian *models.Guardian) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	guardian.ID = g.m.id()
	g.m.guardians[guardian.ID] = *guardian
	return nil
}

func (g memGuardians) GetByID(_ context.Context, schoolID, id int64) (*models.Guardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	guardian, ok := g.m.guardians[id]
	if !ok || guardian.SchoolID != schoolID {
		return nil, apperrors.ErrGuardianNotFound
	}
	return &guardian, nil
}

func (g memGuardians) GetByUserID(_ context.Context, userID int64) (*models.Guardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	for _, guardian := range g.m.guardians {
		if guardian.UserID != nil && *guardian.UserID == userID {
			return &guardian, nil
		}
	}
	return nil, apperrors.ErrGuardianNotFound
}

func (g memGuardians) find(schoolID int64, match func(models.Guardian) bool) (*models.Guardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	var found *models.Guardian
	for _, guardian := range g.m.guardians {
		if guardian.SchoolID == schoolID && match(guardian) && (found == nil || guardian.ID < found.ID) {
			guardian := guardian
			found = &guardian
		}
	}
	if found == nil {
		return nil, apperrors.ErrGuardianNotFound
	}
	return found, nil
}

func (g memGuardians) FindByEmail(_ context.Context, schoolID int64, email string) (*models.Guardian, error) {
	return g.find(schoolID, func(guardian models.Guardian) bool { return strings.EqualFold(guardian.Email, email) })
}

func (g memGuardians) FindByPhone(_ context.Context, schoolID int64, phone string) (*models.Guardian, error) {
	return g.find(schoolID, func(guardian models.Guardian) bool { return guardian.Phone == phone })
}

func (g memGuardians) Update(_ context.Context, guardian *models.Guardian) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	if _, ok := g.m.guardians[guardian.ID]; !ok {
		return apperrors.ErrGuardianNotFound
	}
	g.m.guardians[guardian.ID] = *guardian
	return nil
}

func (g memGuardians) SetUserID(_ context.Context, schoolID, id, userID int64) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	guardian, ok := g.m.guardians[id]
	if !ok || guardian.SchoolID != schoolID {
		return apperrors.ErrGuardianNotFound
	}
	guardian.UserID = &userID
	g.m.guardians[id] = guardian
	return nil
}

func (g memGuardians) List(_ context.Context, schoolID int64, f dto.GuardianFilter) ([]*models.Guardian, int64, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	var out []*models.Guardian
	for _, guardian := range g.m.guardians {
		if guardian.SchoolID == schoolID {
			guardian := guardian
			out = append(out, &guardian)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, f.ListParams)
	return items, total, nil
}

func (g memGuardians) Count(_ context.Context, schoolID int64) (int64, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	var n int64
	for _, guardian := range g.m.guardians {
		if guardian.SchoolID == schoolID {
			n++
		}
	}
	return n, nil
}

// Link enforces the pair and single-primary unique indexes
func (g memGuardians) Link(_ context.Context, l *models.StudentGuardian) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	for _, other := range g.m.links {
		if other.StudentID != l.StudentID {
			continue
		}
		if other.GuardianID == l.GuardianID {
			return apperrors.ErrGuardianAlreadyLinked
		}
		if other.IsPrimary && l.IsPrimary {
			return apperrors.ErrMultiplePrimaryGuardians
		}
	}
	l.ID = g.m.id()
	stored := *l
	stored.Guardian, stored.Student = nil, nil
	g.m.links[l.ID] = stored
	return nil
}

func (g memGuardians) GetLink(_ context.Context, studentID, guardianID int64) (*models.StudentGuardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	for _, l := range g.m.links {
		if l.StudentID == studentID && l.GuardianID == guardianID {
			return &l, nil
		}
	}
	return nil, apperrors.ErrGuardianLinkNotFound
}

func (g memGuardians) UpdateLink(_ context.Context, l *models.StudentGuardian) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	if l.IsPrimary {
		for _, other := range g.m.links {
			if other.StudentID == l.StudentID && other.ID != l.ID && other.IsPrimary {
				return apperrors.ErrMultiplePrimaryGuardians
			}
		}
	}
	stored := *l
	stored.Guardian, stored.Student = nil, nil
	g.m.links[l.ID] = stored
	return nil
}

func (g memGuardians) Unlink(_ context.Context, studentID, guardianID int64) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	for id, l := range g.m.links {
		if l.StudentID == studentID && l.GuardianID == guardianID {
			delete(g.m.links, id)
			return nil
		}
	}
	return apperrors.ErrGuardianLinkNotFound
}

func (g memGuardians) ClearPrimary(_ context.Context, studentID, exceptGuardianID int64) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	for id, l := range g.m.links {
		if l.StudentID == studentID && l.GuardianID != exceptGuardianID && l.IsPrimary {
			l.IsPrimary = false
			g.m.links[id] = l
		}
	}
	return nil
}

func (g memGuardians) ListByStudent(_ context.Context, studentID int64) ([]models.StudentGuardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	out := []models.StudentGuardian{}
	for _, l := range g.m.links {
		if l.StudentID == studentID {
			guardian := g.m.guardians[l.GuardianID]
			l.Guardian = &guardian
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (g memGuardians) ListWards(_ context.Context, guardianID int64) ([]models.StudentGuardian, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()
	out := []models.StudentGuardian{}
	for _, l := range g.m.links {
		if l.GuardianID == guardianID {
			st := g.m.students[l.StudentID]
			l.Student = &st
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- vouchers and sequences ---

type memVouchers struct{ m *memDB }

func (v memVouchers) Insert(_ context.Context, voucher *models.Voucher) (bool, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, other := range v.m.vouchers {
		if other.SerialNumber == voucher.SerialNumber {
			return false, nil
		}
	}
	voucher.ID = v.m.id()
	stored := *voucher
	stored.Class = nil
	v.m.vouchers[voucher.ID] = stored
	return true, nil
}

func (v memVouchers) withClass(voucher models.Voucher) *models.Voucher {
	if voucher.ClassID != nil {
		if class, err := (memClasses{v.m}).load(voucher.SchoolID, *voucher.ClassID); err == nil {
			voucher.Class = class
		}
	}
	return &voucher
}

func (v memVouchers) GetByID(_ context.Context, schoolID, id int64) (*models.Voucher, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	voucher, ok := v.m.vouchers[id]
	if !ok || voucher.SchoolID != schoolID {
		return nil, apperrors.ErrVoucherNotFound
	}
	return v.withClass(voucher), nil
}

func (v memVouchers) FindBySerialAndPIN(_ context.Context, serial, pin string) (*models.Voucher, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, voucher := range v.m.vouchers {
		if strings.EqualFold(voucher.SerialNumber, serial) && voucher.PIN == pin {
			return v.withClass(voucher), nil
		}
	}
	return nil, apperrors.ErrVoucherNotFound
}

func (v memVouchers) GetForUpdate(ctx context.Context, id int64) (*models.Voucher, error) {
	if ctx.Value(memTxKey{}) == nil {
		return nil, fmt.Errorf("GetForUpdate outside a transaction")
	}
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	voucher, ok := v.m.vouchers[id]
	if !ok {
		return nil, apperrors.ErrVoucherNotFound
	}
	return v.withClass(voucher), nil
}

func (v memVouchers) MarkUsed(_ context.Context, id int64, studentID, teacherID *int64) (bool, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	voucher, ok := v.m.vouchers[id]
	if !ok || voucher.IsUsed {
		return false, nil
	}
	now := time.Now()
	voucher.IsUsed, voucher.UsedAt = true, &now
	voucher.UsedByStudentID, voucher.UsedByTeacherID = studentID, teacherID
	v.m.vouchers[id] = voucher
	return true, nil
}

func (v memVouchers) ListAll(_ context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	var out []*models.Voucher
	for _, voucher := range v.m.vouchers {
		if voucher.SchoolID != schoolID {
			continue
		}
		if f.Kind != "" && voucher.Kind != f.Kind {
			continue
		}
		if f.IsUsed != nil && voucher.IsUsed != *f.IsUsed {
			continue
		}
		out = append(out, v.withClass(voucher))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v memVouchers) List(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, int64, error) {
	all, err := v.ListAll(ctx, schoolID, f)
	if err != nil {
		return nil, 0, err
	}
	items, total := page(all, f.ListParams)
	return items, total, nil
}

func (v memVouchers) Stats(_ context.Context, schoolID int64) (*models.VoucherStats, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	stats := &models.VoucherStats{}
	for _, voucher := range v.m.vouchers {
		if voucher.SchoolID != schoolID {
			continue
		}
		stats.Total++
		if voucher.IsUsed {
			stats.Used++
		} else {
			stats.Unused++
		}
		if voucher.Kind == models.VoucherKindTeacher {
			stats.TeacherTotal++
		} else {
			stats.StudentTotal++
		}
		if voucher.CanSignin {
			stats.SigninEnabled++
		}
	}
	return stats, nil
}

type memSequences struct{ m *memDB }

func (s memSequences) Next(ctx context.Context, schoolID int64, entityType string, year int) (int, error) {
	if ctx.Value(memTxKey{}) == nil {
		return 0, fmt.Errorf("sequence drawn outside a transaction")
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := fmt.Sprintf("%d/%s/%d", schoolID, entityType, year)
	s.m.sequences[key]++
	return s.m.sequences[key], nil
}

// --- side effects ---

type recordingNotifier struct {
	mu   sync.Mutex
	sent []email.CredentialsMessage
}

func (n *recordingNotifier) SendCredentials(_ context.Context, msg email.CredentialsMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, m := range n.sent {
		out = append(out, m.ToEmail)
	}
	return out
}

type publishedEvent struct {
	schoolID  int64
	eventType string
	payload   interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(schoolID int64, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{schoolID, eventType, payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

var (
	_ SchoolStore    = memSchools{}
	_ UserStore      = memUsers{}
	_ TokenStore     = memTokens{}
	_ ProgrammeStore = memProgrammes{}
	_ ClassStore     = memClasses{}
	_ AcademicStore  = memAcademic{}
	_ StudentStore   = memStudents{}
	_ TeacherStore   = memTeachers{}
	_ GuardianStore  = memGuardians{}
	_ VoucherStore   = memVouchers{}
	_ SequenceStore  = memSequences{}
)
