package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/validation"
)

type fakeUsers struct {
	services.UserStore
	existing map[string]bool
	created  []*models.User
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.existing[username], nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, u)
	return nil
}

func TestAcademicYearFor(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		startMonth int
		wantName   string
		wantStart  string
		wantEnd    string
	}{
		{"after start", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), 9, "2026-2027", "2026-09-01", "2027-08-31"},
		{"before start", time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), 9, "2026-2027", "2026-09-01", "2027-08-31"},
		{"start month itself", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 9, "2026-2027", "2026-09-01", "2027-08-31"},
		{"january start", time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), 1, "2026-2027", "2026-01-01", "2026-12-31"},
		{"invalid month falls back", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), 0, "2026-2027", "2026-09-01", "2027-08-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, start, end := AcademicYearFor(tt.now, tt.startMonth)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, end.Format("2006-01-02"))
		})
	}
}

func TestStrongPassword(t *testing.T) {
	for i := 0; i < 10; i++ {
		p, err := strongPassword()
		require.NoError(t, err)
		assert.True(t, validation.IsStrongPassword(p))
	}
}

func TestCreateSuperuser(t *testing.T) {
	lgr := zerolog.Nop()

	t.Run("creates with configured password", func(t *testing.T) {
		users := &fakeUsers{existing: map[string]bool{}}
		err := createSuperuser(context.Background(), users, Options{
			SuperuserUsername: "root",
			SuperuserPassword: "Secret123",
			SuperuserEmail:    "root@example.com",
		}, lgr)
		require.NoError(t, err)
		require.Len(t, users.created, 1)

		u := users.created[0]
		assert.True(t, u.IsSuperuser)
		assert.True(t, u.IsActive)
		assert.Nil(t, u.SchoolID)
		require.NotNil(t, u.Email)
		assert.Equal(t, "root@example.com", *u.Email)
		assert.True(t, auth.CheckPassword(u.Password, "Secret123"))
	})

	t.Run("skips existing user", func(t *testing.T) {
		users := &fakeUsers{existing: map[string]bool{"root": true}}
		err := createSuperuser(context.Background(), users, Options{SuperuserUsername: "root"}, lgr)
		require.NoError(t, err)
		assert.Empty(t, users.created)
	})

	t.Run("skips without username", func(t *testing.T) {
		users := &fakeUsers{existing: map[string]bool{}}
		require.NoError(t, createSuperuser(context.Background(), users, Options{}, lgr))
		assert.Empty(t, users.created)
	})

	t.Run("generates a password when none is configured", func(t *testing.T) {
		users := &fakeUsers{existing: map[string]bool{}}
		err := createSuperuser(context.Background(), users, Options{SuperuserUsername: "root"}, lgr)
		require.NoError(t, err)
		require.Len(t, users.created, 1)
		assert.NotEmpty(t, users.created[0].Password)
		assert.Nil(t, users.created[0].Email)
	})
}
