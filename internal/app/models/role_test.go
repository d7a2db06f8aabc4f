package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRole_Priority(t *testing.T) {
	tests := []struct {
		name  string
		flags RoleFlags
		want  Role
	}{
		{"no flags", RoleFlags{}, RoleUser},
		{"guardian only", RoleFlags{IsGuardian: true}, RoleGuardian},
		{"student beats guardian", RoleFlags{IsStudent: true, IsGuardian: true}, RoleStudent},
		{"teacher beats student", RoleFlags{IsTeacher: true, IsStudent: true}, RoleTeacher},
		{"admin beats teacher", RoleFlags{IsAdmin: true, IsTeacher: true}, RoleSchoolAdmin},
		{"superuser beats all", RoleFlags{IsSuperuser: true, IsAdmin: true, IsTeacher: true, IsStudent: true, IsGuardian: true}, RoleSuperuser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRole(tt.flags))
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/superadmin/dashboard", DashboardPath(RoleSuperuser))
	assert.Equal(t, "/admin/dashboard", DashboardPath(RoleSchoolAdmin))
	assert.Equal(t, "/teacher/dashboard", DashboardPath(RoleTeacher))
	assert.Equal(t, "/student/dashboard", DashboardPath(RoleStudent))
	assert.Equal(t, "/guardian/dashboard", DashboardPath(RoleGuardian))
	assert.Equal(t, "/dashboard", DashboardPath(RoleUser))
	assert.Equal(t, "/dashboard", DashboardPath(Role("janitor")))
}

func TestProgrammeCodeFromName(t *testing.T) {
	tests := map[string]string{
		"Science":                    "SC",
		"General Science":            "GS",
		"Home Economics":             "HE",
		"Business and Accounting":    "BA",
		"Visual Arts for the Future": "VAF",
		"The":                        "TH",
		"Info-Tech":                  "IN",
		"ICT & Computing":            "IC",
		"  technical   drawing ":     "TD",
	}
	for name, want := range tests {
		assert.Equal(t, want, ProgrammeCodeFromName(name), name)
	}
	assert.Equal(t, "ASH", ProgrammeCodeFromName("Agric Science and Home Economics Studies"))
}

func TestWithNumericSuffix(t *testing.T) {
	used := map[string]bool{"GS": true, "GS1": true}
	code, err := WithNumericSuffix("GS", func(c string) (bool, error) { return used[c], nil })
	require.NoError(t, err)
	assert.Equal(t, "GS2", code)

	code, err = WithNumericSuffix("AR", func(c string) (bool, error) { return used[c], nil })
	require.NoError(t, err)
	assert.Equal(t, "AR", code)
}

func TestClassDisplayName(t *testing.T) {
	sci := &Programme{Code: "SCI"}
	tests := []struct {
		class Class
		want  string
	}{
		{Class{Stage: StageKindergarten, Level: 1, Stream: "A"}, "KG1A"},
		{Class{Stage: StagePrimary, Level: 3, Stream: "B"}, "P3B"},
		{Class{Stage: StageJHS, Level: 2, Stream: "C"}, "JHS2C"},
		{Class{Stage: StageSHS, Level: 3, Stream: "Gold", Programme: sci}, "SHS3 SCI Gold"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.class.DisplayName())
	}
}

func TestClassCapacity(t *testing.T) {
	c := Class{MaxStudents: 4, Enrollment: 3}
	assert.False(t, c.IsFull())
	assert.Equal(t, 1, c.AvailableSeats())
	assert.InDelta(t, 75.0, c.CapacityPercentage(), 0.001)

	c.Enrollment = 5
	assert.True(t, c.IsFull())
	assert.Equal(t, 0, c.AvailableSeats())
}

func TestParseAcademicYearName(t *testing.T) {
	start, end, err := ParseAcademicYearName("2024-2025")
	require.NoError(t, err)
	assert.Equal(t, 2024, start)
	assert.Equal(t, 2025, end)

	for _, bad := range []string{"2024-2026", "2024/2025", "24-25", "2025-2024", "abcd-efgh", ""} {
		_, _, err := ParseAcademicYearName(bad)
		assert.Error(t, err, bad)
	}
}

func TestAge(t *testing.T) {
	dob := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 14, Age(dob, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 15, Age(dob, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender(" f ")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)
	_, ok = ParseGender("x")
	assert.False(t, ok)
}
