package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "STUTEST000125", Format(StudentPrefix, "TEST", 1, 2025))
	assert.Equal(t, "TCHABC004224", Format(TeacherPrefix, "abc", 42, 2024))
	assert.Equal(t, "STUTEST1234599", Format(StudentPrefix, "TEST", 12345, 1999))
	assert.Equal(t, "STUX000105", Format(StudentPrefix, "X", 1, 2005))
}

func TestParse_RoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 9, 999, 9999, 10000, 123456} {
		id := Format(StudentPrefix, "TEST", seq, 2026)
		p, err := Parse(id, StudentPrefix, "TEST")
		require.NoError(t, err, id)
		assert.Equal(t, seq, p.Sequence)
		assert.Equal(t, 26, p.YearSuffix)
		assert.Equal(t, "TEST", p.SchoolCode)
	}
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse("TCHTEST000125", StudentPrefix, "TEST")
	assert.Error(t, err)
	_, err = Parse("STUTEST0125", StudentPrefix, "TEST")
	assert.Error(t, err)
	_, err = Parse("STUTESTAB0125", StudentPrefix, "TEST")
	assert.Error(t, err)
}

func TestEntityTypePrefix(t *testing.T) {
	assert.Equal(t, "STU", EntityStudent.Prefix())
	assert.Equal(t, "TCH", EntityTeacher.Prefix())
}

func TestYearInRange(t *testing.T) {
	assert.True(t, YearInRange(2000))
	assert.True(t, YearInRange(2026))
	assert.True(t, YearInRange(2099))
	assert.False(t, YearInRange(1999))
	assert.False(t, YearInRange(1901))
	assert.False(t, YearInRange(2100))
}
