package helpers

import (
	"testing"
	"time"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
}

func TestNormalizeListParams(t *testing.T) {
	p := dto.ListParams{Page: -1, Size: 500, Search: "  ama "}
	NormalizeListParams(&p)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, "ama", p.Search)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2012-03-14", "14/03/2012", " 2012-03-14 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
	_, err := ParseDate("03/14/2012")
	assert.Error(t, err)
	assert.Equal(t, "2012-03-14", FormatDate(want))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, LikePattern(" 50%_off "))
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, NullableString("  "))
	assert.Equal(t, "x", *NullableString(" x "))
	assert.Equal(t, "", StringValue(nil))
}
