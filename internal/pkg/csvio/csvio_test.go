package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentWriterThenRead(t *testing.T) {
	var buf bytes.Buffer
	w := NewStudentWriter(&buf)
	in := StudentRecord{
		StudentID: "STUTEST000125", FirstName: "Ama", LastName: "Mensah", Gender: "F",
		DateOfBirth: "2012-03-14", Email: "ama@example.com", Address: "12 Ring Road, Accra",
		YearAdmitted: "2025", ClassName: "P1A", Status: "active",
	}
	require.NoError(t, w.Write(in))
	require.NoError(t, w.Flush())

	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(StudentHeader, ",")+"\n"))

	rows, err := ReadStudents(&buf, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, in, rows[0].Record)
}

func TestStudentWriter_EmptyExportHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStudentWriter(&buf).Flush())
	assert.Equal(t, strings.Join(StudentHeader, ",")+"\n", buf.String())
}

func TestReadStudents_AnyColumnOrder(t *testing.T) {
	data := "\ufeffLast_Name,first_name,gender,year_admitted,date_of_birth,nickname\n" +
		"Owusu,Kofi,m,2024,14/03/2011,KO\n" +
		",,,,,\n" +
		"Asante,Efua,F,2024,2011-01-01,\n"
	rows, err := ReadStudents(strings.NewReader(data), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Kofi", rows[0].Record.FirstName)
	assert.Equal(t, "Owusu", rows[0].Record.LastName)
	assert.Equal(t, "14/03/2011", rows[0].Record.DateOfBirth)
	assert.Equal(t, 3, rows[1].Line)
}

func TestReadStudents_HeaderErrors(t *testing.T) {
	_, err := ReadStudents(strings.NewReader(""), 0)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadStudents(strings.NewReader("first_name,last_name\n"), 0)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "gender")
}

func TestReadStudents_MaxRows(t *testing.T) {
	data := "first_name,last_name,gender,date_of_birth,year_admitted\n" +
		"A1,B1,M,2010-01-01,2024\nA2,B2,M,2010-01-01,2024\nA3,B3,M,2010-01-01,2024\n"
	_, err := ReadStudents(strings.NewReader(data), 2)
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestReadStudents_MalformedRowIsReported(t *testing.T) {
	data := "first_name,last_name,gender,date_of_birth,year_admitted\n" +
		"Kofi,\"Owu\"su,M,2010-01-01,2024\n" +
		"Ama,Mensah,F,2010-01-01,2024\n"
	rows, err := ReadStudents(strings.NewReader(data), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Error(t, rows[0].Err)
	assert.NoError(t, rows[1].Err)
}

func TestWriteVouchers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVouchers(&buf, []VoucherRecord{
		{SerialNumber: "STES-1A2B3C4D", PIN: "000000000000", Kind: "student", ClassName: "P1A", CanSignin: true},
	}))
	assert.Equal(t, "serial_number,pin,kind,class_name,can_signin,is_used\nSTES-1A2B3C4D,000000000000,student,P1A,yes,no\n", buf.String())
}
