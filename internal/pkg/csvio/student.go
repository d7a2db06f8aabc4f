// Package csvio reads and writes the CSV layouts used for student import/export and
// voucher batch export.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Student CSV columns
const (
	ColStudentID       = "student_id"
	ColFirstName       = "first_name"
	ColMiddleName      = "middle_name"
	ColLastName        = "last_name"
	ColGender          = "gender"
	ColDateOfBirth     = "date_of_birth"
	ColEmail           = "email"
	ColPhone           = "phone"
	ColAddress         = "address"
	ColGhanaCardNumber = "ghana_card_number"
	ColYearAdmitted    = "year_admitted"
	ColClassName       = "class_name"
	ColStatus          = "status"
)

// StudentHeader is the column order of exported files
var StudentHeader = []string{
	ColStudentID, ColFirstName, ColMiddleName, ColLastName, ColGender, ColDateOfBirth, ColEmail,
	ColPhone, ColAddress, ColGhanaCardNumber, ColYearAdmitted, ColClassName, ColStatus,
}

// Header errors
var (
	ErrEmptyFile      = errors.New("csv file is empty")
	ErrMissingColumns = errors.New("csv header is missing required columns")
	ErrTooManyRows    = errors.New("csv file has too many rows")
)

// RequiredImportColumns must be present in an import header
var RequiredImportColumns = []string{ColFirstName, ColLastName, ColGender, ColDateOfBirth, ColYearAdmitted}

// StudentRecord is one student row with all values as text
type StudentRecord struct {
	StudentID       string
	FirstName       string
	MiddleName      string
	LastName        string
	Gender          string
	DateOfBirth     string
	Email           string
	Phone           string
	Address         string
	GhanaCardNumber string
	YearAdmitted    string
	ClassName       string
	Status          string
}

func (r *StudentRecord) values() []string {
	return []string{
		r.StudentID, r.FirstName, r.MiddleName, r.LastName, r.Gender, r.DateOfBirth, r.Email,
		r.Phone, r.Address, r.GhanaCardNumber, r.YearAdmitted, r.ClassName, r.Status,
	}
}

func (r *StudentRecord) set(column, value string) {
	switch column {
	case ColStudentID:
		r.StudentID = value
	case ColFirstName:
		r.FirstName = value
	case ColMiddleName:
		r.MiddleName = value
	case ColLastName:
		r.LastName = value
	case ColGender:
		r.Gender = value
	case ColDateOfBirth:
		r.DateOfBirth = value
	case ColEmail:
		r.Email = value
	case ColPhone:
		r.Phone = value
	case ColAddress:
		r.Address = value
	case ColGhanaCardNumber:
		r.GhanaCardNumber = value
	case ColYearAdmitted:
		r.YearAdmitted = value
	case ColClassName:
		r.ClassName = value
	case ColStatus:
		r.Status = value
	}
}

// StudentWriter streams student records as CSV
type StudentWriter struct {
	w             *csv.Writer
	headerWritten bool
}

// NewStudentWriter creates a writer; the header is written with the first record or on Flush
func NewStudentWriter(w io.Writer) *StudentWriter {
	return &StudentWriter{w: csv.NewWriter(w)}
}

func (sw *StudentWriter) writeHeader() error {
	if sw.headerWritten {
		return nil
	}
	sw.headerWritten = true
	return sw.w.Write(StudentHeader)
}

// Write appends one record
func (sw *StudentWriter) Write(rec StudentRecord) error {
	if err := sw.writeHeader(); err != nil {
		return err
	}
	return sw.w.Write(rec.values())
}

// Flush writes buffered data, including the header of an empty export
func (sw *StudentWriter) Flush() error {
	if err := sw.writeHeader(); err != nil {
		return err
	}
	sw.w.Flush()
	return sw.w.Error()
}

// StudentRow is a parsed data row. Line is 1-based and excludes the header.
type StudentRow struct {
	Line   int
	Record StudentRecord
	Err    error
}

// ReadStudents parses an import file. Columns may appear in any order and unknown
// columns are ignored. A malformed row is returned with Err set; header problems and
// exceeding maxRows fail the whole file.
func ReadStudents(r io.Reader, maxRows int) ([]StudentRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		columns[i] = name
		present[name] = true
	}
	var missing []string
	for _, col := range RequiredImportColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []StudentRow
	for line := 1; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if maxRows > 0 && line > maxRows {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, maxRows)
		}
		row := StudentRow{Line: line}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to read csv: %w", err)
			}
			row.Err = fmt.Errorf("malformed row: %w", parseErr.Err)
			rows = append(rows, row)
			continue
		}
		if isBlank(fields) {
			continue
		}
		for i, v := range fields {
			if i < len(columns) {
				row.Record.set(columns[i], strings.TrimSpace(v))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
