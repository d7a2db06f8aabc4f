package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/csvio"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
)

// ExportCSV writes the students matching f to w
func (s *StudentService) ExportCSV(ctx context.Context, schoolID int64, f dto.StudentFilter, w io.Writer) (int, error) {
	students, err := s.students.ListAll(ctx, schoolID, f)
	if err != nil {
		return 0, err
	}

	cw := csvio.NewStudentWriter(w)
	for _, st := range students {
		if err := cw.Write(studentRecord(st)); err != nil {
			return 0, fmt.Errorf("error writing student export: %w", err)
		}
	}
	if err := cw.Flush(); err != nil {
		return 0, fmt.Errorf("error writing student export: %w", err)
	}

	s.logger.Info().Int64("schoolID", schoolID).Int("count", len(students)).Msg("Students exported")
	return len(students), nil
}

func studentRecord(st *models.Student) csvio.StudentRecord {
	rec := csvio.StudentRecord{
		StudentID:       st.StudentID,
		FirstName:       st.FirstName,
		MiddleName:      st.MiddleName,
		LastName:        st.LastName,
		Gender:          string(st.Gender),
		DateOfBirth:     helpers.FormatDate(st.DateOfBirth),
		Email:           st.Email,
		Phone:           st.Phone,
		Address:         st.Address,
		GhanaCardNumber: helpers.StringValue(st.GhanaCardNumber),
		YearAdmitted:    strconv.Itoa(st.YearAdmitted),
		Status:          string(st.Status),
	}
	if st.CurrentClass != nil {
		rec.ClassName = st.CurrentClass.DisplayName()
	}
	return rec
}

// ImportCSV creates one student per data row. Rows are independent: each is
// committed in its own transaction and a failing row is reported, not fatal.
// Header problems and oversized files fail the whole import.
func (s *StudentService) ImportCSV(ctx context.Context, schoolID int64, r io.Reader, defaultClassID *int64) (*dto.ImportResult, error) {
	rows, err := csvio.ReadStudents(r, s.policy.ImportMaxRows)
	if err != nil {
		if errors.Is(err, csvio.ErrEmptyFile) || errors.Is(err, csvio.ErrMissingColumns) || errors.Is(err, csvio.ErrTooManyRows) {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		return nil, apperrors.NewBadRequestError("could not read csv file")
	}

	if defaultClassID != nil {
		if _, err := s.classes.GetByID(ctx, schoolID, *defaultClassID); err != nil {
			return nil, err
		}
	}
	classes, err := s.classes.ListAll(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{CreatedIDs: []string{}, Errors: []dto.ImportRowError{}}
	for _, row := range rows {
		studentID, err := s.importRow(ctx, schoolID, row, classes, defaultClassID)
		if err != nil {
			if !isClientError(err) {
				s.logger.Error().Err(err).Int("row", row.Line).Msg("Student import row failed")
			}
			result.Errors = append(result.Errors, dto.ImportRowError{Row: row.Line, Message: err.Error()})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, studentID)
	}
	result.SuccessCount = len(result.CreatedIDs)
	result.ErrorCount = len(result.Errors)

	s.logger.Info().
		Int64("schoolID", schoolID).
		Int("created", result.SuccessCount).
		Int("failed", result.ErrorCount).
		Msg("Student import finished")
	if result.SuccessCount > 0 {
		s.events.Publish(schoolID, websocket.EventStudentImported, map[string]interface{}{
			"count":      result.SuccessCount,
			"studentIds": result.CreatedIDs,
		})
	}
	return result, nil
}

func (s *StudentService) importRow(ctx context.Context, schoolID int64, row csvio.StudentRow,
	classes []*models.Class, defaultClassID *int64) (string, error) {
	if row.Err != nil {
		return "", row.Err
	}
	rec := row.Record

	person, err := buildPerson(dto.PersonRequest{
		FirstName:       rec.FirstName,
		MiddleName:      rec.MiddleName,
		LastName:        rec.LastName,
		Gender:          rec.Gender,
		DateOfBirth:     rec.DateOfBirth,
		Phone:           rec.Phone,
		Email:           rec.Email,
		Address:         rec.Address,
		GhanaCardNumber: rec.GhanaCardNumber,
	})
	if err != nil {
		return "", err
	}

	age := models.Age(person.DateOfBirth, helpers.Today())
	if age < s.policy.ImportMinAge || age > s.policy.ImportMaxAge {
		return "", apperrors.NewValidationError("date_of_birth",
			fmt.Sprintf("age %d is outside %d to %d", age, s.policy.ImportMinAge, s.policy.ImportMaxAge))
	}

	year, err := strconv.Atoi(rec.YearAdmitted)
	if err != nil {
		return "", apperrors.NewValidationError("year_admitted", "must be a year")
	}
	if err := checkYearAdmitted(year); err != nil {
		return "", err
	}

	classID := defaultClassID
	if rec.ClassName != "" {
		class := findClassByName(classes, rec.ClassName)
		if class == nil {
			return "", apperrors.NewValidationError("class_name", fmt.Sprintf("unknown class %q", rec.ClassName))
		}
		classID = &class.ID
	}

	if err := s.checkUnique(ctx, schoolID, &person, 0); err != nil {
		return "", err
	}

	student, _, err := s.enrol(ctx, schoolID, enrolment{
		Person:       person,
		YearAdmitted: year,
		ClassID:      classID,
	})
	if err != nil {
		return "", err
	}
	return student.StudentID, nil
}
