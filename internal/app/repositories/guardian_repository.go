package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/dberrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var guardianColumns = []string{
	"g.id", "g.school_id", "g.user_id", "g.title", "g.name", "g.phone", "g.email", "g.address",
	"g.created_at", "g.updated_at",
}

var linkColumns = []string{
	"sg.id", "sg.student_id", "sg.guardian_id", "sg.relationship", "sg.is_primary", "sg.can_pickup",
	"sg.emergency_contact", "sg.created_at",
}

var guardianOrder = map[string]string{
	"name":      "g.name",
	"createdAt": "g.created_at",
}

// GuardianRepository handles guardians and their links to students
type GuardianRepository struct {
	baseRepository
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(pool db.Querier) *GuardianRepository {
	return &GuardianRepository{baseRepository: newBaseRepository(pool)}
}

func scanGuardian(row pgx.Row) (*models.Guardian, error) {
	var g models.Guardian
	if err := row.Scan(&g.ID, &g.SchoolID, &g.UserID, &g.Title, &g.Name, &g.Phone, &g.Email, &g.Address,
		&g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a guardian
func (r *GuardianRepository) Create(ctx context.Context, g *models.Guardian) error {
	stmt := r.sb.Insert("guardians").
		Columns("school_id", "user_id", "title", "name", "phone", "email", "address").
		Values(g.SchoolID, g.UserID, g.Title, g.Name, g.Phone, g.Email, g.Address).
		Suffix("RETURNING id, created_at, updated_at")
	row, err := r.queryRow(ctx, stmt, "create guardian")
	if err != nil {
		return err
	}
	if err := row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("schoolID", g.SchoolID).Msg("Error creating guardian")
		return fmt.Errorf("error creating guardian: %w", err)
	}
	return nil
}

func (r *GuardianRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Guardian, error) {
	row, err := r.queryRow(ctx, r.sb.Select(guardianColumns...).From("guardians g").Where(where).OrderBy("g.id").Limit(1), "get guardian")
	if err != nil {
		return nil, err
	}
	g, err := scanGuardian(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrGuardianNotFound, "guardian")
	}
	return g, nil
}

// GetByID retrieves a guardian of a school
func (r *GuardianRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Guardian, error) {
	return r.getOne(ctx, squirrel.Eq{"g.id": id, "g.school_id": schoolID})
}

// GetByUserID retrieves the guardian linked to a login account
func (r *GuardianRepository) GetByUserID(ctx context.Context, userID int64) (*models.Guardian, error) {
	return r.getOne(ctx, squirrel.Eq{"g.user_id": userID})
}

// FindByEmail returns the oldest guardian of the school with this email
func (r *GuardianRepository) FindByEmail(ctx context.Context, schoolID int64, email string) (*models.Guardian, error) {
	return r.getOne(ctx, squirrel.And{
		squirrel.Eq{"g.school_id": schoolID},
		squirrel.Expr("LOWER(g.email) = LOWER(?)", email),
	})
}

// FindByPhone returns the oldest guardian of the school with this phone
func (r *GuardianRepository) FindByPhone(ctx context.Context, schoolID int64, phone string) (*models.Guardian, error) {
	return r.getOne(ctx, squirrel.Eq{"g.school_id": schoolID, "g.phone": phone})
}

// Update writes title, name and contact details
func (r *GuardianRepository) Update(ctx context.Context, g *models.Guardian) error {
	affected, err := r.exec(ctx, r.sb.Update("guardians").
		SetMap(map[string]interface{}{
			"title":      g.Title,
			"name":       g.Name,
			"phone":      g.Phone,
			"email":      g.Email,
			"address":    g.Address,
			"updated_at": squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": g.ID, "school_id": g.SchoolID}), "update guardian")
	if err != nil {
		logger.Error().Err(err).Int64("guardianID", g.ID).Msg("Error updating guardian")
		return fmt.Errorf("error updating guardian: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}

// SetUserID links a login account
func (r *GuardianRepository) SetUserID(ctx context.Context, schoolID, id, userID int64) error {
	affected, err := r.exec(ctx, r.sb.Update("guardians").
		Set("user_id", userID).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "link guardian user")
	if err != nil {
		logger.Error().Err(err).Int64("guardianID", id).Msg("Error linking guardian account")
		return fmt.Errorf("error linking guardian account: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGuardianNotFound
	}
	return nil
}

// List returns one page of guardians of a school
func (r *GuardianRepository) List(ctx context.Context, schoolID int64, f dto.GuardianFilter) ([]*models.Guardian, int64, error) {
	base := r.sb.Select(guardianColumns...).From("guardians g").Where(squirrel.Eq{"g.school_id": schoolID})
	if f.Search != "" {
		base = base.Where(searchAny(f.Search, "g.name", "g.phone", "g.email"))
	}
	total, err := r.count(ctx, base, "guardians")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.query(ctx, paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, guardianOrder, "g.name"), "list guardians")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var guardians []*models.Guardian
	for rows.Next() {
		g, err := scanGuardian(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning guardian: %w", err)
		}
		guardians = append(guardians, g)
	}
	return guardians, total, rows.Err()
}

// Count counts the guardians of a school
func (r *GuardianRepository) Count(ctx context.Context, schoolID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("id").From("guardians").Where(squirrel.Eq{"school_id": schoolID}), "guardians")
}

func translateLinkError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "student_guardians_pair_key"):
		return apperrors.ErrGuardianAlreadyLinked
	case dberrors.IsDuplicateConstraintError(err, "student_guardians_primary_key"):
		return apperrors.ErrMultiplePrimaryGuardians
	}
	return err
}

// Link inserts a student-guardian link
func (r *GuardianRepository) Link(ctx context.Context, l *models.StudentGuardian) error {
	stmt := r.sb.Insert("student_guardians").
		Columns("student_id", "guardian_id", "relationship", "is_primary", "can_pickup", "emergency_contact").
		Values(l.StudentID, l.GuardianID, l.Relationship, l.IsPrimary, l.CanPickup, l.EmergencyContact).
		Suffix("RETURNING id, created_at")
	row, err := r.queryRow(ctx, stmt, "link guardian")
	if err != nil {
		return err
	}
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		if translated := translateLinkError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("studentID", l.StudentID).Int64("guardianID", l.GuardianID).Msg("Error linking guardian")
		return fmt.Errorf("error linking guardian: %w", err)
	}
	return nil
}

func scanLinkWithGuardian(row pgx.Row) (*models.StudentGuardian, error) {
	var l models.StudentGuardian
	var g models.Guardian
	if err := row.Scan(&l.ID, &l.StudentID, &l.GuardianID, &l.Relationship, &l.IsPrimary, &l.CanPickup,
		&l.EmergencyContact, &l.CreatedAt,
		&g.ID, &g.SchoolID, &g.UserID, &g.Title, &g.Name, &g.Phone, &g.Email, &g.Address,
		&g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	l.Guardian = &g
	return &l, nil
}

func (r *GuardianRepository) selectLinks() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, linkColumns...), guardianColumns...)...).
		From("student_guardians sg").
		Join("guardians g ON g.id = sg.guardian_id")
}

// GetLink retrieves the link between a student and a guardian
func (r *GuardianRepository) GetLink(ctx context.Context, studentID, guardianID int64) (*models.StudentGuardian, error) {
	row, err := r.queryRow(ctx, r.selectLinks().
		Where(squirrel.Eq{"sg.student_id": studentID, "sg.guardian_id": guardianID}), "get guardian link")
	if err != nil {
		return nil, err
	}
	l, err := scanLinkWithGuardian(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrGuardianLinkNotFound, "guardian link")
	}
	return l, nil
}

// UpdateLink writes the link metadata
func (r *GuardianRepository) UpdateLink(ctx context.Context, l *models.StudentGuardian) error {
	affected, err := r.exec(ctx, r.sb.Update("student_guardians").
		SetMap(map[string]interface{}{
			"relationship":      l.Relationship,
			"is_primary":        l.IsPrimary,
			"can_pickup":        l.CanPickup,
			"emergency_contact": l.EmergencyContact,
		}).
		Where(squirrel.Eq{"student_id": l.StudentID, "guardian_id": l.GuardianID}), "update guardian link")
	if err != nil {
		if translated := translateLinkError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("studentID", l.StudentID).Msg("Error updating guardian link")
		return fmt.Errorf("error updating guardian link: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGuardianLinkNotFound
	}
	return nil
}

// Unlink removes the link between a student and a guardian
func (r *GuardianRepository) Unlink(ctx context.Context, studentID, guardianID int64) error {
	affected, err := r.exec(ctx, r.sb.Delete("student_guardians").
		Where(squirrel.Eq{"student_id": studentID, "guardian_id": guardianID}), "unlink guardian")
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error unlinking guardian")
		return fmt.Errorf("error unlinking guardian: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrGuardianLinkNotFound
	}
	return nil
}

// ClearPrimary drops the primary flag from every link of the student except exceptGuardianID
func (r *GuardianRepository) ClearPrimary(ctx context.Context, studentID, exceptGuardianID int64) error {
	_, err := r.exec(ctx, r.sb.Update("student_guardians").
		Set("is_primary", false).
		Where(squirrel.Eq{"student_id": studentID, "is_primary": true}).
		Where(squirrel.NotEq{"guardian_id": exceptGuardianID}), "clear primary guardian")
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error clearing primary guardian")
		return fmt.Errorf("error clearing primary guardian: %w", err)
	}
	return nil
}

// ListByStudent returns the guardians of a student, primary first
func (r *GuardianRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.StudentGuardian, error) {
	rows, err := r.query(ctx, r.selectLinks().
		Where(squirrel.Eq{"sg.student_id": studentID}).
		OrderBy("sg.is_primary DESC", "g.name"), "list student guardians")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.StudentGuardian{}
	for rows.Next() {
		l, err := scanLinkWithGuardian(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning guardian link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

// ListWards returns the students linked to a guardian
func (r *GuardianRepository) ListWards(ctx context.Context, guardianID int64) ([]models.StudentGuardian, error) {
	cols := append([]string{}, linkColumns...)
	cols = append(cols, "s.id", "s.school_id", "s.student_id", "s.first_name", "s.middle_name", "s.last_name",
		"s.status", "s.current_class_id")
	rows, err := r.query(ctx, r.sb.Select(cols...).
		From("student_guardians sg").
		Join("students s ON s.id = sg.student_id").
		Where(squirrel.Eq{"sg.guardian_id": guardianID}).
		OrderBy("s.last_name", "s.first_name"), "list wards")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wards := []models.StudentGuardian{}
	for rows.Next() {
		var l models.StudentGuardian
		var s models.Student
		if err := rows.Scan(&l.ID, &l.StudentID, &l.GuardianID, &l.Relationship, &l.IsPrimary, &l.CanPickup,
			&l.EmergencyContact, &l.CreatedAt,
			&s.ID, &s.SchoolID, &s.StudentID, &s.FirstName, &s.MiddleName, &s.LastName,
			&s.Status, &s.CurrentClassID); err != nil {
			return nil, fmt.Errorf("error scanning ward: %w", err)
		}
		l.Student = &s
		wards = append(wards, l)
	}
	return wards, rows.Err()
}
