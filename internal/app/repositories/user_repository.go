package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/dberrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var userColumns = []string{
	"id", "username", "email", "password", "first_name", "last_name", "school_id",
	"is_superuser", "is_admin", "is_teacher", "is_student", "is_guardian", "is_active",
	"last_login_at", "created_at", "updated_at",
}

// UserRepository handles database operations for login accounts
type UserRepository struct {
	baseRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool db.Querier) *UserRepository {
	return &UserRepository{baseRepository: newBaseRepository(pool)}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.SchoolID,
		&u.IsSuperuser, &u.IsAdmin, &u.IsTeacher, &u.IsStudent, &u.IsGuardian, &u.IsActive,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	stmt := r.sb.Insert("users").
		Columns("username", "email", "password", "first_name", "last_name", "school_id",
			"is_superuser", "is_admin", "is_teacher", "is_student", "is_guardian", "is_active").
		Values(u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.SchoolID,
			u.IsSuperuser, u.IsAdmin, u.IsTeacher, u.IsStudent, u.IsGuardian, u.IsActive).
		Suffix("RETURNING id, created_at, updated_at")

	row, err := r.queryRow(ctx, stmt, "create user")
	if err != nil {
		return err
	}
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return apperrors.ErrUsernameAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return apperrors.NewConflictError("email is already used by another account")
		}
		logger.Error().Err(err).Str("username", u.Username).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	row, err := r.queryRow(ctx, r.sb.Select(userColumns...).From("users").Where(where), "get user")
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound, "user")
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByIdentifier retrieves a user by username or, failing that, email (case-insensitive)
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	u, err := r.getOne(ctx, squirrel.Eq{"username": identifier})
	if !errors.Is(err, apperrors.ErrUserNotFound) || !strings.Contains(identifier, "@") {
		return u, err
	}
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", identifier))
}

// UsernameExists checks if a username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("users").Where(squirrel.Eq{"username": username}), "username")
}

// EmailExists checks if an email is used by any account
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("users").Where("LOWER(email) = LOWER(?)", email), "user email")
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{"password": hash}, "update password")
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	stmt := r.sb.Update("users").
		Set("last_login_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": userID})
	if _, err := r.exec(ctx, stmt, "update last login"); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetActive enables or disables an account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{"is_active": active}, "set user active")
}

// UpdateProfile updates names and email of an account
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, email *string) error {
	err := r.updateColumns(ctx, userID, map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	}, "update user profile")
	if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
		return apperrors.NewConflictError("email is already used by another account")
	}
	return err
}

func (r *UserRepository) updateColumns(ctx context.Context, userID int64, values map[string]interface{}, op string) error {
	values["updated_at"] = squirrel.Expr("CURRENT_TIMESTAMP")
	affected, err := r.exec(ctx, r.sb.Update("users").SetMap(values).Where(squirrel.Eq{"id": userID}), op)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return err
		}
		logger.Error().Err(err).Int64("userID", userID).Str("op", op).Msg("Error updating user")
		return fmt.Errorf("error updating user: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
