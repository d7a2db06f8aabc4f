package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"unicode"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/filestorage"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/validation"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// School defaults applied on creation
const (
	defaultPrimaryColor   = "#1E40AF"
	defaultSecondaryColor = "#F59E0B"
	defaultAccentColor    = "#10B981"
	defaultStartMonth     = 9
	defaultTermsPerYear   = 3
	maxSchoolCodeLength   = 10
)

// SchoolService handles school administration
type SchoolService struct {
	tx          db.Transactor
	schoolRepo  SchoolStore
	userRepo    UserStore
	storage     filestorage.FileStorage
	maxLogoSize int64
	logger      zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(tx db.Transactor, schoolRepo SchoolStore, userRepo UserStore, storage filestorage.FileStorage, maxLogoSize int64, logger zerolog.Logger) *SchoolService {
	return &SchoolService{
		tx:          tx,
		schoolRepo:  schoolRepo,
		userRepo:    userRepo,
		storage:     storage,
		maxLogoSize: maxLogoSize,
		logger:      logger,
	}
}

// SchoolCodeFromName derives a code from the initials of the first three words.
// A single-word name contributes its first four characters instead.
func SchoolCodeFromName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		r := []rune(words[0])
		if len(r) > 4 {
			r = r[:4]
		}
		return strings.ToUpper(string(r))
	}
	if len(words) > 3 {
		words = words[:3]
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteRune(unicode.ToUpper([]rune(w)[0]))
	}
	return b.String()
}

// Slugify lowercases name and joins its alphanumeric runs with dashes
func Slugify(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	return strings.Join(words, "-")
}

func (s *SchoolService) uniqueSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "school"
	}
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.schoolRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// Create registers a school and its first administrator in one transaction
func (s *SchoolService) Create(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 {
		return nil, apperrors.NewValidationError("name", "must be at least 3 characters")
	}
	if !validation.IsStrongPassword(req.Admin.Password) {
		return nil, apperrors.NewValidationError("admin.password", "must be at least 8 characters and contain a letter and a digit")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	explicitCode := code != ""
	if !explicitCode {
		code = SchoolCodeFromName(name)
	}
	if code == "" || len(code) > maxSchoolCodeLength {
		return nil, apperrors.NewValidationError("code", "must be 1 to 10 letters or digits")
	}

	school := &models.School{
		Name:                   name,
		SchoolType:             req.SchoolType,
		Ownership:              req.Ownership,
		Region:                 strings.TrimSpace(req.Region),
		District:               strings.TrimSpace(req.District),
		Town:                   strings.TrimSpace(req.Town),
		DigitalAddress:         strings.TrimSpace(req.DigitalAddress),
		PhysicalAddress:        strings.TrimSpace(req.PhysicalAddress),
		HeadmasterName:         strings.TrimSpace(req.HeadmasterName),
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		PhonePrimary:           validation.NormalizePhone(req.PhonePrimary),
		PhoneSecondary:         validation.NormalizePhone(req.PhoneSecondary),
		Website:                strings.TrimSpace(req.Website),
		Motto:                  strings.TrimSpace(req.Motto),
		PrimaryColor:           defaultPrimaryColor,
		SecondaryColor:         defaultSecondaryColor,
		AccentColor:            defaultAccentColor,
		HasBoarding:            req.HasBoarding,
		AcademicYearStartMonth: req.AcademicYearStartMonth,
		TermsPerYear:           req.TermsPerYear,
		IsActive:               true,
	}
	if school.AcademicYearStartMonth == 0 {
		school.AcademicYearStartMonth = defaultStartMonth
	}
	if school.TermsPerYear == 0 {
		school.TermsPerYear = defaultTermsPerYear
	}
	if !school.SchoolType.Valid() {
		return nil, apperrors.NewValidationError("schoolType", "unknown school type")
	}
	if !school.Ownership.Valid() {
		return nil, apperrors.NewValidationError("ownership", "unknown ownership")
	}

	hash, err := auth.HashPassword(req.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var admin *models.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if explicitCode {
			taken, err := s.schoolRepo.CodeExists(ctx, code)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewConflictError("school code is already in use")
			}
			school.Code = code
		} else {
			if school.Code, err = models.WithNumericSuffix(code, func(c string) (bool, error) {
				return s.schoolRepo.CodeExists(ctx, c)
			}); err != nil {
				return err
			}
		}

		if school.Slug, err = s.uniqueSlug(ctx, name, 0); err != nil {
			return err
		}
		if err := s.schoolRepo.Create(ctx, school); err != nil {
			return err
		}

		username := strings.TrimSpace(req.Admin.Username)
		taken, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrUsernameAlreadyExists
		}

		admin = &models.User{
			Username:  username,
			Email:     helpers.NullableString(strings.ToLower(req.Admin.Email)),
			Password:  hash,
			FirstName: strings.TrimSpace(req.Admin.FirstName),
			LastName:  strings.TrimSpace(req.Admin.LastName),
			SchoolID:  &school.ID,
			IsAdmin:   true,
			IsActive:  true,
		}
		return s.userRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("schoolID", school.ID).Str("code", school.Code).Msg("School created")
	resp := dto.NewUserResponse(admin)
	return &dto.SchoolResponse{School: school, Admin: &resp}, nil
}

// Get returns a school
func (s *SchoolService) Get(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// List returns one page of schools
func (s *SchoolService) List(ctx context.Context, params dto.ListParams) ([]*models.School, int64, error) {
	helpers.NormalizeListParams(&params)
	return s.schoolRepo.List(ctx, params)
}

// Update applies the set fields of req. The code is never changed.
func (s *SchoolService) Update(ctx context.Context, id int64, req *dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &apperrors.ValidationError{}
	str := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	color := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		if !validation.CompiledPatterns.HexColor.MatchString(*src) {
			v.Add(field, "must be a #RRGGBB colour")
			return
		}
		*dst = strings.ToUpper(*src)
	}

	renamed := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != school.Name {
		school.Name = strings.TrimSpace(*req.Name)
		renamed = true
	}
	if req.SchoolType != nil {
		if !req.SchoolType.Valid() {
			v.Add("schoolType", "unknown school type")
		}
		school.SchoolType = *req.SchoolType
	}
	if req.Ownership != nil {
		if !req.Ownership.Valid() {
			v.Add("ownership", "unknown ownership")
		}
		school.Ownership = *req.Ownership
	}
	str(&school.Region, req.Region)
	str(&school.District, req.District)
	str(&school.Town, req.Town)
	str(&school.DigitalAddress, req.DigitalAddress)
	str(&school.PhysicalAddress, req.PhysicalAddress)
	str(&school.HeadmasterName, req.HeadmasterName)
	str(&school.Website, req.Website)
	str(&school.Motto, req.Motto)
	if req.Email != nil {
		school.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PhonePrimary != nil {
		school.PhonePrimary = validation.NormalizePhone(*req.PhonePrimary)
	}
	if req.PhoneSecondary != nil {
		school.PhoneSecondary = validation.NormalizePhone(*req.PhoneSecondary)
	}
	color("primaryColor", &school.PrimaryColor, req.PrimaryColor)
	color("secondaryColor", &school.SecondaryColor, req.SecondaryColor)
	color("accentColor", &school.AccentColor, req.AccentColor)
	if req.HasBoarding != nil {
		school.HasBoarding = *req.HasBoarding
	}
	if req.AcademicYearStartMonth != nil {
		if *req.AcademicYearStartMonth < 1 || *req.AcademicYearStartMonth > 12 {
			v.Add("academicYearStartMonth", "must be between 1 and 12")
		}
		school.AcademicYearStartMonth = *req.AcademicYearStartMonth
	}
	if req.TermsPerYear != nil {
		if *req.TermsPerYear != 2 && *req.TermsPerYear != 3 {
			v.Add("termsPerYear", "must be 2 or 3")
		}
		school.TermsPerYear = *req.TermsPerYear
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if renamed {
		if school.Slug, err = s.uniqueSlug(ctx, school.Name, school.ID); err != nil {
			return nil, err
		}
	}
	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// SetActive activates or deactivates a school
func (s *SchoolService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.schoolRepo.SetActive(ctx, id, active)
}

// UploadLogo stores a new logo and removes the previous one
func (s *SchoolService) UploadLogo(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := filestorage.Check(file, filestorage.ImageRule(s.maxLogoSize)); err != nil {
		return "", apperrors.NewValidationError("logo", err.Error())
	}

	url, err := s.storage.SaveFileWithPath(file, "logos")
	if err != nil {
		return "", fmt.Errorf("error storing logo: %w", err)
	}
	if err := s.schoolRepo.UpdateLogo(ctx, id, &url); err != nil {
		_ = s.storage.DeleteFile(url)
		return "", err
	}

	if school.LogoURL != nil && *school.LogoURL != "" {
		if err := s.storage.DeleteFile(*school.LogoURL); err != nil {
			s.logger.Warn().Err(err).Int64("schoolID", id).Msg("Could not delete previous logo")
		}
	}
	return url, nil
}
