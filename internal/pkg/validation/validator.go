package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags & texts
var customTags = []struct {
	tag  string
	text string
	fn   validator.Func
}{
	{"phone", "{0} must be a phone number of 10 to 15 digits, optionally starting with +", validatePhone},
	{"ghanacard", "{0} must look like GHA-123456789-0", validateGhanaCard},
	{"academicyear", "{0} must be two consecutive years in the format YYYY-YYYY", validateAcademicYear},
	{"gender", "{0} must be M or F", validateGender},
	{"pastdate", "{0} must be a date (YYYY-MM-DD or DD/MM/YYYY) that is not in the future", validatePastDate},
	{"guardiantitle", "{0} must be one of Mr., Mrs., Ms., Miss, Dr., Prof., Rev., Sheikh, Maulvi, Mallam", validateGuardianTitle},
	{"relationship", "{0} must be one of parent, guardian, father, mother, uncle, aunt, grandparent, sibling, other", validateRelationship},
}

var (
	translator ut.Translator
	once       sync.Once
)

// Translator returns the shared English translator
func Translator() ut.Translator {
	once.Do(func() {
		english := en.New()
		uni := ut.New(english, english)
		translator, _ = uni.GetTranslator("en")
	})
	return translator
}

// Register installs JSON field naming, the English translations and the custom tags on v.
func Register(v *validator.Validate) error {
	trans := Translator()
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return err
	}

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	for _, ct := range customTags {
		if err := v.RegisterValidation(ct.tag, ct.fn); err != nil {
			return err
		}
		registerCustomTranslation(v, trans, ct.tag, ct.text)
	}
	registerCustomTranslation(v, trans, "required", "{0} is required", true)
	return nil
}

// New returns a validator with everything registered
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

func registerCustomTranslation(v *validator.Validate, trans ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ToValidationError converts validator errors into an apperrors.ValidationError with
// translated, JSON-named field messages. Other errors are returned unchanged.
func ToValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperrors.ValidationError{}
	trans := Translator()
	for _, fe := range verrs {
		out.Add(fieldPath(fe), fe.Translate(trans))
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace: guardians[0].phone
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateGhanaCard(fl validator.FieldLevel) bool {
	return IsValidGhanaCard(fl.Field().String())
}

func validateAcademicYear(fl validator.FieldLevel) bool {
	_, _, err := models.ParseAcademicYearName(fl.Field().String())
	return err == nil
}

func validateGender(fl validator.FieldLevel) bool {
	_, ok := models.ParseGender(fl.Field().String())
	return ok
}

func validatePastDate(fl validator.FieldLevel) bool {
	d, err := helpers.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.After(helpers.Today())
}

func validateGuardianTitle(fl validator.FieldLevel) bool {
	return models.GuardianTitle(fl.Field().String()).Valid()
}

func validateRelationship(fl validator.FieldLevel) bool {
	return models.Relationship(fl.Field().String()).Valid()
}
