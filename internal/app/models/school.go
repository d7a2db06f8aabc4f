package models

import (
	"time"
)

// SchoolType is the level of education a school offers
type SchoolType string

const (
	SchoolTypeBasic     SchoolType = "basic"
	SchoolTypeSHS       SchoolType = "shs"
	SchoolTypeTechnical SchoolType = "technical"
	SchoolTypeCombined  SchoolType = "combined"
)

// Ownership describes who runs the school
type Ownership string

const (
	OwnershipPublic        Ownership = "public"
	OwnershipPrivate       Ownership = "private"
	OwnershipMission       Ownership = "mission"
	OwnershipInternational Ownership = "international"
)

// Valid reports whether t is a known school type
func (t SchoolType) Valid() bool {
	switch t {
	case SchoolTypeBasic, SchoolTypeSHS, SchoolTypeTechnical, SchoolTypeCombined:
		return true
	}
	return false
}

// Valid reports whether o is a known ownership kind
func (o Ownership) Valid() bool {
	switch o {
	case OwnershipPublic, OwnershipPrivate, OwnershipMission, OwnershipInternational:
		return true
	}
	return false
}

// School defines the tenant every other record belongs to
type School struct {
	ID                     int64      `json:"id" db:"id" example:"1"`
	Name                   string     `json:"name" db:"name" example:"Test Academy"`
	Slug                   string     `json:"slug" db:"slug" example:"test-academy"`
	Code                   string     `json:"code" db:"code" example:"TEST"` // Immutable, embedded in generated IDs
	SchoolType             SchoolType `json:"schoolType" db:"school_type" example:"basic"`
	Ownership              Ownership  `json:"ownership" db:"ownership" example:"private"`
	Region                 string     `json:"region" db:"region" example:"Greater Accra"`
	District               string     `json:"district" db:"district" example:"Accra Metropolitan"`
	Town                   string     `json:"town" db:"town" example:"Osu"`
	DigitalAddress         string     `json:"digitalAddress" db:"digital_address" example:"GA-123-4567"`
	PhysicalAddress        string     `json:"physicalAddress" db:"physical_address"`
	HeadmasterName         string     `json:"headmasterName" db:"headmaster_name"`
	Email                  string     `json:"email" db:"email"`
	PhonePrimary           string     `json:"phonePrimary" db:"phone_primary"`
	PhoneSecondary         string     `json:"phoneSecondary" db:"phone_secondary"`
	Website                string     `json:"website" db:"website"`
	Motto                  string     `json:"motto" db:"motto"`
	LogoURL                *string    `json:"logoUrl,omitempty" db:"logo_url"`
	PrimaryColor           string     `json:"primaryColor" db:"primary_color" example:"#1E40AF"`
	SecondaryColor         string     `json:"secondaryColor" db:"secondary_color" example:"#F59E0B"`
	AccentColor            string     `json:"accentColor" db:"accent_color" example:"#10B981"`
	HasBoarding            bool       `json:"hasBoarding" db:"has_boarding"`
	AcademicYearStartMonth int        `json:"academicYearStartMonth" db:"academic_year_start_month" example:"9"`
	TermsPerYear           int        `json:"termsPerYear" db:"terms_per_year" example:"3"`
	IsActive               bool       `json:"isActive" db:"is_active"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time  `json:"updatedAt" db:"updated_at"`
}
