package models

import (
	"time"
)

// GuardianTitle is the honorific of a guardian
type GuardianTitle string

const (
	TitleMr     GuardianTitle = "Mr."
	TitleMrs    GuardianTitle = "Mrs."
	TitleMs     GuardianTitle = "Ms."
	TitleMiss   GuardianTitle = "Miss"
	TitleDr     GuardianTitle = "Dr."
	TitleProf   GuardianTitle = "Prof."
	TitleRev    GuardianTitle = "Rev."
	TitleSheikh GuardianTitle = "Sheikh"
	TitleMaulvi GuardianTitle = "Maulvi"
	TitleMallam GuardianTitle = "Mallam"
)

// Valid reports whether t is a known title
func (t GuardianTitle) Valid() bool {
	switch t {
	case TitleMr, TitleMrs, TitleMs, TitleMiss, TitleDr, TitleProf, TitleRev, TitleSheikh, TitleMaulvi, TitleMallam:
		return true
	}
	return false
}

// Relationship of a guardian to a student
type Relationship string

const (
	RelationshipParent      Relationship = "parent"
	RelationshipGuardian    Relationship = "guardian"
	RelationshipFather      Relationship = "father"
	RelationshipMother      Relationship = "mother"
	RelationshipUncle       Relationship = "uncle"
	RelationshipAunt        Relationship = "aunt"
	RelationshipGrandparent Relationship = "grandparent"
	RelationshipSibling     Relationship = "sibling"
	RelationshipOther       Relationship = "other"
)

// Valid reports whether r is a known relationship
func (r Relationship) Valid() bool {
	switch r {
	case RelationshipParent, RelationshipGuardian, RelationshipFather, RelationshipMother, RelationshipUncle,
		RelationshipAunt, RelationshipGrandparent, RelationshipSibling, RelationshipOther:
		return true
	}
	return false
}

// Guardian is a parent or carer, shared between the students it is linked to
type Guardian struct {
	ID        int64         `json:"id" db:"id" example:"1"`
	SchoolID  int64         `json:"schoolId" db:"school_id" example:"1"`
	UserID    *int64        `json:"userId,omitempty" db:"user_id"`
	Title     GuardianTitle `json:"title" db:"title" example:"Mrs."`
	Name      string        `json:"name" db:"name" example:"Akosua Mensah"`
	Phone     string        `json:"phone" db:"phone" example:"+233201234567"`
	Email     string        `json:"email" db:"email"`
	Address   string        `json:"address" db:"address"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// DisplayName is "<title> <name>"
func (g *Guardian) DisplayName() string {
	if g.Title == "" {
		return g.Name
	}
	return string(g.Title) + " " + g.Name
}

// StudentGuardian links a guardian to a student
type StudentGuardian struct {
	ID               int64        `json:"id" db:"id"`
	StudentID        int64        `json:"studentId" db:"student_id"`
	GuardianID       int64        `json:"guardianId" db:"guardian_id"`
	Relationship     Relationship `json:"relationship" db:"relationship" example:"mother"`
	IsPrimary        bool         `json:"isPrimary" db:"is_primary"`
	CanPickup        bool         `json:"canPickup" db:"can_pickup"`
	EmergencyContact bool         `json:"emergencyContact" db:"emergency_contact"`
	CreatedAt        time.Time    `json:"createdAt" db:"created_at"`

	Guardian *Guardian `json:"guardian,omitempty"`
	Student  *Student  `json:"student,omitempty"`
}
