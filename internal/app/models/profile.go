package models

// Profile is the role-specific record attached to a signed-in user.
// Exactly one variant applies, chosen from the classified role.
type Profile interface {
	ProfileKind() string
	isProfile()
}

// StudentProfile is the profile of a student account
type StudentProfile struct {
	Student *Student `json:"student"`
}

// TeacherProfile is the profile of a teacher account
type TeacherProfile struct {
	Teacher *Teacher `json:"teacher"`
}

// GuardianProfile is the profile of a guardian account
type GuardianProfile struct {
	Guardian *Guardian         `json:"guardian"`
	Wards    []StudentGuardian `json:"wards"`
}

// NoProfile is used by roles without a person record (admins, superusers, plain users)
type NoProfile struct{}

func (StudentProfile) ProfileKind() string  { return "student" }
func (TeacherProfile) ProfileKind() string  { return "teacher" }
func (GuardianProfile) ProfileKind() string { return "guardian" }
func (NoProfile) ProfileKind() string       { return "none" }

func (StudentProfile) isProfile()  {}
func (TeacherProfile) isProfile()  {}
func (GuardianProfile) isProfile() {}
func (NoProfile) isProfile()       {}
