package dto

// CreateTeacherRequest is used by administrators to add a teacher
type CreateTeacherRequest struct {
	PersonRequest
	EmploymentDate string  `json:"employmentDate" binding:"omitempty,datetime=2006-01-02" example:"2023-09-01"`
	SubjectIDs     []int64 `json:"subjectIds" binding:"omitempty,max=20,dive,gt=0"`
	Qualification  string  `json:"qualification" binding:"omitempty,max=200"`
	CreateAccount  bool    `json:"createAccount"`
}

// UpdateTeacherRequest changes teacher details. The teacher ID never changes.
type UpdateTeacherRequest struct {
	FirstName       *string  `json:"firstName" binding:"omitempty,min=2,max=100"`
	MiddleName      *string  `json:"middleName" binding:"omitempty,max=100"`
	LastName        *string  `json:"lastName" binding:"omitempty,min=2,max=100"`
	Gender          *string  `json:"gender" binding:"omitempty,gender"`
	DateOfBirth     *string  `json:"dateOfBirth" binding:"omitempty,pastdate"`
	Phone           *string  `json:"phone" binding:"omitempty,phone"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Address         *string  `json:"address" binding:"omitempty,max=500"`
	GhanaCardNumber *string  `json:"ghanaCardNumber" binding:"omitempty,ghanacard"`
	SubjectIDs      *[]int64 `json:"subjectIds" binding:"omitempty,max=20"`
	Qualification   *string  `json:"qualification" binding:"omitempty,max=200"`
}

// TeacherFilter narrows the teacher list
type TeacherFilter struct {
	ListParams
	Gender    string `form:"gender"`
	SubjectID int64  `form:"subjectId"`
}
