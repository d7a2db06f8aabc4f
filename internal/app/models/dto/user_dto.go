package dto

// AccountRequest creates a login account alongside a person or school record
type AccountRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150" example:"head.admin"`
	Email     string `json:"email" binding:"omitempty,email" example:"admin@testacademy.edu.gh"`
	Password  string `json:"password" binding:"required,min=8" example:"Adm1nPass"`
	FirstName string `json:"firstName" binding:"required,min=2" example:"Kwame"`
	LastName  string `json:"lastName" binding:"required,min=2" example:"Boateng"`
}

// CredentialsResponse carries credentials generated for a new account.
// The password is returned exactly once.
type CredentialsResponse struct {
	Username string `json:"username" example:"STUTEST000125"`
	Password string `json:"password" example:"aB3$kq9Z"`
}
