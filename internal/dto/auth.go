package dto

// LoginRequest carries librarian credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// CreateLibrarianRequest defines a new staff account.
type CreateLibrarianRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" validate:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required,max=100" validate:"required,max=100"`
	Password string `json:"password" binding:"required,min=8" validate:"required,min=8,max=72"`
}
