package dto

// RegisterDTO sign-up form
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=50,alphanum"`
	Email    string `json:"email" binding:"required" validate:"email,max=255"`
	Password string `json:"password" binding:"required" validate:"min=6,max=72"`
	Fullname string `json:"fullname" validate:"max=100"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
