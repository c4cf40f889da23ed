package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=64"`
	Name       string  `json:"name" binding:"required,max=128"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   string  `json:"password" binding:"required,min=6,max=128"`
	Role       string  `json:"role" binding:"required,oneof=admin manager staff"`
	Department string  `json:"department" binding:"max=64"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=128"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   *string `json:"password" binding:"omitempty,min=6,max=128"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin manager staff"`
	Department *string `json:"department" binding:"omitempty,max=64"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Role       string  `json:"role"`
	Department string  `json:"department,omitempty"`
	Active     bool    `json:"active"`
}
