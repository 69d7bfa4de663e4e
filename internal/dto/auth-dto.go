package dto

import "repair-system/internal/entities"

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type RegisterDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=3,max=72"`
}

// UserDTO is the outward view of a user; the password never leaves the
// service layer.
type UserDTO struct {
	ID     string              `json:"id"`
	Role   entities.Role       `json:"role"`
	Status entities.UserStatus `json:"status"`
}

type LoginResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func NewUserDTO(u entities.User) UserDTO {
	return UserDTO{ID: u.ID, Role: u.Role, Status: u.Status}
}
