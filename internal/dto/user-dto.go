package dto

type CreateUserDTO struct {
	Fio          string  `json:"fio" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	PhoneNumber  string  `json:"phone_number" validate:"omitempty"`
	Password     string  `json:"password" validate:"required,min=6"`
	RoleID       uint64  `json:"role_id" validate:"required,gt=0"`
	DepartmentID *uint64 `json:"department_id" validate:"omitempty,gt=0"`
}

type UpdateUserDTO struct {
	Fio          *string `json:"fio,omitempty" validate:"omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber  *string `json:"phone_number,omitempty" validate:"omitempty"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"`
	RoleID       *uint64 `json:"role_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	Active       *bool   `json:"active,omitempty" validate:"omitempty"`
}

type UserDTO struct {
	ID           uint64  `json:"id"`
	Fio          string  `json:"fio"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number,omitempty"`
	RoleID       uint64  `json:"role_id"`
	RoleName     string  `json:"role_name,omitempty"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	Active       bool    `json:"active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ShortUserDTO struct {
	ID  uint64 `json:"id"`
	Fio string `json:"fio"`
}
