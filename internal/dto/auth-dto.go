package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         UserPublicDTO `json:"user"`
}

type UserPublicDTO struct {
	ID           uint64  `json:"id"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone_number,omitempty"`
	FIO          string  `json:"fio"`
	RoleID       uint64  `json:"role_id"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	PhotoURL     *string `json:"photo_url,omitempty"`
}

type UserProfileDTO struct {
	ID           uint64   `json:"id"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone_number,omitempty"`
	FIO          string   `json:"fio"`
	RoleID       uint64   `json:"role_id"`
	Permissions  []string `json:"permissions"`
	DepartmentID *uint64  `json:"department_id,omitempty"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
}
