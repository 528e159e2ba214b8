package entities

import (
	"gearguard/pkg/types"
)

type User struct {
	ID          uint64 `json:"id" db:"id"`
	Fio         string `json:"fio" db:"fio"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`

	Password string `json:"-" db:"password"`

	RoleID       uint64  `json:"role_id" db:"role_id"`
	DepartmentID *uint64 `json:"department_id" db:"department_id"`

	PhotoURL *string `json:"photo_url,omitempty" db:"photo_url"`
	Active   bool    `json:"active" db:"active"`

	types.BaseEntity

	Role       *Role       `json:"role,omitempty" db:"-"`
	Department *Department `json:"department,omitempty" db:"-"`
}
