package entities

import (
	"gearguard/pkg/types"
)

type Permission struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`

	types.BaseEntity
}

type RolePermission struct {
	RoleID       uint64 `json:"role_id" db:"role_id"`
	PermissionID uint64 `json:"permission_id" db:"permission_id"`
}
