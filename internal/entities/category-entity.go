package entities

import (
	"gearguard/pkg/types"
)

type EquipmentCategory struct {
	ID    uint64  `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Color int16   `json:"color" db:"color"`
	Note  *string `json:"note,omitempty" db:"note"`

	types.BaseEntity
}
