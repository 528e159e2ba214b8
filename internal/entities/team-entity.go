package entities

import (
	"gearguard/pkg/types"
)

type MaintenanceTeam struct {
	ID     uint64 `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Color  int16  `json:"color" db:"color"`
	Active bool   `json:"active" db:"active"`

	types.BaseEntity

	// Участники (m2m через team_members), не колонки таблицы
	Members []User `json:"members,omitempty" db:"-"`
}
