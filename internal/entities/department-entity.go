package entities

import (
	"gearguard/pkg/types"
)

type Department struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	types.BaseEntity
}
