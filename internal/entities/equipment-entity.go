package entities

import (
	"time"

	"gearguard/pkg/types"
)

// Состояния оборудования.
const (
	EquipmentStateOperational = "operational"
	EquipmentStateMaintenance = "maintenance"
	EquipmentStateScrapped    = "scrapped"
)

// Типы владельца оборудования.
const (
	OwnerTypeDepartment = "department"
	OwnerTypeEmployee   = "employee"
)

type Equipment struct {
	ID           uint64  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	SerialNumber *string `json:"serial_number,omitempty" db:"serial_number"`
	State        string  `json:"state" db:"state"`
	Active       bool    `json:"active" db:"active"`

	Location *string `json:"location,omitempty" db:"location"`
	Note     *string `json:"note,omitempty" db:"note"`
	PhotoURL *string `json:"photo_url,omitempty" db:"photo_url"`

	PurchaseDate *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	WarrantyDate *time.Time `json:"warranty_date,omitempty" db:"warranty_date"`
	ScrapDate    *time.Time `json:"scrap_date,omitempty" db:"scrap_date"`

	OwnerType    string  `json:"owner_type" db:"owner_type"`
	DepartmentID *uint64 `json:"department_id,omitempty" db:"department_id"`
	EmployeeID   *uint64 `json:"employee_id,omitempty" db:"employee_id"`

	CategoryID   *uint64 `json:"category_id,omitempty" db:"category_id"`
	TeamID       uint64  `json:"team_id" db:"team_id"`
	TechnicianID *uint64 `json:"technician_id,omitempty" db:"technician_id"`

	types.BaseEntity

	// Связанные данные, не колонки в таблице
	Category   *EquipmentCategory `json:"category,omitempty" db:"-"`
	Team       *MaintenanceTeam   `json:"team,omitempty" db:"-"`
	Technician *User              `json:"technician,omitempty" db:"-"`
	Department *Department        `json:"department,omitempty" db:"-"`
	Employee   *User              `json:"employee,omitempty" db:"-"`
}
