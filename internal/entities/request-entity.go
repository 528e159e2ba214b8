package entities

import (
	"time"

	"gearguard/pkg/types"
)

// Этапы жизненного цикла заявки.
const (
	StageNew        = "new"
	StageInProgress = "in_progress"
	StageRepaired   = "repaired"
	StageScrap      = "scrap"
)

// Типы обслуживания.
const (
	TypeCorrective = "corrective"
	TypePreventive = "preventive"
)

type MaintenanceRequest struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`

	EquipmentID  uint64  `json:"equipment_id" db:"equipment_id"`
	CategoryID   *uint64 `json:"category_id,omitempty" db:"category_id"`
	TeamID       uint64  `json:"team_id" db:"team_id"`
	TechnicianID *uint64 `json:"technician_id,omitempty" db:"technician_id"`
	CreatedByID  uint64  `json:"created_by_id" db:"created_by_id"`

	MaintenanceType string `json:"maintenance_type" db:"maintenance_type"`
	Stage           string `json:"stage" db:"stage"`
	Priority        int16  `json:"priority" db:"priority"`

	RequestDate  time.Time  `json:"request_date" db:"request_date"`
	ScheduleDate *time.Time `json:"schedule_date,omitempty" db:"schedule_date"`
	CloseDate    *time.Time `json:"close_date,omitempty" db:"close_date"`

	// Часы простоя и стоимость ремонта
	DurationHours float64 `json:"duration_hours" db:"duration_hours"`
	CostParts     float64 `json:"cost_parts" db:"cost_parts"`
	CostLaborRate float64 `json:"cost_labor_rate" db:"cost_labor_rate"`

	types.BaseEntity

	Equipment  *Equipment         `json:"equipment,omitempty" db:"-"`
	Category   *EquipmentCategory `json:"category,omitempty" db:"-"`
	Team       *MaintenanceTeam   `json:"team,omitempty" db:"-"`
	Technician *User              `json:"technician,omitempty" db:"-"`
}

// IsOpen сообщает, числится ли заявка незакрытой.
func (r *MaintenanceRequest) IsOpen() bool {
	return r.Stage != StageRepaired && r.Stage != StageScrap
}
