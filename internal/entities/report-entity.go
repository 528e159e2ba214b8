package entities

import (
	"database/sql"
	"time"
)

type ReportFilter struct {
	DateFrom        *time.Time
	DateTo          *time.Time
	TeamIDs         []uint64
	CategoryIDs     []uint64
	TechnicianIDs   []uint64
	EquipmentIDs    []uint64
	Stages          []string
	MaintenanceType string
	Page            int
	PerPage         int
	SortOrder       string
}

type ReportItem struct {
	RequestID       uint64          `json:"request_id" db:"request_id"`
	RequestName     string          `json:"request_name" db:"request_name"`
	Stage           string          `json:"stage" db:"stage"`
	MaintenanceType string          `json:"maintenance_type" db:"maintenance_type"`
	Priority        int16           `json:"priority" db:"priority"`
	EquipmentID     uint64          `json:"equipment_id" db:"equipment_id"`
	EquipmentName   string          `json:"equipment_name" db:"equipment_name"`
	SerialNumber    sql.NullString  `json:"serial_number" db:"serial_number"`
	CategoryName    sql.NullString  `json:"category_name" db:"category_name"`
	TeamName        string          `json:"team_name" db:"team_name"`
	TechnicianName  sql.NullString  `json:"technician_name" db:"technician_name"`
	RequestDate     time.Time       `json:"request_date" db:"request_date"`
	ScheduleDate    sql.NullTime    `json:"schedule_date" db:"schedule_date"`
	CloseDate       sql.NullTime    `json:"close_date" db:"close_date"`
	ResolutionDays  sql.NullFloat64 `json:"resolution_days" db:"resolution_days"`
	DurationHours   float64         `json:"duration_hours" db:"duration_hours"`
	CostParts       float64         `json:"cost_parts" db:"cost_parts"`
	CostLabor       float64         `json:"cost_labor" db:"cost_labor"`
	CostTotal       float64         `json:"cost_total" db:"cost_total"`
}
