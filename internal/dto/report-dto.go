package dto

type ReportFilterDTO struct {
	DateFrom        *string  `json:"date_from,omitempty" query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo          *string  `json:"date_to,omitempty" query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	TeamIDs         []uint64 `json:"team_ids,omitempty" validate:"omitempty,dive,gt=0"`
	CategoryIDs     []uint64 `json:"category_ids,omitempty" validate:"omitempty,dive,gt=0"`
	TechnicianIDs   []uint64 `json:"technician_ids,omitempty" validate:"omitempty,dive,gt=0"`
	EquipmentIDs    []uint64 `json:"equipment_ids,omitempty" validate:"omitempty,dive,gt=0"`
	Stages          []string `json:"stages,omitempty" validate:"omitempty,dive,maintenance_stage"`
	MaintenanceType string   `json:"maintenance_type,omitempty" validate:"omitempty,maintenance_type"`
	Page            int      `json:"page,omitempty" validate:"omitempty,gte=1"`
	PerPage         int      `json:"per_page,omitempty" validate:"omitempty,gte=1,lte=500"`
	SortOrder       string   `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
}

type ReportSummaryDTO struct {
	TotalRequests   uint64  `json:"total_requests"`
	RepairedCount   uint64  `json:"repaired_count"`
	TotalCost       float64 `json:"total_cost"`
	TotalDowntime   float64 `json:"total_downtime_hours"`
	AvgResolution   float64 `json:"avg_resolution_days"`
	CorrectiveCount uint64  `json:"corrective_count"`
	PreventiveCount uint64  `json:"preventive_count"`
}
