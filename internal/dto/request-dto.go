package dto

type CreateRequestDTO struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty" validate:"omitempty"`

	EquipmentID  uint64  `json:"equipment_id" validate:"required,gt=0"`
	CategoryID   *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TeamID       *uint64 `json:"team_id,omitempty" validate:"omitempty,gt=0"`
	TechnicianID *uint64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`

	MaintenanceType string `json:"maintenance_type" validate:"required,maintenance_type"`
	Priority        int16  `json:"priority" validate:"omitempty,gte=0,lte=3"`

	RequestDate  *string `json:"request_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduleDate *string `json:"schedule_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	CostLaborRate *float64 `json:"cost_labor_rate,omitempty" validate:"omitempty,gte=0"`
}

type UpdateRequestDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty"`

	CategoryID   *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TeamID       *uint64 `json:"team_id,omitempty" validate:"omitempty,gt=0"`
	TechnicianID *uint64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`

	MaintenanceType *string `json:"maintenance_type,omitempty" validate:"omitempty,maintenance_type"`
	Priority        *int16  `json:"priority,omitempty" validate:"omitempty,gte=0,lte=3"`

	ScheduleDate *string `json:"schedule_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	DurationHours *float64 `json:"duration_hours,omitempty" validate:"omitempty,gte=0"`
	CostParts     *float64 `json:"cost_parts,omitempty" validate:"omitempty,gte=0"`
	CostLaborRate *float64 `json:"cost_labor_rate,omitempty" validate:"omitempty,gte=0"`
}

// ChangeStageDTO переводит заявку на другой этап.
type ChangeStageDTO struct {
	Stage         string   `json:"stage" validate:"required,maintenance_stage"`
	CloseDate     *string  `json:"close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DurationHours *float64 `json:"duration_hours,omitempty" validate:"omitempty,gte=0"`
	CostParts     *float64 `json:"cost_parts,omitempty" validate:"omitempty,gte=0"`
}

type RequestDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	Equipment  ShortEquipmentDTO `json:"equipment"`
	Category   *ShortCategoryDTO `json:"category,omitempty"`
	Team       ShortTeamDTO      `json:"team"`
	Technician *ShortUserDTO     `json:"technician,omitempty"`

	MaintenanceType string `json:"maintenance_type"`
	Stage           string `json:"stage"`
	Priority        int16  `json:"priority"`

	RequestDate  string  `json:"request_date"`
	ScheduleDate *string `json:"schedule_date,omitempty"`
	CloseDate    *string `json:"close_date,omitempty"`

	DurationHours float64 `json:"duration_hours"`
	CostParts     float64 `json:"cost_parts"`
	CostLaborRate float64 `json:"cost_labor_rate"`
	CostLabor     float64 `json:"cost_labor"`
	CostTotal     float64 `json:"cost_total"`

	IsOverdue   bool `json:"is_overdue"`
	DaysOverdue int  `json:"days_overdue"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
