package dto

type CreateEquipmentDTO struct {
	Name         string  `json:"name" validate:"required"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty"`
	Location     *string `json:"location,omitempty" validate:"omitempty"`
	Note         *string `json:"note,omitempty" validate:"omitempty"`

	PurchaseDate *string `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WarrantyDate *string `json:"warranty_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	OwnerType    string  `json:"owner_type" validate:"required,oneof=department employee"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	EmployeeID   *uint64 `json:"employee_id,omitempty" validate:"omitempty,gt=0"`

	CategoryID   *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TeamID       uint64  `json:"team_id" validate:"required,gt=0"`
	TechnicianID *uint64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEquipmentDTO struct {
	Name         *string `json:"name,omitempty" validate:"omitempty"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty"`
	Location     *string `json:"location,omitempty" validate:"omitempty"`
	Note         *string `json:"note,omitempty" validate:"omitempty"`

	PurchaseDate *string `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WarrantyDate *string `json:"warranty_date,omitempty" validate:"omitempty,datetime=2006-01-02"`

	OwnerType    *string `json:"owner_type,omitempty" validate:"omitempty,oneof=department employee"`
	DepartmentID *uint64 `json:"department_id,omitempty" validate:"omitempty,gt=0"`
	EmployeeID   *uint64 `json:"employee_id,omitempty" validate:"omitempty,gt=0"`

	CategoryID   *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	TeamID       *uint64 `json:"team_id,omitempty" validate:"omitempty,gt=0"`
	TechnicianID *uint64 `json:"technician_id,omitempty" validate:"omitempty,gt=0"`
	Active       *bool   `json:"active,omitempty" validate:"omitempty"`
}

// EquipmentStatsDTO - производные показатели по оборудованию.
type EquipmentStatsDTO struct {
	RequestCount         uint64  `json:"request_count"`
	OpenRequestCount     uint64  `json:"open_request_count"`
	MTBFDays             float64 `json:"mtbf_days"`
	TotalMaintenanceCost float64 `json:"total_maintenance_cost"`
	TotalDowntimeHours   float64 `json:"total_downtime_hours"`
	LastMaintenanceDate  *string `json:"last_maintenance_date,omitempty"`

	WarrantyState     string `json:"warranty_state"`
	DaysToWarrantyEnd int    `json:"days_to_warranty_end"`
	WarrantyAlert     bool   `json:"warranty_alert"`
	WarrantyCritical  bool   `json:"warranty_critical"`
}

type EquipmentDTO struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number,omitempty"`
	State        string  `json:"state"`
	Active       bool    `json:"active"`

	Location *string `json:"location,omitempty"`
	Note     *string `json:"note,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`

	PurchaseDate *string `json:"purchase_date,omitempty"`
	WarrantyDate *string `json:"warranty_date,omitempty"`
	ScrapDate    *string `json:"scrap_date,omitempty"`

	OwnerType    string  `json:"owner_type"`
	DepartmentID *uint64 `json:"department_id,omitempty"`
	EmployeeID   *uint64 `json:"employee_id,omitempty"`

	Category   *ShortCategoryDTO `json:"category,omitempty"`
	Team       ShortTeamDTO      `json:"team"`
	Technician *ShortUserDTO     `json:"technician,omitempty"`

	Stats *EquipmentStatsDTO `json:"stats,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortEquipmentDTO struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number,omitempty"`
}
