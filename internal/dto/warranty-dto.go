package dto

type WarrantyAlertDTO struct {
	EquipmentID   uint64  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	SerialNumber  *string `json:"serial_number,omitempty"`
	TeamID        uint64  `json:"team_id"`
	WarrantyDate  string  `json:"warranty_date"`
	DaysLeft      int     `json:"days_left"`
	Critical      bool    `json:"critical"`
}

type SendWarrantyAlertsDTO struct {
	EquipmentIDs []uint64 `json:"equipment_ids" validate:"required,min=1,dive,gt=0"`
}

type SendWarrantyAlertsResultDTO struct {
	SentCount    int      `json:"sent_count"`
	SkippedCount int      `json:"skipped_count"`
	EquipmentIDs []uint64 `json:"equipment_ids"`
}
