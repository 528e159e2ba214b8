package types

// Типы для дашборда обслуживания. Все агрегаты считаются в репозитории.

type DashboardAlerts struct {
	OverdueCount          int `json:"overdue_count"`
	WarrantyExpiringCount int `json:"warranty_expiring_count"`
}

type DashboardKPIs struct {
	TotalRequests   int     `json:"total_requests"`
	OpenRequests    int     `json:"open_requests"`
	RepairedLast30d int     `json:"repaired_last_30d"`
	CostLast30d     float64 `json:"cost_last_30d"`
	CorrectiveCount int     `json:"corrective_count"`
	PreventiveCount int     `json:"preventive_count"`
}

type DashboardCountByGroup struct {
	ID    uint64 `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DashboardCostByEquipment struct {
	EquipmentID   uint64  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	TotalCost     float64 `json:"total_cost"`
}

type Dashboard struct {
	Alerts             *DashboardAlerts           `json:"alerts"`
	KPIs               *DashboardKPIs             `json:"kpis"`
	CountByStage       []DashboardCountByGroup    `json:"count_by_stage"`
	CountByTeam        []DashboardCountByGroup    `json:"count_by_team"`
	TopEquipmentByCost []DashboardCostByEquipment `json:"top_equipment_by_cost"`
}
