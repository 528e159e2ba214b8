package services

// События доменной шины.
const (
	EventRequestStageChanged = "request.stage_changed"
	EventEquipmentScrapped   = "equipment.scrapped"
)

type RequestStageChangedEvent struct {
	RequestID       uint64
	RequestName     string
	OldStage        string
	NewStage        string
	TechnicianEmail *string
}

func (e RequestStageChangedEvent) Name() string { return EventRequestStageChanged }

type EquipmentScrappedEvent struct {
	EquipmentID   uint64
	EquipmentName string
	RequestID     uint64
}

func (e EquipmentScrappedEvent) Name() string { return EventEquipmentScrapped }
