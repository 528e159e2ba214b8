package services

import (
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

// Состояния гарантии оборудования.
const (
	WarrantyStateNone     = "none"
	WarrantyStateExpired  = "expired"
	WarrantyStateExpiring = "expiring"
	WarrantyStateValid    = "valid"
)

const hoursPerDay = 24

// startOfDay нормализует момент времени до полуночи, чтобы разница дат
// считалась в целых днях.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / hoursPerDay)
}

// ComputeMTBFDays считает среднее время между корректирующими ремонтами
// в днях: (последняя дата - первая) / (n - 1). Меньше двух ремонтов
// дают 0.
func ComputeMTBFDays(closeDates []time.Time) float64 {
	if len(closeDates) < 2 {
		return 0
	}
	first := closeDates[0]
	last := closeDates[0]
	for _, d := range closeDates[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	totalDays := float64(daysBetween(first, last))
	return totalDays / float64(len(closeDates)-1)
}

// ClassifyWarranty определяет состояние гарантии на дату today.
func ClassifyWarranty(warrantyDate *time.Time, today time.Time, alertDays, criticalDays int) (state string, daysLeft int, alert bool, critical bool) {
	if warrantyDate == nil {
		return WarrantyStateNone, 0, false, false
	}
	daysLeft = daysBetween(today, *warrantyDate)
	switch {
	case daysLeft <= 0:
		state = WarrantyStateExpired
	case daysLeft <= alertDays:
		state = WarrantyStateExpiring
	default:
		state = WarrantyStateValid
	}
	alert = daysLeft > 0 && daysLeft <= alertDays
	critical = daysLeft > 0 && daysLeft <= criticalDays
	return state, daysLeft, alert, critical
}

// LaborCost - стоимость работ: часы простоя умноженные на ставку.
func LaborCost(durationHours, rate float64) float64 {
	return durationHours * rate
}

// TotalCost - полная стоимость ремонта: запчасти плюс работы.
func TotalCost(costParts, durationHours, rate float64) float64 {
	return costParts + LaborCost(durationHours, rate)
}

// OverdueDays сообщает, просрочена ли заявка, и на сколько дней.
// Закрытые и списанные заявки просроченными не считаются.
func OverdueDays(scheduleDate *time.Time, stage string, today time.Time) (bool, int) {
	if scheduleDate == nil {
		return false, 0
	}
	if stage == entities.StageRepaired || stage == entities.StageScrap {
		return false, 0
	}
	days := daysBetween(*scheduleDate, today)
	if days <= 0 {
		return false, 0
	}
	return true, days
}

// BuildEquipmentStats собирает производные показатели оборудования из
// сырой истории обслуживания.
func BuildEquipmentStats(
	history []repositories.MaintenanceHistoryRow,
	warrantyDate *time.Time,
	today time.Time,
	alertDays, criticalDays int,
) dto.EquipmentStatsDTO {
	var stats dto.EquipmentStatsDTO

	correctiveCloseDates := make([]time.Time, 0)
	var lastMaintenance *time.Time

	for _, row := range history {
		stats.RequestCount++
		if row.Stage != entities.StageRepaired && row.Stage != entities.StageScrap {
			stats.OpenRequestCount++
		}
		if row.Stage != entities.StageRepaired {
			continue
		}

		stats.TotalMaintenanceCost += TotalCost(row.CostParts, row.DurationHours, row.CostLaborRate)
		stats.TotalDowntimeHours += row.DurationHours

		if row.CloseDate != nil {
			if lastMaintenance == nil || row.CloseDate.After(*lastMaintenance) {
				lastMaintenance = row.CloseDate
			}
			if row.MaintenanceType == entities.TypeCorrective {
				correctiveCloseDates = append(correctiveCloseDates, *row.CloseDate)
			}
		}
	}

	stats.MTBFDays = ComputeMTBFDays(correctiveCloseDates)
	if lastMaintenance != nil {
		formatted := lastMaintenance.Format("2006-01-02")
		stats.LastMaintenanceDate = &formatted
	}

	state, daysLeft, alert, critical := ClassifyWarranty(warrantyDate, today, alertDays, criticalDays)
	stats.WarrantyState = state
	stats.DaysToWarrantyEnd = daysLeft
	stats.WarrantyAlert = alert
	stats.WarrantyCritical = critical

	return stats
}
