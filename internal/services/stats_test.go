package services

import (
	"testing"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeMTBFDays(t *testing.T) {
	t.Run("меньше двух ремонтов дают ноль", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeMTBFDays(nil))
		assert.Equal(t, 0.0, ComputeMTBFDays([]time.Time{date(2026, 1, 10)}))
	})

	t.Run("два ремонта", func(t *testing.T) {
		mtbf := ComputeMTBFDays([]time.Time{date(2026, 1, 10), date(2026, 1, 20)})
		assert.Equal(t, 10.0, mtbf)
	})

	t.Run("порядок дат не важен", func(t *testing.T) {
		mtbf := ComputeMTBFDays([]time.Time{date(2026, 1, 20), date(2026, 1, 10)})
		assert.Equal(t, 10.0, mtbf)
	})

	t.Run("три ремонта делят интервал на два", func(t *testing.T) {
		mtbf := ComputeMTBFDays([]time.Time{date(2026, 1, 1), date(2026, 1, 11), date(2026, 1, 31)})
		assert.Equal(t, 15.0, mtbf)
	})

	t.Run("ремонты в один день", func(t *testing.T) {
		mtbf := ComputeMTBFDays([]time.Time{date(2026, 1, 10), date(2026, 1, 10)})
		assert.Equal(t, 0.0, mtbf)
	})
}

func TestClassifyWarranty(t *testing.T) {
	today := date(2026, 3, 1)
	const alertDays, criticalDays = 30, 7

	t.Run("без даты гарантии", func(t *testing.T) {
		state, daysLeft, alert, critical := ClassifyWarranty(nil, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateNone, state)
		assert.Equal(t, 0, daysLeft)
		assert.False(t, alert)
		assert.False(t, critical)
	})

	t.Run("гарантия истекла", func(t *testing.T) {
		wd := date(2026, 2, 1)
		state, daysLeft, alert, critical := ClassifyWarranty(&wd, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateExpired, state)
		assert.Equal(t, -28, daysLeft)
		assert.False(t, alert)
		assert.False(t, critical)
	})

	t.Run("истекает сегодня считается истекшей", func(t *testing.T) {
		wd := today
		state, _, alert, _ := ClassifyWarranty(&wd, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateExpired, state)
		assert.False(t, alert)
	})

	t.Run("истекает в окне алерта", func(t *testing.T) {
		wd := date(2026, 3, 21)
		state, daysLeft, alert, critical := ClassifyWarranty(&wd, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateExpiring, state)
		assert.Equal(t, 20, daysLeft)
		assert.True(t, alert)
		assert.False(t, critical)
	})

	t.Run("критический порог", func(t *testing.T) {
		wd := date(2026, 3, 6)
		state, daysLeft, alert, critical := ClassifyWarranty(&wd, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateExpiring, state)
		assert.Equal(t, 5, daysLeft)
		assert.True(t, alert)
		assert.True(t, critical)
	})

	t.Run("гарантия действует без алерта", func(t *testing.T) {
		wd := date(2026, 5, 1)
		state, daysLeft, alert, critical := ClassifyWarranty(&wd, today, alertDays, criticalDays)
		assert.Equal(t, WarrantyStateValid, state)
		assert.Equal(t, 61, daysLeft)
		assert.False(t, alert)
		assert.False(t, critical)
	})
}

func TestCosts(t *testing.T) {
	assert.Equal(t, 100.0, LaborCost(2, 50))
	assert.Equal(t, 130.0, TotalCost(30, 2, 50))
	assert.Equal(t, 0.0, TotalCost(0, 0, 50))
}

func TestOverdueDays(t *testing.T) {
	today := date(2026, 3, 10)

	t.Run("без плановой даты", func(t *testing.T) {
		overdue, days := OverdueDays(nil, entities.StageNew, today)
		assert.False(t, overdue)
		assert.Equal(t, 0, days)
	})

	t.Run("план в прошлом и заявка открыта", func(t *testing.T) {
		sd := date(2026, 3, 9)
		overdue, days := OverdueDays(&sd, entities.StageNew, today)
		assert.True(t, overdue)
		assert.Equal(t, 1, days)
	})

	t.Run("план сегодня не просрочен", func(t *testing.T) {
		sd := today
		overdue, _ := OverdueDays(&sd, entities.StageInProgress, today)
		assert.False(t, overdue)
	})

	t.Run("закрытые заявки не просрочены", func(t *testing.T) {
		sd := date(2026, 1, 1)
		overdue, _ := OverdueDays(&sd, entities.StageRepaired, today)
		assert.False(t, overdue)
		overdue, _ = OverdueDays(&sd, entities.StageScrap, today)
		assert.False(t, overdue)
	})
}

func TestBuildEquipmentStats(t *testing.T) {
	today := date(2026, 3, 1)
	close1 := date(2026, 1, 10)
	close2 := date(2026, 1, 20)
	close3 := date(2026, 2, 5)

	history := []repositories.MaintenanceHistoryRow{
		{MaintenanceType: entities.TypeCorrective, Stage: entities.StageRepaired,
			CloseDate: &close1, DurationHours: 2, CostParts: 30, CostLaborRate: 50},
		{MaintenanceType: entities.TypeCorrective, Stage: entities.StageRepaired,
			CloseDate: &close2, DurationHours: 1, CostParts: 0, CostLaborRate: 50},
		// Профилактика в MTBF не попадает, но в стоимость входит.
		{MaintenanceType: entities.TypePreventive, Stage: entities.StageRepaired,
			CloseDate: &close3, DurationHours: 4, CostParts: 10, CostLaborRate: 50},
		{MaintenanceType: entities.TypeCorrective, Stage: entities.StageNew},
	}

	stats := BuildEquipmentStats(history, nil, today, 30, 7)

	assert.Equal(t, uint64(4), stats.RequestCount)
	assert.Equal(t, uint64(1), stats.OpenRequestCount)
	assert.Equal(t, 10.0, stats.MTBFDays)
	// 30+100, 0+50, 10+200
	assert.Equal(t, 390.0, stats.TotalMaintenanceCost)
	assert.Equal(t, 7.0, stats.TotalDowntimeHours)
	assert.Equal(t, WarrantyStateNone, stats.WarrantyState)
	if assert.NotNil(t, stats.LastMaintenanceDate) {
		assert.Equal(t, "2026-02-05", *stats.LastMaintenanceDate)
	}
}

func TestBuildEquipmentStatsEmptyHistory(t *testing.T) {
	wd := date(2026, 3, 15)
	stats := BuildEquipmentStats(nil, &wd, date(2026, 3, 1), 30, 7)

	assert.Equal(t, uint64(0), stats.RequestCount)
	assert.Equal(t, 0.0, stats.MTBFDays)
	assert.Nil(t, stats.LastMaintenanceDate)
	assert.Equal(t, WarrantyStateExpiring, stats.WarrantyState)
	assert.Equal(t, 14, stats.DaysToWarrantyEnd)
	assert.True(t, stats.WarrantyAlert)
	assert.False(t, stats.WarrantyCritical)
}
