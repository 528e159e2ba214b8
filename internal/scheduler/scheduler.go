package scheduler

import (
	"context"
	"time"

	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"

	"go.uber.org/zap"
)

// Scheduler запускает фоновые задачи сервиса: напоминания о просроченных
// заявках и сканирование гарантий. Обе задачи выполняются сразу при
// старте и далее по своим интервалам.
type Scheduler struct {
	requestRepo     repositories.RequestRepositoryInterface
	warrantyService *services.WarrantyService
	notifications   services.NotificationServiceInterface
	cfg             config.SchedulerConfig
	logger          *zap.Logger
}

func New(
	requestRepo repositories.RequestRepositoryInterface,
	warrantyService *services.WarrantyService,
	notifications services.NotificationServiceInterface,
	cfg config.SchedulerConfig,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		requestRepo:     requestRepo,
		warrantyService: warrantyService,
		notifications:   notifications,
		cfg:             cfg,
		logger:          logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runLoop(ctx, "overdue_reminders", s.cfg.OverdueReminderInterval, s.remindOverdue)
	go s.runLoop(ctx, "warranty_scan", s.cfg.WarrantyScanInterval, s.warrantyService.ScanAndNotify)
}

func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, job func(context.Context) error) {
	s.logger.Info("Планировщик: задача запущена",
		zap.String("задача", name), zap.Duration("интервал", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := job(ctx); err != nil {
		s.logger.Error("Планировщик: ошибка выполнения задачи",
			zap.String("задача", name), zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Планировщик: задача остановлена", zap.String("задача", name))
			return
		case <-ticker.C:
			if err := job(ctx); err != nil {
				s.logger.Error("Планировщик: ошибка выполнения задачи",
					zap.String("задача", name), zap.Error(err))
			}
		}
	}
}

// remindOverdue группирует просроченные заявки по технику и шлет каждому
// одно письмо со списком. Заявки без техника только логируются.
func (s *Scheduler) remindOverdue(ctx context.Context) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := s.requestRepo.ListOverdue(ctx, today)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.logger.Debug("Планировщик: просроченных заявок нет")
		return nil
	}

	byTechnician := make(map[uint64][]repositories.OverdueRow)
	unassigned := 0
	for _, row := range rows {
		if row.TechnicianID == nil || row.TechnicianEmail == nil || *row.TechnicianEmail == "" {
			unassigned++
			continue
		}
		byTechnician[*row.TechnicianID] = append(byTechnician[*row.TechnicianID], row)
	}
	if unassigned > 0 {
		s.logger.Warn("Планировщик: просроченные заявки без техника",
			zap.Int("количество", unassigned))
	}

	for _, items := range byTechnician {
		fio := ""
		if items[0].TechnicianFio != nil {
			fio = *items[0].TechnicianFio
		}
		if err := s.notifications.SendOverdueReminder(ctx, *items[0].TechnicianEmail, fio, items); err != nil {
			// Письма остальным техникам все равно пытаемся отправить.
			s.logger.Error("Планировщик: не удалось отправить напоминание",
				zap.String("кому", *items[0].TechnicianEmail), zap.Error(err))
		}
	}

	s.logger.Info("Планировщик: напоминания о просроченных заявках отправлены",
		zap.Int("техников", len(byTechnician)), zap.Int("заявок", len(rows)))
	return nil
}
