package services

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"

	"go.uber.org/zap"
)

// WarrantyService отвечает за гарантийные уведомления: список
// оборудования с истекающей гарантией, адресная рассылка и
// периодический скан для планировщика.
type WarrantyService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	notifications NotificationServiceInterface
	cfg           config.MaintenanceConfig
	logger        *zap.Logger
}

func NewWarrantyService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	notifications NotificationServiceInterface,
	cfg config.MaintenanceConfig,
	logger *zap.Logger,
) *WarrantyService {
	return &WarrantyService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		cacheRepo:     cacheRepo,
		notifications: notifications,
		cfg:           cfg,
		logger:        logger,
	}
}

// ListAlerts отдает оборудование, по которому гарантия истекает в
// ближайшие WarrantyAlertDays дней.
func (s *WarrantyService) ListAlerts(ctx context.Context) ([]dto.WarrantyAlertDTO, error) {
	today := startOfDay(time.Now())
	cutoff := today.AddDate(0, 0, s.cfg.WarrantyAlertDays)

	equipments, err := s.equipmentRepo.ListWarrantyExpiring(ctx, today, cutoff)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.WarrantyAlertDTO, 0, len(equipments))
	for i := range equipments {
		alerts = append(alerts, s.mapAlert(&equipments[i], today))
	}
	return alerts, nil
}

// SendAlerts рассылает уведомления по выбранному оборудованию. Позиции
// без действующего гарантийного алерта или без техника пропускаются.
func (s *WarrantyService) SendAlerts(ctx context.Context, payload dto.SendWarrantyAlertsDTO) (*dto.SendWarrantyAlertsResultDTO, error) {
	equipments, err := s.equipmentRepo.ListByIDs(ctx, payload.EquipmentIDs)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	result := &dto.SendWarrantyAlertsResultDTO{EquipmentIDs: make([]uint64, 0)}

	for i := range equipments {
		equipment := &equipments[i]
		sent, err := s.notifyOne(ctx, equipment, today)
		if err != nil {
			return nil, err
		}
		if sent {
			result.SentCount++
			result.EquipmentIDs = append(result.EquipmentIDs, equipment.ID)
		} else {
			result.SkippedCount++
		}
	}

	s.logger.Info("Гарантийная рассылка завершена",
		zap.Int("отправлено", result.SentCount), zap.Int("пропущено", result.SkippedCount))
	return result, nil
}

// ScanAndNotify - задача планировщика: находит оборудование с
// истекающей гарантией и рассылает уведомления. Повторные письма по
// одной и той же позиции гасятся через кеш.
func (s *WarrantyService) ScanAndNotify(ctx context.Context) error {
	today := startOfDay(time.Now())
	cutoff := today.AddDate(0, 0, s.cfg.WarrantyAlertDays)

	equipments, err := s.equipmentRepo.ListWarrantyExpiring(ctx, today, cutoff)
	if err != nil {
		return err
	}

	sent := 0
	for i := range equipments {
		equipment := &equipments[i]

		cacheKey := fmt.Sprintf("warranty:notified:%d", equipment.ID)
		if _, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
			continue
		}

		ok, err := s.notifyOne(ctx, equipment, today)
		if err != nil {
			s.logger.Error("Ошибка гарантийного уведомления при скане",
				zap.Uint64("equipmentID", equipment.ID), zap.Error(err))
			continue
		}
		if ok {
			sent++
			// Не шлем повторно в течение недели
			if err := s.cacheRepo.Set(ctx, cacheKey, "1", 7*24*time.Hour); err != nil {
				s.logger.Warn("Не удалось записать отметку об уведомлении в кеш",
					zap.Uint64("equipmentID", equipment.ID), zap.Error(err))
			}
		}
	}

	s.logger.Info("Скан гарантий завершен",
		zap.Int("найдено", len(equipments)), zap.Int("отправлено", sent))
	return nil
}

func (s *WarrantyService) notifyOne(ctx context.Context, equipment *entities.Equipment, today time.Time) (bool, error) {
	_, daysLeft, alert, critical := ClassifyWarranty(equipment.WarrantyDate, today,
		s.cfg.WarrantyAlertDays, warrantyCriticalDays)
	if !alert {
		return false, nil
	}
	if equipment.TechnicianID == nil {
		s.logger.Warn("У оборудования нет техника, уведомление о гарантии пропущено",
			zap.Uint64("equipmentID", equipment.ID))
		return false, nil
	}

	technician, err := s.userRepo.FindUser(ctx, *equipment.TechnicianID)
	if err != nil {
		return false, err
	}

	err = s.notifications.SendWarrantyAlert(ctx, technician.Email,
		equipment.Name, equipment.SerialNumber, *equipment.WarrantyDate, daysLeft, critical)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *WarrantyService) mapAlert(equipment *entities.Equipment, today time.Time) dto.WarrantyAlertDTO {
	_, daysLeft, _, critical := ClassifyWarranty(equipment.WarrantyDate, today,
		s.cfg.WarrantyAlertDays, warrantyCriticalDays)
	return dto.WarrantyAlertDTO{
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Name,
		SerialNumber:  equipment.SerialNumber,
		TeamID:        equipment.TeamID,
		WarrantyDate:  equipment.WarrantyDate.Format(dateLayout),
		DaysLeft:      daysLeft,
		Critical:      critical,
	}
}
