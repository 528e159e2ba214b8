package services

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	txManager     repositories.TxManagerInterface
	bus           *eventbus.Bus
	cfg           config.MaintenanceConfig
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	cfg config.MaintenanceConfig,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		bus:           bus,
		cfg:           cfg,
		logger:        logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error) {
	requests, total, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RequestDTO, 0, len(requests))
	equipmentNames := make(map[uint64]dto.ShortEquipmentDTO)
	teamNames := make(map[uint64]dto.ShortTeamDTO)

	for i := range requests {
		mapped, err := s.mapRequest(ctx, &requests[i], equipmentNames, teamNames)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *mapped)
	}
	return result, total, nil
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapRequest(ctx, request,
		make(map[uint64]dto.ShortEquipmentDTO), make(map[uint64]dto.ShortTeamDTO))
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !equipment.Active || equipment.State == entities.EquipmentStateScrapped {
		return nil, apperrors.ErrEquipmentScrapped
	}

	requestDate, err := parseDate(payload.RequestDate)
	if err != nil {
		return nil, err
	}
	scheduleDate, err := parseDate(payload.ScheduleDate)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	if requestDate == nil {
		requestDate = &today
	}
	// Профилактика без плановой даты уходит на неделю вперед
	if scheduleDate == nil && payload.MaintenanceType == entities.TypePreventive {
		planned := today.AddDate(0, 0, s.cfg.PreventiveLeadDays)
		scheduleDate = &planned
	}

	entity := &entities.MaintenanceRequest{
		Name:            payload.Name,
		Description:     payload.Description,
		EquipmentID:     payload.EquipmentID,
		MaintenanceType: payload.MaintenanceType,
		Stage:           entities.StageNew,
		Priority:        payload.Priority,
		RequestDate:     *requestDate,
		ScheduleDate:    scheduleDate,
		CreatedByID:     userID,
		CostLaborRate:   s.cfg.DefaultLaborRate,
	}

	// Незаполненные исполнители и категория наследуются от оборудования
	entity.CategoryID = payload.CategoryID
	if entity.CategoryID == nil {
		entity.CategoryID = equipment.CategoryID
	}
	if payload.TeamID != nil {
		entity.TeamID = *payload.TeamID
	} else {
		entity.TeamID = equipment.TeamID
	}
	entity.TechnicianID = payload.TechnicianID
	if entity.TechnicianID == nil {
		entity.TechnicianID = equipment.TechnicianID
	}
	if payload.CostLaborRate != nil {
		entity.CostLaborRate = *payload.CostLaborRate
	}

	created, err := s.requestRepo.CreateRequest(ctx, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Заявка создана",
		zap.Uint64("id", created.ID),
		zap.Uint64("equipmentID", created.EquipmentID),
		zap.String("type", created.MaintenanceType))

	return s.mapRequest(ctx, created,
		make(map[uint64]dto.ShortEquipmentDTO), make(map[uint64]dto.ShortTeamDTO))
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	entity, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		entity.Name = *payload.Name
	}
	if payload.Description != nil {
		entity.Description = payload.Description
	}
	if payload.CategoryID != nil {
		entity.CategoryID = payload.CategoryID
	}
	if payload.TeamID != nil {
		entity.TeamID = *payload.TeamID
	}
	if payload.TechnicianID != nil {
		entity.TechnicianID = payload.TechnicianID
	}
	if payload.MaintenanceType != nil {
		entity.MaintenanceType = *payload.MaintenanceType
	}
	if payload.Priority != nil {
		entity.Priority = *payload.Priority
	}
	if payload.ScheduleDate != nil {
		scheduleDate, err := parseDate(payload.ScheduleDate)
		if err != nil {
			return nil, err
		}
		entity.ScheduleDate = scheduleDate
	}
	if payload.DurationHours != nil {
		entity.DurationHours = *payload.DurationHours
	}
	if payload.CostParts != nil {
		entity.CostParts = *payload.CostParts
	}
	if payload.CostLaborRate != nil {
		entity.CostLaborRate = *payload.CostLaborRate
	}

	updated, err := s.requestRepo.UpdateRequest(ctx, entity)
	if err != nil {
		return nil, err
	}
	return s.mapRequest(ctx, updated,
		make(map[uint64]dto.ShortEquipmentDTO), make(map[uint64]dto.ShortTeamDTO))
}

// ChangeStage переводит заявку на другой этап с доменными правилами:
// взятие в работу назначает текущего пользователя техником, закрытие
// проставляет дату и проверяет ее против плановой, списание гасит
// оборудование в той же транзакции.
func (s *RequestService) ChangeStage(ctx context.Context, id uint64, payload dto.ChangeStageDTO) (*dto.RequestDTO, error) {
	entity, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStage := entity.Stage
	newStage := payload.Stage

	// Списанная заявка - терминальное состояние
	if oldStage == entities.StageScrap {
		return nil, apperrors.ErrInvalidStageTransition
	}

	if payload.DurationHours != nil {
		entity.DurationHours = *payload.DurationHours
	}
	if payload.CostParts != nil {
		entity.CostParts = *payload.CostParts
	}

	switch newStage {
	case entities.StageNew:
		entity.CloseDate = nil

	case entities.StageInProgress:
		if entity.TechnicianID == nil {
			userID, err := userIDFromContext(ctx)
			if err != nil {
				return nil, err
			}
			entity.TechnicianID = &userID
		}

	case entities.StageRepaired:
		closeDate, err := parseDate(payload.CloseDate)
		if err != nil {
			return nil, err
		}
		if closeDate == nil {
			today := startOfDay(time.Now())
			closeDate = &today
		}
		if entity.ScheduleDate != nil && closeDate.Before(startOfDay(*entity.ScheduleDate)) {
			return nil, apperrors.ErrCloseBeforeSchedule
		}
		if entity.DurationHours <= 0 {
			s.logger.Warn("Заявка закрывается с нулевым временем простоя",
				zap.Uint64("id", entity.ID))
		}
		entity.CloseDate = closeDate
	}

	entity.Stage = newStage

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requestRepo.UpdateStageInTx(ctx, tx, entity); err != nil {
			return err
		}
		if newStage == entities.StageScrap {
			return s.equipmentRepo.ScrapInTx(ctx, tx, entity.EquipmentID, startOfDay(time.Now()))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка смены этапа заявки",
			zap.Uint64("id", id), zap.String("from", oldStage), zap.String("to", newStage), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Этап заявки изменен",
		zap.Uint64("id", id), zap.String("from", oldStage), zap.String("to", newStage))

	s.publishStageChanged(ctx, entity, oldStage)

	return s.mapRequest(ctx, entity,
		make(map[uint64]dto.ShortEquipmentDTO), make(map[uint64]dto.ShortTeamDTO))
}

func (s *RequestService) publishStageChanged(ctx context.Context, entity *entities.MaintenanceRequest, oldStage string) {
	event := RequestStageChangedEvent{
		RequestID:   entity.ID,
		RequestName: entity.Name,
		OldStage:    oldStage,
		NewStage:    entity.Stage,
	}
	if entity.TechnicianID != nil {
		if technician, err := s.userRepo.FindUser(ctx, *entity.TechnicianID); err == nil {
			event.TechnicianEmail = &technician.Email
		}
	}
	s.bus.Publish(ctx, event)

	if entity.Stage == entities.StageScrap {
		equipmentName := ""
		if equipment, err := s.equipmentRepo.FindEquipment(ctx, entity.EquipmentID); err == nil {
			equipmentName = equipment.Name
		}
		s.bus.Publish(ctx, EquipmentScrappedEvent{
			EquipmentID:   entity.EquipmentID,
			EquipmentName: equipmentName,
			RequestID:     entity.ID,
		})
	}
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	return s.requestRepo.DeleteRequest(ctx, id)
}

func (s *RequestService) mapRequest(
	ctx context.Context,
	entity *entities.MaintenanceRequest,
	equipmentCache map[uint64]dto.ShortEquipmentDTO,
	teamCache map[uint64]dto.ShortTeamDTO,
) (*dto.RequestDTO, error) {
	result := &dto.RequestDTO{
		ID:              entity.ID,
		Name:            entity.Name,
		Description:     entity.Description,
		MaintenanceType: entity.MaintenanceType,
		Stage:           entity.Stage,
		Priority:        entity.Priority,
		RequestDate:     entity.RequestDate.Format(dateLayout),
		ScheduleDate:    formatDate(entity.ScheduleDate),
		CloseDate:       formatDate(entity.CloseDate),
		DurationHours:   entity.DurationHours,
		CostParts:       entity.CostParts,
		CostLaborRate:   entity.CostLaborRate,
		CostLabor:       LaborCost(entity.DurationHours, entity.CostLaborRate),
		CostTotal:       TotalCost(entity.CostParts, entity.DurationHours, entity.CostLaborRate),
		CreatedAt:       formatDateTime(entity.CreatedAt),
		UpdatedAt:       formatDateTime(entity.UpdatedAt),
	}

	overdue, days := OverdueDays(entity.ScheduleDate, entity.Stage, time.Now())
	result.IsOverdue = overdue
	result.DaysOverdue = days

	equipment, ok := equipmentCache[entity.EquipmentID]
	if !ok {
		found, err := s.equipmentRepo.FindEquipment(ctx, entity.EquipmentID)
		if err != nil {
			return nil, err
		}
		equipment = dto.ShortEquipmentDTO{ID: found.ID, Name: found.Name, SerialNumber: found.SerialNumber}
		equipmentCache[entity.EquipmentID] = equipment
	}
	result.Equipment = equipment

	team, ok := teamCache[entity.TeamID]
	if !ok {
		found, err := s.teamRepo.FindTeam(ctx, entity.TeamID)
		if err != nil {
			return nil, err
		}
		team = dto.ShortTeamDTO{ID: found.ID, Name: found.Name}
		teamCache[entity.TeamID] = team
	}
	result.Team = team

	if entity.CategoryID != nil {
		if category, err := s.categoryRepo.FindCategory(ctx, *entity.CategoryID); err == nil {
			result.Category = &dto.ShortCategoryDTO{ID: category.ID, Name: category.Name}
		}
	}
	if entity.TechnicianID != nil {
		if technician, err := s.userRepo.FindUser(ctx, *entity.TechnicianID); err == nil {
			result.Technician = &dto.ShortUserDTO{ID: technician.ID, Fio: technician.Fio}
		}
	}

	return result, nil
}
