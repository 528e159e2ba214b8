package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/filestorage"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

// Критический порог гарантии в днях.
const warrantyCriticalDays = 7

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	categoryRepo   repositories.CategoryRepositoryInterface
	teamRepo       repositories.TeamRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	cfg            config.MaintenanceConfig
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	cfg config.MaintenanceConfig,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		categoryRepo:   categoryRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		fileStorage:    fileStorage,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	equipments, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(equipments))
	categoryCache := make(map[uint64]dto.ShortCategoryDTO)
	teamCache := make(map[uint64]dto.ShortTeamDTO)
	userCache := make(map[uint64]dto.ShortUserDTO)

	for i := range equipments {
		mapped, err := s.mapEquipment(ctx, &equipments[i], false, categoryCache, teamCache, userCache)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *mapped)
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapEquipment(ctx, equipment, true,
		make(map[uint64]dto.ShortCategoryDTO), make(map[uint64]dto.ShortTeamDTO), make(map[uint64]dto.ShortUserDTO))
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.checkSerialUnique(ctx, payload.SerialNumber, 0); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, payload.OwnerType, payload.DepartmentID, payload.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.checkTechnician(ctx, payload.TeamID, payload.TechnicianID); err != nil {
		return nil, err
	}

	purchaseDate, err := parseDate(payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warrantyDate, err := parseDate(payload.WarrantyDate)
	if err != nil {
		return nil, err
	}

	entity := &entities.Equipment{
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		State:        entities.EquipmentStateOperational,
		Active:       true,
		Location:     payload.Location,
		Note:         payload.Note,
		PurchaseDate: purchaseDate,
		WarrantyDate: warrantyDate,
		OwnerType:    payload.OwnerType,
		DepartmentID: payload.DepartmentID,
		EmployeeID:   payload.EmployeeID,
		CategoryID:   payload.CategoryID,
		TeamID:       payload.TeamID,
		TechnicianID: payload.TechnicianID,
	}

	created, err := s.equipmentRepo.CreateEquipment(ctx, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Оборудование создано", zap.Uint64("id", created.ID), zap.String("name", created.Name))

	return s.mapEquipment(ctx, created, false,
		make(map[uint64]dto.ShortCategoryDTO), make(map[uint64]dto.ShortTeamDTO), make(map[uint64]dto.ShortUserDTO))
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	entity, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.SerialNumber != nil {
		if err := s.checkSerialUnique(ctx, payload.SerialNumber, id); err != nil {
			return nil, err
		}
		entity.SerialNumber = payload.SerialNumber
	}
	if payload.Name != nil {
		entity.Name = *payload.Name
	}
	if payload.Location != nil {
		entity.Location = payload.Location
	}
	if payload.Note != nil {
		entity.Note = payload.Note
	}
	if payload.PurchaseDate != nil {
		purchaseDate, err := parseDate(payload.PurchaseDate)
		if err != nil {
			return nil, err
		}
		entity.PurchaseDate = purchaseDate
	}
	if payload.WarrantyDate != nil {
		warrantyDate, err := parseDate(payload.WarrantyDate)
		if err != nil {
			return nil, err
		}
		entity.WarrantyDate = warrantyDate
	}
	if payload.OwnerType != nil {
		entity.OwnerType = *payload.OwnerType
	}
	if payload.DepartmentID != nil {
		entity.DepartmentID = payload.DepartmentID
	}
	if payload.EmployeeID != nil {
		entity.EmployeeID = payload.EmployeeID
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
	if payload.Active != nil {
		entity.Active = *payload.Active
	}

	if err := s.checkOwner(ctx, entity.OwnerType, entity.DepartmentID, entity.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.checkTechnician(ctx, entity.TeamID, entity.TechnicianID); err != nil {
		return nil, err
	}

	updated, err := s.equipmentRepo.UpdateEquipment(ctx, entity)
	if err != nil {
		return nil, err
	}
	return s.mapEquipment(ctx, updated, false,
		make(map[uint64]dto.ShortCategoryDTO), make(map[uint64]dto.ShortTeamDTO), make(map[uint64]dto.ShortUserDTO))
}

// UploadPhoto сохраняет фото оборудования в файловое хранилище и
// запоминает путь к нему.
func (s *EquipmentService) UploadPhoto(ctx context.Context, id uint64, file io.Reader, filename string) (string, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return "", err
	}

	path, err := s.fileStorage.Save(file, filename, "equipment")
	if err != nil {
		s.logger.Error("Не удалось сохранить фото оборудования", zap.Uint64("id", id), zap.Error(err))
		return "", err
	}

	if err := s.equipmentRepo.UpdatePhotoURL(ctx, id, path); err != nil {
		// откатываем сохраненный файл, чтобы не копить мусор
		_ = s.fileStorage.Delete(path)
		return "", err
	}
	return path, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func (s *EquipmentService) checkSerialUnique(ctx context.Context, serial *string, selfID uint64) error {
	if serial == nil || *serial == "" {
		return nil
	}
	existing, err := s.equipmentRepo.FindBySerial(ctx, *serial)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("серийный номер «%s» уже используется", *serial), nil, nil)
	}
	return nil
}

func (s *EquipmentService) checkOwner(ctx context.Context, ownerType string, departmentID, employeeID *uint64) error {
	switch ownerType {
	case entities.OwnerTypeDepartment:
		if departmentID == nil {
			return apperrors.NewInvalidInputError("для владельца-отдела требуется department_id")
		}
		if _, err := s.departmentRepo.FindDepartment(ctx, *departmentID); err != nil {
			if err == apperrors.ErrNotFound {
				return apperrors.NewInvalidInputError("отдел %d не найден", *departmentID)
			}
			return err
		}
	case entities.OwnerTypeEmployee:
		if employeeID == nil {
			return apperrors.NewInvalidInputError("для владельца-сотрудника требуется employee_id")
		}
		if _, err := s.userRepo.FindUser(ctx, *employeeID); err != nil {
			if err == apperrors.ErrNotFound {
				return apperrors.NewInvalidInputError("сотрудник %d не найден", *employeeID)
			}
			return err
		}
	}
	return nil
}

func (s *EquipmentService) checkTechnician(ctx context.Context, teamID uint64, technicianID *uint64) error {
	if technicianID == nil {
		return nil
	}
	isMember, err := s.teamRepo.IsMember(ctx, teamID, *technicianID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.NewInvalidInputError("техник должен быть участником команды обслуживания")
	}
	return nil
}

func (s *EquipmentService) mapEquipment(
	ctx context.Context,
	entity *entities.Equipment,
	withStats bool,
	categoryCache map[uint64]dto.ShortCategoryDTO,
	teamCache map[uint64]dto.ShortTeamDTO,
	userCache map[uint64]dto.ShortUserDTO,
) (*dto.EquipmentDTO, error) {
	result := &dto.EquipmentDTO{
		ID:           entity.ID,
		Name:         entity.Name,
		SerialNumber: entity.SerialNumber,
		State:        entity.State,
		Active:       entity.Active,
		Location:     entity.Location,
		Note:         entity.Note,
		PhotoURL:     entity.PhotoURL,
		PurchaseDate: formatDate(entity.PurchaseDate),
		WarrantyDate: formatDate(entity.WarrantyDate),
		ScrapDate:    formatDate(entity.ScrapDate),
		OwnerType:    entity.OwnerType,
		DepartmentID: entity.DepartmentID,
		EmployeeID:   entity.EmployeeID,
		CreatedAt:    formatDateTime(entity.CreatedAt),
		UpdatedAt:    formatDateTime(entity.UpdatedAt),
	}

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
		category, ok := categoryCache[*entity.CategoryID]
		if !ok {
			if found, err := s.categoryRepo.FindCategory(ctx, *entity.CategoryID); err == nil {
				category = dto.ShortCategoryDTO{ID: found.ID, Name: found.Name}
				categoryCache[*entity.CategoryID] = category
				ok = true
			}
		}
		if ok {
			result.Category = &category
		}
	}

	if entity.TechnicianID != nil {
		technician, ok := userCache[*entity.TechnicianID]
		if !ok {
			if found, err := s.userRepo.FindUser(ctx, *entity.TechnicianID); err == nil {
				technician = dto.ShortUserDTO{ID: found.ID, Fio: found.Fio}
				userCache[*entity.TechnicianID] = technician
				ok = true
			}
		}
		if ok {
			result.Technician = &technician
		}
	}

	if withStats {
		history, err := s.equipmentRepo.GetMaintenanceHistory(ctx, entity.ID)
		if err != nil {
			return nil, err
		}
		stats := BuildEquipmentStats(history, entity.WarrantyDate, time.Now(),
			s.cfg.WarrantyAlertDays, warrantyCriticalDays)
		result.Stats = &stats
	}

	return result, nil
}
