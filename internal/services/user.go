package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo        repositories.UserRepositoryInterface
	roleRepo        repositories.RoleRepositoryInterface
	permissionsAuth AuthPermissionServiceInterface
	logger          *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	roleRepo repositories.RoleRepositoryInterface,
	permissionsAuth AuthPermissionServiceInterface,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		permissionsAuth: permissionsAuth,
		logger:          logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	roleNames := make(map[uint64]string)
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, s.mapUser(ctx, &users[i], roleNames))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	mapped := s.mapUser(ctx, user, make(map[uint64]string))
	return &mapped, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if _, err := s.roleRepo.FindRole(ctx, payload.RoleID); err != nil {
		return nil, apperrors.NewInvalidInputError("роль %d не найдена", payload.RoleID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Не удалось захешировать пароль", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	entity := &entities.User{
		Fio:          payload.Fio,
		Email:        payload.Email,
		PhoneNumber:  payload.PhoneNumber,
		Password:     string(hash),
		RoleID:       payload.RoleID,
		DepartmentID: payload.DepartmentID,
		Active:       true,
	}

	created, err := s.userRepo.CreateUser(ctx, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании пользователя", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Пользователь создан", zap.Uint64("id", created.ID), zap.String("email", created.Email))

	mapped := s.mapUser(ctx, created, make(map[uint64]string))
	return &mapped, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	entity, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Fio != nil {
		entity.Fio = *payload.Fio
	}
	if payload.Email != nil {
		entity.Email = *payload.Email
	}
	if payload.PhoneNumber != nil {
		entity.PhoneNumber = *payload.PhoneNumber
	}
	if payload.RoleID != nil {
		if _, err := s.roleRepo.FindRole(ctx, *payload.RoleID); err != nil {
			return nil, apperrors.NewInvalidInputError("роль %d не найдена", *payload.RoleID)
		}
		entity.RoleID = *payload.RoleID
	}
	if payload.DepartmentID != nil {
		entity.DepartmentID = payload.DepartmentID
	}
	if payload.Active != nil {
		entity.Active = *payload.Active
	}

	updated, err := s.userRepo.UpdateUser(ctx, entity)
	if err != nil {
		return nil, err
	}

	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.ErrInternalServer
		}
		if err := s.userRepo.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	mapped := s.mapUser(ctx, updated, make(map[uint64]string))
	return &mapped, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	return s.userRepo.DeleteUser(ctx, id)
}

func (s *UserService) mapUser(ctx context.Context, entity *entities.User, roleNames map[uint64]string) dto.UserDTO {
	roleName, ok := roleNames[entity.RoleID]
	if !ok {
		if role, err := s.roleRepo.FindRole(ctx, entity.RoleID); err == nil {
			roleName = role.Name
			roleNames[entity.RoleID] = roleName
		}
	}
	return dto.UserDTO{
		ID:           entity.ID,
		Fio:          entity.Fio,
		Email:        entity.Email,
		PhoneNumber:  entity.PhoneNumber,
		RoleID:       entity.RoleID,
		RoleName:     roleName,
		DepartmentID: entity.DepartmentID,
		PhotoURL:     entity.PhotoURL,
		Active:       entity.Active,
		CreatedAt:    formatDateTime(entity.CreatedAt),
		UpdatedAt:    formatDateTime(entity.UpdatedAt),
	}
}
