package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *TeamService {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo, logger: logger}
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error) {
	teams, total, err := s.teamRepo.GetTeams(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.TeamDTO, 0, len(teams))
	for i := range teams {
		mapped, err := s.mapTeam(ctx, &teams[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *mapped)
	}
	return result, total, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapTeam(ctx, team)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	entity := &entities.MaintenanceTeam{
		Name:   payload.Name,
		Color:  payload.Color,
		Active: true,
	}
	created, err := s.teamRepo.CreateTeam(ctx, entity, payload.MemberIDs)
	if err != nil {
		s.logger.Error("Ошибка при создании команды", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Команда создана", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return s.mapTeam(ctx, created)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	entity, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		entity.Name = *payload.Name
	}
	if payload.Color != nil {
		entity.Color = *payload.Color
	}
	if payload.Active != nil {
		entity.Active = *payload.Active
	}
	updated, err := s.teamRepo.UpdateTeam(ctx, entity, payload.MemberIDs)
	if err != nil {
		return nil, err
	}
	return s.mapTeam(ctx, updated)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	return s.teamRepo.DeleteTeam(ctx, id)
}

func (s *TeamService) mapTeam(ctx context.Context, entity *entities.MaintenanceTeam) (*dto.TeamDTO, error) {
	counters, err := s.teamRepo.GetCounters(ctx, entity.ID)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.FindByTeam(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	memberDTOs := make([]dto.ShortUserDTO, 0, len(members))
	for _, member := range members {
		memberDTOs = append(memberDTOs, dto.ShortUserDTO{ID: member.ID, Fio: member.Fio})
	}

	return &dto.TeamDTO{
		ID:               entity.ID,
		Name:             entity.Name,
		Color:            entity.Color,
		Active:           entity.Active,
		Members:          memberDTOs,
		OpenRequestCount: counters.OpenRequestCount,
		TodoRequestCount: counters.TodoRequestCount,
		EquipmentCount:   counters.EquipmentCount,
		CreatedAt:        formatDateTime(entity.CreatedAt),
		UpdatedAt:        formatDateTime(entity.UpdatedAt),
	}, nil
}
