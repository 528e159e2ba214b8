package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error) {
	categories, total, err := s.categoryRepo.GetCategories(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		mapped, err := s.mapCategory(ctx, &categories[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *mapped)
	}
	return result, total, nil
}

func (s *CategoryService) FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapCategory(ctx, category)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	entity := &entities.EquipmentCategory{
		Name:  payload.Name,
		Color: payload.Color,
		Note:  payload.Note,
	}
	created, err := s.categoryRepo.CreateCategory(ctx, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании категории", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Категория создана", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return s.mapCategory(ctx, created)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	entity, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		entity.Name = *payload.Name
	}
	if payload.Color != nil {
		entity.Color = *payload.Color
	}
	if payload.Note != nil {
		entity.Note = payload.Note
	}
	updated, err := s.categoryRepo.UpdateCategory(ctx, entity)
	if err != nil {
		return nil, err
	}
	return s.mapCategory(ctx, updated)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	return s.categoryRepo.DeleteCategory(ctx, id)
}

func (s *CategoryService) mapCategory(ctx context.Context, entity *entities.EquipmentCategory) (*dto.CategoryDTO, error) {
	count, err := s.categoryRepo.CountEquipment(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryDTO{
		ID:             entity.ID,
		Name:           entity.Name,
		Color:          entity.Color,
		Note:           entity.Note,
		EquipmentCount: count,
		CreatedAt:      formatDateTime(entity.CreatedAt),
		UpdatedAt:      formatDateTime(entity.UpdatedAt),
	}, nil
}
