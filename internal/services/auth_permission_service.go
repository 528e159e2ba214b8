package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

type AuthPermissionServiceInterface interface {
	GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error)
	InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error
}

type AuthPermissionService struct {
	permissionRepo repositories.PermissionRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
	cacheTTL       time.Duration
}

func NewAuthPermissionService(
	permissionRepo repositories.PermissionRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AuthPermissionServiceInterface {
	return &AuthPermissionService{
		permissionRepo: permissionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

func rolePermissionsCacheKey(roleID uint64) string {
	return fmt.Sprintf("auth:permissions:role:%d", roleID)
}

func (s *AuthPermissionService) GetRolePermissionsNames(ctx context.Context, roleID uint64) ([]string, error) {
	cacheKey := rolePermissionsCacheKey(roleID)
	var permissions []string

	// Сначала пробуем кеш, при любой проблеме падаем на БД
	cachedJSON, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		if err := json.Unmarshal([]byte(cachedJSON), &permissions); err == nil {
			s.logger.Debug("AuthPermissionService: Привилегии роли найдены в кеше", zap.Uint64("roleID", roleID))
			return permissions, nil
		}
		s.logger.Warn("AuthPermissionService: Ошибка десериализации привилегий из кеша",
			zap.String("key", cacheKey), zap.Uint64("roleID", roleID))
	}

	permissions, errDB := s.permissionRepo.GetPermissionsNamesByRoleID(ctx, roleID)
	if errDB != nil {
		s.logger.Error("AuthPermissionService: Не удалось получить привилегии роли из БД",
			zap.Uint64("roleID", roleID), zap.Error(errDB))
		return nil, apperrors.ErrInternalServer
	}

	if len(permissions) > 0 {
		permissionsJSON, errMarshal := json.Marshal(permissions)
		if errMarshal != nil {
			s.logger.Error("AuthPermissionService: Не удалось сериализовать привилегии для кеша",
				zap.Uint64("roleID", roleID), zap.Error(errMarshal))
		} else if errSet := s.cacheRepo.Set(ctx, cacheKey, string(permissionsJSON), s.cacheTTL); errSet != nil {
			s.logger.Error("AuthPermissionService: Не удалось сохранить привилегии роли в кеш",
				zap.Uint64("roleID", roleID), zap.Error(errSet))
		}
	}
	return permissions, nil
}

func (s *AuthPermissionService) InvalidateRolePermissionsCache(ctx context.Context, roleID uint64) error {
	cacheKey := rolePermissionsCacheKey(roleID)
	if err := s.cacheRepo.Del(ctx, cacheKey); err != nil {
		s.logger.Error("AuthPermissionService: Ошибка инвалидации кеша привилегий роли",
			zap.Uint64("roleID", roleID), zap.Error(err))
		return err
	}
	s.logger.Info("AuthPermissionService: Кеш привилегий роли инвалидирован", zap.Uint64("roleID", roleID))
	return nil
}
