package services

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	jwtService      service.JWTService
	permissionsAuth AuthPermissionServiceInterface
	logger          *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	permissionsAuth AuthPermissionServiceInterface,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		permissionsAuth: permissionsAuth,
		logger:          logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		s.logger.Warn("Попытка входа заблокированного пользователя", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.logger.Warn("Неверный пароль", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(int(user.ID), user.RoleID)
	if err != nil {
		s.logger.Error("Не удалось сгенерировать токены", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:           user.ID,
			Email:        user.Email,
			Phone:        user.PhoneNumber,
			FIO:          user.Fio,
			RoleID:       user.RoleID,
			DepartmentID: user.DepartmentID,
			PhotoURL:     user.PhotoURL,
		},
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindUser(ctx, uint64(claims.UserID))
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Active {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(int(user.ID), user.RoleID)
	if err != nil {
		return nil, apperrors.ErrInternalServer
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:           user.ID,
			Email:        user.Email,
			Phone:        user.PhoneNumber,
			FIO:          user.Fio,
			RoleID:       user.RoleID,
			DepartmentID: user.DepartmentID,
			PhotoURL:     user.PhotoURL,
		},
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context) (*dto.UserProfileDTO, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	permissions, err := s.permissionsAuth.GetRolePermissionsNames(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileDTO{
		ID:           user.ID,
		Email:        user.Email,
		Phone:        user.PhoneNumber,
		FIO:          user.Fio,
		RoleID:       user.RoleID,
		Permissions:  permissions,
		DepartmentID: user.DepartmentID,
		PhotoURL:     user.PhotoURL,
	}, nil
}
