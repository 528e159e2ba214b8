package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userSelectFieldsRepo = "u.id, u.fio, u.email, u.phone_number, u.password, u.role_id, u.department_id, u.photo_url, u.active, u.created_at, u.updated_at, u.deleted_at"
const userJoinClauseRepo = "users u JOIN roles r ON u.role_id = r.id"

var userAllowedFilterFields = map[string]bool{"role_id": true, "department_id": true, "active": true}
var userAllowedSortFields = map[string]bool{"id": true, "fio": true, "email": true, "created_at": true, "updated_at": true}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByTeam(ctx context.Context, teamID uint64) ([]entities.User, error)
	CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, entity *entities.User) (*entities.User, error)
	UpdatePassword(ctx context.Context, userID uint64, newPasswordHash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Fio, &user.Email, &user.PhoneNumber, &user.Password,
		&user.RoleID, &user.DepartmentID, &user.PhotoURL, &user.Active,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	allArgs := make([]interface{}, 0)
	conditions := []string{"u.deleted_at IS NULL"}

	for key, value := range filter.Filter {
		if !userAllowedFilterFields[key] {
			continue
		}
		if list, ok := value.([]string); ok {
			allArgs = append(allArgs, list)
			conditions = append(conditions, fmt.Sprintf("u.%s::text = ANY($%d)", key, len(allArgs)))
			continue
		}
		allArgs = append(allArgs, value)
		conditions = append(conditions, fmt.Sprintf("u.%s = $%d", key, len(allArgs)))
	}

	if filter.Search != "" {
		placeholder := fmt.Sprintf("$%d", len(allArgs)+1)
		conditions = append(conditions, fmt.Sprintf("(u.fio ILIKE %s OR u.email ILIKE %s)", placeholder, placeholder))
		allArgs = append(allArgs, "%"+filter.Search+"%")
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(u.id) FROM %s %s", userJoinClauseRepo, whereClause)
	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, allArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета пользователей: %w", err)
	}
	if totalCount == 0 {
		return []entities.User{}, 0, nil
	}

	orderBy := "u.id DESC"
	for field, dir := range filter.Sort {
		if !userAllowedSortFields[field] {
			continue
		}
		direction := "ASC"
		if strings.EqualFold(dir, "desc") {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("u.%s %s", field, direction)
		break
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		userSelectFieldsRepo, userJoinClauseRepo, whereClause, orderBy, len(allArgs)+1, len(allArgs)+2,
	)
	allArgs = append(allArgs, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, allArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, totalCount, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE u.id = $1 AND u.deleted_at IS NULL", userSelectFieldsRepo, userJoinClauseRepo)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(u.email) = LOWER($1) AND u.deleted_at IS NULL", userSelectFieldsRepo, userJoinClauseRepo)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

// FindByTeam возвращает участников команды обслуживания.
func (r *UserRepository) FindByTeam(ctx context.Context, teamID uint64) ([]entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1 AND u.deleted_at IS NULL
		ORDER BY u.fio`, userSelectFieldsRepo, userJoinClauseRepo)

	rows, err := r.storage.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки участников команды: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (fio, email, phone_number, password, role_id, department_id, photo_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.storage.QueryRow(ctx, query,
		entity.Fio, entity.Email, entity.PhoneNumber, entity.Password,
		entity.RoleID, entity.DepartmentID, entity.PhotoURL, entity.Active,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return entity, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	query := `
		UPDATE users
		SET fio = $1, email = $2, phone_number = $3, role_id = $4,
		    department_id = $5, photo_url = $6, active = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.storage.QueryRow(ctx, query,
		entity.Fio, entity.Email, entity.PhoneNumber, entity.RoleID,
		entity.DepartmentID, entity.PhotoURL, entity.Active, entity.ID,
	).Scan(&entity.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return entity, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, newPasswordHash string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL",
		newPasswordHash, userID)
	if err != nil {
		return fmt.Errorf("ошибка смены пароля: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
