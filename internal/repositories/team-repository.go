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
)

const teamSelectFieldsRepo = "t.id, t.name, t.color, t.active, t.created_at, t.updated_at, t.deleted_at"

// TeamCounters - счетчики по команде для карточек канбана.
type TeamCounters struct {
	OpenRequestCount uint64
	TodoRequestCount uint64
	EquipmentCount   uint64
}

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]entities.MaintenanceTeam, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error)
	CreateTeam(ctx context.Context, entity *entities.MaintenanceTeam, memberIDs []uint64) (*entities.MaintenanceTeam, error)
	UpdateTeam(ctx context.Context, entity *entities.MaintenanceTeam, memberIDs *[]uint64) (*entities.MaintenanceTeam, error)
	DeleteTeam(ctx context.Context, id uint64) error
	GetCounters(ctx context.Context, teamID uint64) (*TeamCounters, error)
	IsMember(ctx context.Context, teamID, userID uint64) (bool, error)
}

type TeamRepository struct {
	storage   *pgxpool.Pool
	txManager TxManagerInterface
}

func NewTeamRepository(storage *pgxpool.Pool, txManager TxManagerInterface) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, txManager: txManager}
}

func scanTeam(row pgx.Row) (*entities.MaintenanceTeam, error) {
	var t entities.MaintenanceTeam
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.Active, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context, filter types.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	args := make([]interface{}, 0)
	conditions := []string{"t.deleted_at IS NULL"}

	if active, ok := filter.Filter["active"]; ok {
		args = append(args, active)
		conditions = append(conditions, fmt.Sprintf("t.active = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var totalCount uint64
	countQuery := fmt.Sprintf("SELECT COUNT(t.id) FROM maintenance_teams t %s", whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета команд: %w", err)
	}
	if totalCount == 0 {
		return []entities.MaintenanceTeam{}, 0, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM maintenance_teams t %s ORDER BY t.name LIMIT $%d OFFSET $%d",
		teamSelectFieldsRepo, whereClause, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки команд: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.MaintenanceTeam, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		teams = append(teams, *t)
	}
	return teams, totalCount, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	query := fmt.Sprintf("SELECT %s FROM maintenance_teams t WHERE t.id = $1 AND t.deleted_at IS NULL", teamSelectFieldsRepo)
	return scanTeam(r.storage.QueryRow(ctx, query, id))
}

func (r *TeamRepository) CreateTeam(ctx context.Context, entity *entities.MaintenanceTeam, memberIDs []uint64) (*entities.MaintenanceTeam, error) {
	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO maintenance_teams (name, color, active)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			entity.Name, entity.Color, entity.Active,
		).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
		if err != nil {
			return fmt.Errorf("ошибка создания команды: %w", err)
		}
		return replaceTeamMembers(ctx, tx, entity.ID, memberIDs)
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, entity *entities.MaintenanceTeam, memberIDs *[]uint64) (*entities.MaintenanceTeam, error) {
	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE maintenance_teams
			SET name = $1, color = $2, active = $3, updated_at = NOW()
			WHERE id = $4 AND deleted_at IS NULL
			RETURNING updated_at`,
			entity.Name, entity.Color, entity.Active, entity.ID,
		).Scan(&entity.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("ошибка обновления команды: %w", err)
		}
		// Состав меняем только когда он явно передан
		if memberIDs != nil {
			return replaceTeamMembers(ctx, tx, entity.ID, *memberIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func replaceTeamMembers(ctx context.Context, q querier, teamID uint64, memberIDs []uint64) error {
	if _, err := q.Exec(ctx, "DELETE FROM team_members WHERE team_id = $1", teamID); err != nil {
		return fmt.Errorf("ошибка очистки состава команды: %w", err)
	}
	for _, userID := range memberIDs {
		if _, err := q.Exec(ctx,
			"INSERT INTO team_members (team_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			teamID, userID); err != nil {
			return fmt.Errorf("ошибка добавления участника %d: %w", userID, err)
		}
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE maintenance_teams SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("ошибка удаления команды: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) GetCounters(ctx context.Context, teamID uint64) (*TeamCounters, error) {
	var c TeamCounters
	err := r.storage.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(id) FROM maintenance_requests
			 WHERE team_id = $1 AND stage NOT IN ('repaired', 'scrap') AND deleted_at IS NULL),
			(SELECT COUNT(id) FROM maintenance_requests
			 WHERE team_id = $1 AND stage = 'new' AND deleted_at IS NULL),
			(SELECT COUNT(id) FROM equipments
			 WHERE team_id = $1 AND active = TRUE AND deleted_at IS NULL)`,
		teamID).Scan(&c.OpenRequestCount, &c.TodoRequestCount, &c.EquipmentCount)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета показателей команды: %w", err)
	}
	return &c, nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)",
		teamID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки участника команды: %w", err)
	}
	return exists, nil
}
