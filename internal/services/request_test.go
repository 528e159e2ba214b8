package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Фейковые репозитории для проверки правил смены этапа без базы.

type fakeRequestRepo struct {
	stored *entities.MaintenanceRequest
	saved  *entities.MaintenanceRequest
}

func (f *fakeRequestRepo) FindRequest(_ context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, apperrors.ErrNotFound
	}
	cp := *f.stored
	return &cp, nil
}

func (f *fakeRequestRepo) UpdateStageInTx(_ context.Context, _ pgx.Tx, entity *entities.MaintenanceRequest) error {
	cp := *entity
	f.saved = &cp
	return nil
}

func (f *fakeRequestRepo) GetRequests(context.Context, types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	return nil, 0, nil
}
func (f *fakeRequestRepo) CreateRequest(_ context.Context, e *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return e, nil
}
func (f *fakeRequestRepo) UpdateRequest(_ context.Context, e *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return e, nil
}
func (f *fakeRequestRepo) DeleteRequest(context.Context, uint64) error { return nil }
func (f *fakeRequestRepo) ListOverdue(context.Context, time.Time) ([]repositories.OverdueRow, error) {
	return nil, nil
}

type fakeEquipmentRepo struct {
	equipment   *entities.Equipment
	scrappedID  uint64
	scrapDate   time.Time
	scrapCalled bool
}

func (f *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	if f.equipment == nil || f.equipment.ID != id {
		return nil, apperrors.ErrNotFound
	}
	cp := *f.equipment
	return &cp, nil
}

func (f *fakeEquipmentRepo) ScrapInTx(_ context.Context, _ pgx.Tx, id uint64, scrapDate time.Time) error {
	f.scrapCalled = true
	f.scrappedID = id
	f.scrapDate = scrapDate
	return nil
}

func (f *fakeEquipmentRepo) GetEquipments(context.Context, types.Filter) ([]entities.Equipment, uint64, error) {
	return nil, 0, nil
}
func (f *fakeEquipmentRepo) FindBySerial(context.Context, string) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeEquipmentRepo) CreateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	return e, nil
}
func (f *fakeEquipmentRepo) UpdateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	return e, nil
}
func (f *fakeEquipmentRepo) UpdatePhotoURL(context.Context, uint64, string) error { return nil }
func (f *fakeEquipmentRepo) DeleteEquipment(context.Context, uint64) error        { return nil }
func (f *fakeEquipmentRepo) GetMaintenanceHistory(context.Context, uint64) ([]repositories.MaintenanceHistoryRow, error) {
	return nil, nil
}
func (f *fakeEquipmentRepo) ListWarrantyExpiring(context.Context, time.Time, time.Time) ([]entities.Equipment, error) {
	return nil, nil
}
func (f *fakeEquipmentRepo) ListByIDs(context.Context, []uint64) ([]entities.Equipment, error) {
	return nil, nil
}

type fakeTeamRepo struct {
	team *entities.MaintenanceTeam
}

func (f *fakeTeamRepo) FindTeam(_ context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	if f.team == nil || f.team.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.team, nil
}

func (f *fakeTeamRepo) GetTeams(context.Context, types.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	return nil, 0, nil
}
func (f *fakeTeamRepo) CreateTeam(_ context.Context, e *entities.MaintenanceTeam, _ []uint64) (*entities.MaintenanceTeam, error) {
	return e, nil
}
func (f *fakeTeamRepo) UpdateTeam(_ context.Context, e *entities.MaintenanceTeam, _ *[]uint64) (*entities.MaintenanceTeam, error) {
	return e, nil
}
func (f *fakeTeamRepo) DeleteTeam(context.Context, uint64) error { return nil }
func (f *fakeTeamRepo) GetCounters(context.Context, uint64) (*repositories.TeamCounters, error) {
	return &repositories.TeamCounters{}, nil
}
func (f *fakeTeamRepo) IsMember(context.Context, uint64, uint64) (bool, error) { return true, nil }

type fakeCategoryRepo struct{}

func (f *fakeCategoryRepo) GetCategories(context.Context, types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	return nil, 0, nil
}
func (f *fakeCategoryRepo) FindCategory(context.Context, uint64) (*entities.EquipmentCategory, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeCategoryRepo) CreateCategory(_ context.Context, e *entities.EquipmentCategory) (*entities.EquipmentCategory, error) {
	return e, nil
}
func (f *fakeCategoryRepo) UpdateCategory(_ context.Context, e *entities.EquipmentCategory) (*entities.EquipmentCategory, error) {
	return e, nil
}
func (f *fakeCategoryRepo) DeleteCategory(context.Context, uint64) error { return nil }
func (f *fakeCategoryRepo) CountEquipment(context.Context, uint64) (uint64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	user *entities.User
}

func (f *fakeUserRepo) FindUser(_ context.Context, id uint64) (*entities.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetUsers(context.Context, types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) FindByEmail(context.Context, string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeUserRepo) FindByTeam(context.Context, uint64) ([]entities.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) CreateUser(_ context.Context, e *entities.User) (*entities.User, error) {
	return e, nil
}
func (f *fakeUserRepo) UpdateUser(_ context.Context, e *entities.User) (*entities.User, error) {
	return e, nil
}
func (f *fakeUserRepo) UpdatePassword(context.Context, uint64, string) error { return nil }
func (f *fakeUserRepo) DeleteUser(context.Context, uint64) error             { return nil }

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type stageFixture struct {
	svc       *RequestService
	requests  *fakeRequestRepo
	equipment *fakeEquipmentRepo
	tx        *fakeTxManager
}

func newStageFixture(request *entities.MaintenanceRequest) *stageFixture {
	requests := &fakeRequestRepo{stored: request}
	equipment := &fakeEquipmentRepo{equipment: &entities.Equipment{
		ID:     request.EquipmentID,
		Name:   "Токарный станок",
		State:  entities.EquipmentStateOperational,
		Active: true,
		TeamID: request.TeamID,
	}}
	tx := &fakeTxManager{}
	logger := zap.NewNop()

	svc := NewRequestService(
		requests,
		equipment,
		&fakeTeamRepo{team: &entities.MaintenanceTeam{ID: request.TeamID, Name: "Внутреннее обслуживание"}},
		&fakeCategoryRepo{},
		&fakeUserRepo{user: &entities.User{ID: 7, Fio: "Иванов И.И.", Email: "ivanov@example.com"}},
		tx,
		eventbus.New(logger),
		config.MaintenanceConfig{DefaultLaborRate: 50, WarrantyAlertDays: 30, PreventiveLeadDays: 7},
		logger,
	)
	return &stageFixture{svc: svc, requests: requests, equipment: equipment, tx: tx}
}

func baseRequest(stage string) *entities.MaintenanceRequest {
	return &entities.MaintenanceRequest{
		ID:              1,
		Name:            "Ремонт шпинделя",
		EquipmentID:     5,
		TeamID:          3,
		CreatedByID:     7,
		MaintenanceType: entities.TypeCorrective,
		Stage:           stage,
		RequestDate:     date(2026, 8, 1),
	}
}

func ctxWithUser(id int) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, id)
}

func TestChangeStage(t *testing.T) {
	t.Run("списанная заявка терминальна", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageScrap))

		_, err := f.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: entities.StageNew})

		assert.ErrorIs(t, err, apperrors.ErrInvalidStageTransition)
		assert.Nil(t, f.requests.saved)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("взятие в работу назначает текущего пользователя техником", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageNew))

		result, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{Stage: entities.StageInProgress})

		require.NoError(t, err)
		require.NotNil(t, f.requests.saved)
		require.NotNil(t, f.requests.saved.TechnicianID)
		assert.Equal(t, uint64(7), *f.requests.saved.TechnicianID)
		assert.Equal(t, entities.StageInProgress, result.Stage)
	})

	t.Run("назначенный техник не перезаписывается", func(t *testing.T) {
		request := baseRequest(entities.StageNew)
		technicianID := uint64(7)
		request.TechnicianID = &technicianID
		f := newStageFixture(request)

		_, err := f.svc.ChangeStage(ctxWithUser(99), 1, dto.ChangeStageDTO{Stage: entities.StageInProgress})

		require.NoError(t, err)
		assert.Equal(t, uint64(7), *f.requests.saved.TechnicianID)
	})

	t.Run("взятие в работу без пользователя в контексте", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageNew))

		_, err := f.svc.ChangeStage(context.Background(), 1, dto.ChangeStageDTO{Stage: entities.StageInProgress})

		assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
		assert.Nil(t, f.requests.saved)
	})

	t.Run("закрытие без даты проставляет сегодняшнюю", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageInProgress))

		result, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{Stage: entities.StageRepaired})

		require.NoError(t, err)
		require.NotNil(t, f.requests.saved.CloseDate)
		assert.Equal(t, startOfDay(time.Now()), *f.requests.saved.CloseDate)
		assert.Equal(t, entities.StageRepaired, result.Stage)
	})

	t.Run("закрытие раньше плановой даты отклоняется", func(t *testing.T) {
		request := baseRequest(entities.StageInProgress)
		schedule := date(2026, 8, 20)
		request.ScheduleDate = &schedule
		f := newStageFixture(request)
		closeDate := "2026-08-15"

		_, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{
			Stage:     entities.StageRepaired,
			CloseDate: &closeDate,
		})

		assert.ErrorIs(t, err, apperrors.ErrCloseBeforeSchedule)
		assert.Nil(t, f.requests.saved)
	})

	t.Run("закрытие в плановую дату проходит", func(t *testing.T) {
		request := baseRequest(entities.StageInProgress)
		schedule := date(2026, 8, 20)
		request.ScheduleDate = &schedule
		f := newStageFixture(request)
		closeDate := "2026-08-20"

		_, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{
			Stage:     entities.StageRepaired,
			CloseDate: &closeDate,
		})

		require.NoError(t, err)
		assert.Equal(t, date(2026, 8, 20), *f.requests.saved.CloseDate)
	})

	t.Run("возврат в new очищает дату закрытия", func(t *testing.T) {
		request := baseRequest(entities.StageRepaired)
		closed := date(2026, 8, 10)
		request.CloseDate = &closed
		f := newStageFixture(request)

		_, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{Stage: entities.StageNew})

		require.NoError(t, err)
		assert.Equal(t, entities.StageNew, f.requests.saved.Stage)
		assert.Nil(t, f.requests.saved.CloseDate)
	})

	t.Run("списание гасит оборудование в той же транзакции", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageInProgress))

		_, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{Stage: entities.StageScrap})

		require.NoError(t, err)
		assert.Equal(t, entities.StageScrap, f.requests.saved.Stage)
		assert.True(t, f.equipment.scrapCalled)
		assert.Equal(t, uint64(5), f.equipment.scrappedID)
		assert.Equal(t, startOfDay(time.Now()), f.equipment.scrapDate)
		assert.Equal(t, 1, f.tx.calls)
	})

	t.Run("затраты из запроса попадают в заявку", func(t *testing.T) {
		f := newStageFixture(baseRequest(entities.StageInProgress))
		duration := 2.5
		parts := 120.0

		_, err := f.svc.ChangeStage(ctxWithUser(7), 1, dto.ChangeStageDTO{
			Stage:         entities.StageRepaired,
			DurationHours: &duration,
			CostParts:     &parts,
		})

		require.NoError(t, err)
		assert.Equal(t, 2.5, f.requests.saved.DurationHours)
		assert.Equal(t, 120.0, f.requests.saved.CostParts)
	})
}
