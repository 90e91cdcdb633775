package quota

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandoxanh-be/internal/config"
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/memory"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

type fakeUserRepo struct {
	contract.UserRepository
	user *entity.User
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) SetDailyUsage(ctx context.Context, id uuid.UUID, usage int, lastReset time.Time) error {
	f.user.AiDailyUsage = usage
	f.user.AiDailyUsageLastReset = lastReset
	return nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	users *fakeUserRepo
}

func (f *fakeUow) UserRepository() contract.UserRepository {
	return f.users
}

func newTestGate(guest, free, pro int) *Gate {
	return NewGate(config.QuotaConfig{
		GuestDailyLimit: guest,
		FreeDailyLimit:  free,
		ProDailyLimit:   pro,
	}, memory.NewGuestQuotaRepository())
}

func newUowWithUser(user *entity.User) *fakeUow {
	return &fakeUow{users: &fakeUserRepo{user: user}}
}

func TestIsNewDay(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

	assert.False(t, isNewDay(base, base))
	assert.False(t, isNewDay(base, base.Add(5*time.Hour)))
	assert.True(t, isNewDay(base, base.AddDate(0, 0, 1)))
	assert.True(t, isNewDay(base, base.AddDate(0, 1, 0)))
	assert.True(t, isNewDay(base, base.AddDate(1, 0, 0)))

	// Late evening to early next morning crosses the boundary even though
	// less than 24h elapsed.
	evening := time.Date(2026, 3, 15, 23, 50, 0, 0, time.Local)
	morning := time.Date(2026, 3, 16, 0, 10, 0, 0, time.Local)
	assert.True(t, isNewDay(evening, morning))
}

func TestConsumeGuest_SequenceUpToLimit(t *testing.T) {
	gate := newTestGate(2, 10, -1)

	status, err := gate.ConsumeGuest("203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Used)
	assert.Equal(t, 2, status.Limit)

	status, err = gate.ConsumeGuest("203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Used)

	_, err = gate.ConsumeGuest("203.0.113.7")
	require.Error(t, err)

	var quotaErr *dto.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.True(t, quotaErr.Guest)
	assert.Equal(t, 2, quotaErr.Limit)
	assert.Equal(t, 2, quotaErr.Used)
	assert.True(t, quotaErr.ResetsAt.After(time.Now()))
}

func TestConsumeGuest_KeysAreIndependent(t *testing.T) {
	gate := newTestGate(1, 10, -1)

	_, err := gate.ConsumeGuest("198.51.100.1")
	require.NoError(t, err)
	_, err = gate.ConsumeGuest("198.51.100.1")
	require.Error(t, err)

	// A different client is unaffected.
	_, err = gate.ConsumeGuest("198.51.100.2")
	require.NoError(t, err)
}

func TestConsumeGuest_NegativeLimitIsUnlimited(t *testing.T) {
	gate := newTestGate(-1, 10, -1)

	for i := 1; i <= 50; i++ {
		status, err := gate.ConsumeGuest("203.0.113.9")
		require.NoError(t, err)
		assert.Equal(t, i, status.Used)
		assert.Equal(t, -1, status.Limit)
	}
}

func TestConsumeGuest_ResetsOnNewDay(t *testing.T) {
	guests := memory.NewGuestQuotaRepository()
	gate := NewGate(config.QuotaConfig{GuestDailyLimit: 3, FreeDailyLimit: 10, ProDailyLimit: -1}, guests)

	// Exhausted yesterday.
	guests.Set("203.0.113.4", 3, time.Now().AddDate(0, 0, -1))

	status, err := gate.ConsumeGuest("203.0.113.4")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Used)
}

func TestConsumeUser_IncrementsAndPersists(t *testing.T) {
	gate := newTestGate(3, 10, -1)
	user := &entity.User{
		Id:                    uuid.New(),
		Plan:                  entity.UserPlanFree,
		AiDailyUsage:          4,
		AiDailyUsageLastReset: time.Now(),
	}
	uow := newUowWithUser(user)

	status, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.NoError(t, err)
	assert.Equal(t, 5, status.Used)
	assert.Equal(t, 10, status.Limit)
	assert.Equal(t, 5, user.AiDailyUsage)
}

func TestConsumeUser_AtLimit(t *testing.T) {
	gate := newTestGate(3, 10, -1)
	user := &entity.User{
		Id:                    uuid.New(),
		Plan:                  entity.UserPlanFree,
		AiDailyUsage:          10,
		AiDailyUsageLastReset: time.Now(),
	}
	uow := newUowWithUser(user)

	_, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.Error(t, err)

	var quotaErr *dto.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.False(t, quotaErr.Guest)
	assert.Equal(t, 10, quotaErr.Limit)
	assert.Equal(t, 10, quotaErr.Used)

	// Counter untouched on rejection.
	assert.Equal(t, 10, user.AiDailyUsage)
}

func TestConsumeUser_ResetsOnNewDay(t *testing.T) {
	gate := newTestGate(3, 10, -1)
	user := &entity.User{
		Id:                    uuid.New(),
		Plan:                  entity.UserPlanFree,
		AiDailyUsage:          10,
		AiDailyUsageLastReset: time.Now().AddDate(0, 0, -1),
	}
	uow := newUowWithUser(user)

	status, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Used)
}

func TestConsumeUser_ProIsUnlimited(t *testing.T) {
	gate := newTestGate(3, 10, -1)
	user := &entity.User{
		Id:                    uuid.New(),
		Plan:                  entity.UserPlanPro,
		AiDailyUsage:          9999,
		AiDailyUsageLastReset: time.Now(),
	}
	uow := newUowWithUser(user)

	status, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.NoError(t, err)
	assert.Equal(t, 10000, status.Used)
	assert.Equal(t, -1, status.Limit)
}

func TestConsumeUser_UpgradeKeepsConsumedCount(t *testing.T) {
	gate := newTestGate(3, 10, 100)
	user := &entity.User{
		Id:                    uuid.New(),
		Plan:                  entity.UserPlanFree,
		AiDailyUsage:          10,
		AiDailyUsageLastReset: time.Now(),
	}
	uow := newUowWithUser(user)

	_, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.Error(t, err)

	// Upgrading mid-day lifts the limit but does not reset usage.
	user.Plan = entity.UserPlanPro
	status, err := gate.ConsumeUser(context.Background(), uow, user.Id)
	require.NoError(t, err)
	assert.Equal(t, 11, status.Used)
	assert.Equal(t, 100, status.Limit)
}
