package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

type fakeUpgradeRepo struct {
	contract.UpgradeRepository
	upgrades map[uuid.UUID]*entity.ProUpgrade
}

func (f *fakeUpgradeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProUpgrade, error) {
	if id, ok := specId(specs); ok {
		return f.upgrades[id], nil
	}
	return nil, nil
}

func (f *fakeUpgradeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if u, ok := f.upgrades[id]; ok {
		u.Status = entity.UpgradeStatus(status)
	}
	return nil
}

type planTrackingUserRepo struct {
	fakeUserRepo
	planUpdates []uuid.UUID
}

func (f *planTrackingUserRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error {
	if u, ok := f.users[id]; ok {
		u.Plan = entity.UserPlan(plan)
	}
	f.planUpdates = append(f.planUpdates, id)
	return nil
}

type paymentUow struct {
	unitofwork.UnitOfWork
	upgrades *fakeUpgradeRepo
	users    *planTrackingUserRepo
}

func (f *paymentUow) Begin(ctx context.Context) error { return nil }
func (f *paymentUow) Commit() error                   { return nil }
func (f *paymentUow) Rollback() error                 { return nil }

func (f *paymentUow) UpgradeRepository() contract.UpgradeRepository { return f.upgrades }
func (f *paymentUow) UserRepository() contract.UserRepository       { return f.users }

type paymentUowFactory struct {
	uow *paymentUow
}

func (f *paymentUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func midtransSignature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}

func newPaymentFixture(user *entity.User, upgrade *entity.ProUpgrade) (*paymentService, *paymentUow) {
	uow := &paymentUow{
		upgrades: &fakeUpgradeRepo{upgrades: map[uuid.UUID]*entity.ProUpgrade{upgrade.Id: upgrade}},
		users:    &planTrackingUserRepo{fakeUserRepo: fakeUserRepo{users: map[uuid.UUID]*entity.User{user.Id: user}}},
	}
	svc := &paymentService{uowFactory: &paymentUowFactory{uow: uow}}
	return svc, uow
}

func webhookFor(upgrade *entity.ProUpgrade, status, serverKey string) *dto.MidtransWebhookRequest {
	orderId := upgrade.Id.String()
	return &dto.MidtransWebhookRequest{
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "49000.00",
		TransactionStatus: status,
		SignatureKey:      midtransSignature(orderId, "200", "49000.00", serverKey),
	}
}

func TestHandleNotification_RejectsBadSignature(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
	upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
	svc, uow := newPaymentFixture(user, upgrade)

	req := webhookFor(upgrade, "settlement", "wrong-key")
	err := svc.HandleNotification(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signature")

	// Nothing changed.
	assert.Equal(t, entity.UpgradeStatusPending, uow.upgrades.upgrades[upgrade.Id].Status)
	assert.Equal(t, entity.UserPlanFree, user.Plan)
}

func TestHandleNotification_SettlementActivatesPro(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
	upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
	svc, uow := newPaymentFixture(user, upgrade)

	err := svc.HandleNotification(context.Background(), webhookFor(upgrade, "settlement", "test-server-key"))
	require.NoError(t, err)

	assert.Equal(t, entity.UpgradeStatusPaid, uow.upgrades.upgrades[upgrade.Id].Status)
	assert.Equal(t, entity.UserPlanPro, user.Plan)
}

func TestHandleNotification_ReplayIsNoOp(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
	upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
	svc, uow := newPaymentFixture(user, upgrade)

	req := webhookFor(upgrade, "settlement", "test-server-key")
	require.NoError(t, svc.HandleNotification(context.Background(), req))
	require.NoError(t, svc.HandleNotification(context.Background(), req))

	// The plan flip ran exactly once.
	assert.Len(t, uow.users.planUpdates, 1)
}

func TestHandleNotification_FailureStatuses(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	for _, status := range []string{"deny", "cancel", "expire"} {
		user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
		upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
		svc, uow := newPaymentFixture(user, upgrade)

		err := svc.HandleNotification(context.Background(), webhookFor(upgrade, status, "test-server-key"))
		require.NoError(t, err, status)
		assert.Equal(t, entity.UpgradeStatusFailed, uow.upgrades.upgrades[upgrade.Id].Status, status)
		assert.Equal(t, entity.UserPlanFree, user.Plan, status)
	}
}

func TestHandleNotification_PendingLeavesOrderUntouched(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
	upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
	svc, uow := newPaymentFixture(user, upgrade)

	err := svc.HandleNotification(context.Background(), webhookFor(upgrade, "pending", "test-server-key"))
	require.NoError(t, err)
	assert.Equal(t, entity.UpgradeStatusPending, uow.upgrades.upgrades[upgrade.Id].Status)
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "test-server-key")

	user := &entity.User{Id: uuid.New(), Plan: entity.UserPlanFree}
	upgrade := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id, Status: entity.UpgradeStatusPending}
	svc, _ := newPaymentFixture(user, upgrade)

	ghost := &entity.ProUpgrade{Id: uuid.New(), UserId: user.Id}
	err := svc.HandleNotification(context.Background(), webhookFor(ghost, "settlement", "test-server-key"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
