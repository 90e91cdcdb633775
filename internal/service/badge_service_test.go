package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

type fakeBadgeRepo struct {
	contract.BadgeRepository
	badges map[uuid.UUID]*entity.Badge
	awards map[uuid.UUID]*entity.UserBadge
}

func (f *fakeBadgeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error) {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			return f.badges[v.ID], nil
		case specification.ByQrCode:
			for _, b := range f.badges {
				if b.QrCode == v.QrCode {
					return b, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (f *fakeBadgeRepo) Create(ctx context.Context, badge *entity.Badge) error {
	f.badges[badge.Id] = badge
	return nil
}

func (f *fakeBadgeRepo) CreateUserBadge(ctx context.Context, award *entity.UserBadge) error {
	f.awards[award.Id] = award
	return nil
}

func (f *fakeBadgeRepo) FindUserBadge(ctx context.Context, specs ...specification.Specification) (*entity.UserBadge, error) {
	var userId uuid.UUID
	var badgeId uuid.UUID
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByUser:
			userId = v.UserId
		case specification.FilterBy:
			if v.Field == "badge_id" {
				badgeId, _ = v.Value.(uuid.UUID)
			}
		}
	}
	for _, a := range f.awards {
		if a.UserId == userId && a.BadgeId == badgeId {
			return a, nil
		}
	}
	return nil, nil
}

type badgeUow struct {
	unitofwork.UnitOfWork
	badges *fakeBadgeRepo
}

func (f *badgeUow) BadgeRepository() contract.BadgeRepository { return f.badges }

type badgeUowFactory struct {
	uow *badgeUow
}

func (f *badgeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newBadgeFixture(badges ...*entity.Badge) (*badgeService, *badgeUow) {
	repo := &fakeBadgeRepo{
		badges: map[uuid.UUID]*entity.Badge{},
		awards: map[uuid.UUID]*entity.UserBadge{},
	}
	for _, b := range badges {
		repo.badges[b.Id] = b
	}
	uow := &badgeUow{badges: repo}
	svc := &badgeService{uowFactory: &badgeUowFactory{uow: uow}}
	return svc, uow
}

func TestScanQr_AwardsOnce(t *testing.T) {
	badge := &entity.Badge{Id: uuid.New(), Name: "Người tiên phong", QrCode: "BDX-PIONEER-2026"}
	svc, uow := newBadgeFixture(badge)
	userId := uuid.New()

	res, err := svc.ScanQr(context.Background(), userId, &dto.ScanBadgeRequest{QrCode: badge.QrCode})
	require.NoError(t, err)
	assert.False(t, res.AlreadyEarned)
	assert.Equal(t, badge.Id, res.Badge.Id)
	require.NotNil(t, res.Badge.AwardedAt)
	assert.Len(t, uow.badges.awards, 1)
}

func TestScanQr_RepeatScanIsNoOp(t *testing.T) {
	badge := &entity.Badge{Id: uuid.New(), Name: "Chiến binh xanh", QrCode: "BDX-GREEN-WARRIOR"}
	svc, uow := newBadgeFixture(badge)
	userId := uuid.New()

	first, err := svc.ScanQr(context.Background(), userId, &dto.ScanBadgeRequest{QrCode: badge.QrCode})
	require.NoError(t, err)

	second, err := svc.ScanQr(context.Background(), userId, &dto.ScanBadgeRequest{QrCode: badge.QrCode})
	require.NoError(t, err)
	assert.True(t, second.AlreadyEarned)
	assert.Len(t, uow.badges.awards, 1)

	// The original award timestamp is reported, not a new one.
	assert.Equal(t, first.Badge.AwardedAt.Truncate(time.Second), second.Badge.AwardedAt.Truncate(time.Second))
}

func TestScanQr_UnknownCode(t *testing.T) {
	svc, _ := newBadgeFixture()

	_, err := svc.ScanQr(context.Background(), uuid.New(), &dto.ScanBadgeRequest{QrCode: "BDX-NOPE"})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestScanQr_SameBadgeDifferentUsers(t *testing.T) {
	badge := &entity.Badge{Id: uuid.New(), Name: "Bạn của trái đất", QrCode: "BDX-EARTH-FRIEND"}
	svc, uow := newBadgeFixture(badge)

	_, err := svc.ScanQr(context.Background(), uuid.New(), &dto.ScanBadgeRequest{QrCode: badge.QrCode})
	require.NoError(t, err)
	_, err = svc.ScanQr(context.Background(), uuid.New(), &dto.ScanBadgeRequest{QrCode: badge.QrCode})
	require.NoError(t, err)
	assert.Len(t, uow.badges.awards, 2)
}

func TestCreateBadge_QrConflict(t *testing.T) {
	badge := &entity.Badge{Id: uuid.New(), Name: "Người tiên phong", QrCode: "BDX-PIONEER-2026"}
	svc, _ := newBadgeFixture(badge)

	_, err := svc.CreateBadge(context.Background(), &dto.CreateBadgeRequest{
		Name:   "Bản sao",
		QrCode: badge.QrCode,
	})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusConflict, fiberErr.Code)
}
