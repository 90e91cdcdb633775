package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

type IBadgeService interface {
	ListBadges(ctx context.Context) ([]*dto.BadgeResponse, error)
	MyBadges(ctx context.Context, userId uuid.UUID) ([]*dto.BadgeResponse, error)
	ScanQr(ctx context.Context, userId uuid.UUID, req *dto.ScanBadgeRequest) (*dto.ScanBadgeResponse, error)

	CreateBadge(ctx context.Context, req *dto.CreateBadgeRequest) (*dto.BadgeResponse, error)
	UpdateBadge(ctx context.Context, id uuid.UUID, req *dto.CreateBadgeRequest) (*dto.BadgeResponse, error)
	DeleteBadge(ctx context.Context, id uuid.UUID) error
}

type badgeService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewBadgeService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IBadgeService {
	return &badgeService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func toBadgeResponse(b *entity.Badge) *dto.BadgeResponse {
	return &dto.BadgeResponse{
		Id:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		IconURL:     b.IconURL,
	}
}

func (s *badgeService) ListBadges(ctx context.Context) ([]*dto.BadgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	badges, err := uow.BadgeRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BadgeResponse, 0, len(badges))
	for _, b := range badges {
		responses = append(responses, toBadgeResponse(b))
	}
	return responses, nil
}

func (s *badgeService) MyBadges(ctx context.Context, userId uuid.UUID) ([]*dto.BadgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	awards, err := uow.BadgeRepository().FindAllUserBadges(ctx,
		specification.ByUser{UserId: userId},
		specification.OrderBy{Field: "awarded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if len(awards) == 0 {
		return []*dto.BadgeResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(awards))
	awardedAt := make(map[uuid.UUID]time.Time, len(awards))
	for _, a := range awards {
		ids = append(ids, a.BadgeId)
		awardedAt[a.BadgeId] = a.AwardedAt
	}

	badges, err := uow.BadgeRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BadgeResponse, 0, len(badges))
	for _, b := range badges {
		res := toBadgeResponse(b)
		if t, ok := awardedAt[b.Id]; ok {
			res.AwardedAt = &t
		}
		responses = append(responses, res)
	}
	return responses, nil
}

// ScanQr awards the badge matching the scanned code. Scanning an already
// earned badge is a no-op reported via AlreadyEarned, never an error.
func (s *badgeService) ScanQr(ctx context.Context, userId uuid.UUID, req *dto.ScanBadgeRequest) (*dto.ScanBadgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	badge, err := uow.BadgeRepository().FindOne(ctx, specification.ByQrCode{QrCode: req.QrCode})
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "unknown QR code")
	}

	existing, err := uow.BadgeRepository().FindUserBadge(ctx,
		specification.ByUser{UserId: userId},
		specification.FilterBy{Field: "badge_id", Value: badge.Id},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		res := toBadgeResponse(badge)
		res.AwardedAt = &existing.AwardedAt
		return &dto.ScanBadgeResponse{Badge: res, AlreadyEarned: true}, nil
	}

	award := &entity.UserBadge{
		Id:        uuid.New(),
		UserId:    userId,
		BadgeId:   badge.Id,
		AwardedAt: time.Now(),
	}
	if err := uow.BadgeRepository().CreateUserBadge(ctx, award); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewBadgeAwarded(userId, badge.Id, badge.Name)); err != nil {
			fmt.Printf("[WARN] Failed to publish BADGE_AWARDED event: %v\n", err)
		}
	}

	res := toBadgeResponse(badge)
	res.AwardedAt = &award.AwardedAt
	return &dto.ScanBadgeResponse{Badge: res, AlreadyEarned: false}, nil
}

func (s *badgeService) CreateBadge(ctx context.Context, req *dto.CreateBadgeRequest) (*dto.BadgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.BadgeRepository().FindOne(ctx, specification.ByQrCode{QrCode: req.QrCode})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "QR code already in use")
	}

	badge := &entity.Badge{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		QrCode:      req.QrCode,
		CreatedAt:   time.Now(),
	}
	if err := uow.BadgeRepository().Create(ctx, badge); err != nil {
		return nil, err
	}
	return toBadgeResponse(badge), nil
}

func (s *badgeService) UpdateBadge(ctx context.Context, id uuid.UUID, req *dto.CreateBadgeRequest) (*dto.BadgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	badge, err := uow.BadgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "badge not found")
	}

	badge.Name = req.Name
	badge.Description = req.Description
	badge.IconURL = req.IconURL
	badge.QrCode = req.QrCode

	if err := uow.BadgeRepository().Update(ctx, badge); err != nil {
		return nil, err
	}
	return toBadgeResponse(badge), nil
}

func (s *badgeService) DeleteBadge(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BadgeRepository().Delete(ctx, id)
}
