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

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfile, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
	ToggleFollow(ctx context.Context, followerId, followeeId uuid.UUID) (*dto.FollowResponse, error)
	Unfollow(ctx context.Context, followerId, followeeId uuid.UUID) (*dto.FollowResponse, error)
	ListFollowers(ctx context.Context, userId uuid.UUID) ([]*dto.UserSummary, error)
	ListFollowing(ctx context.Context, userId uuid.UUID) ([]*dto.UserSummary, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// GetProfile returns the user with counts computed from the edges. Counts
// are always derived on read, never cached.
func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	profile := toProfile(user)

	if profile.FollowerCount, err = uow.FollowRepository().Count(ctx, specification.ByFollowee{FolloweeId: userId}); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = uow.FollowRepository().Count(ctx, specification.ByFollower{FollowerId: userId}); err != nil {
		return nil, err
	}
	if profile.PostCount, err = uow.PostRepository().Count(ctx, specification.ByUser{UserId: userId}); err != nil {
		return nil, err
	}
	if profile.BadgeCount, err = uow.BadgeRepository().CountUserBadges(ctx, specification.ByUser{UserId: userId}); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userId)
}

// ToggleFollow creates the edge when absent and removes it when present.
// Repeating a call is always safe and converges on the requested state.
func (s *userService) ToggleFollow(ctx context.Context, followerId, followeeId uuid.UUID) (*dto.FollowResponse, error) {
	if followerId == followeeId {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot follow yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	followee, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: followeeId})
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	existing, err := uow.FollowRepository().FindOne(ctx,
		specification.ByFollower{FollowerId: followerId},
		specification.ByFollowee{FolloweeId: followeeId},
	)
	if err != nil {
		return nil, err
	}

	following := false
	if existing != nil {
		if err := uow.FollowRepository().Delete(ctx, existing.Id); err != nil {
			return nil, err
		}
	} else {
		follow := &entity.Follow{
			Id:         uuid.New(),
			FollowerId: followerId,
			FolloweeId: followeeId,
			CreatedAt:  time.Now(),
		}
		created := true
		if err := uow.FollowRepository().Create(ctx, follow); err != nil {
			// A concurrent double-request already created the edge;
			// the other request carries the notification.
			if !isDuplicateKey(err) {
				return nil, err
			}
			created = false
		}
		following = true

		if created && s.eventPublisher != nil {
			follower, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: followerId})
			followerName := ""
			if follower != nil {
				followerName = follower.FullName
			}
			if err := s.eventPublisher.Publish(ctx, events.NewUserFollowed(followerId, followeeId, followerName)); err != nil {
				fmt.Printf("[WARN] Failed to publish USER_FOLLOWED event: %v\n", err)
			}
		}
	}

	count, err := uow.FollowRepository().Count(ctx, specification.ByFollowee{FolloweeId: followeeId})
	if err != nil {
		return nil, err
	}

	return &dto.FollowResponse{Following: following, FollowerCount: count}, nil
}

// Unfollow removes the edge if present. Unfollowing someone you never
// followed is a no-op, not an error.
func (s *userService) Unfollow(ctx context.Context, followerId, followeeId uuid.UUID) (*dto.FollowResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	followee, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: followeeId})
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	existing, err := uow.FollowRepository().FindOne(ctx,
		specification.ByFollower{FollowerId: followerId},
		specification.ByFollowee{FolloweeId: followeeId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := uow.FollowRepository().Delete(ctx, existing.Id); err != nil {
			return nil, err
		}
	}

	count, err := uow.FollowRepository().Count(ctx, specification.ByFollowee{FolloweeId: followeeId})
	if err != nil {
		return nil, err
	}

	return &dto.FollowResponse{Following: false, FollowerCount: count}, nil
}

func (s *userService) ListFollowers(ctx context.Context, userId uuid.UUID) ([]*dto.UserSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	follows, err := uow.FollowRepository().FindAll(ctx, specification.ByFollowee{FolloweeId: userId})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerId)
	}
	return s.summarize(ctx, uow, ids)
}

func (s *userService) ListFollowing(ctx context.Context, userId uuid.UUID) ([]*dto.UserSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	follows, err := uow.FollowRepository().FindAll(ctx, specification.ByFollower{FollowerId: userId})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FolloweeId)
	}
	return s.summarize(ctx, uow, ids)
}

func (s *userService) summarize(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) ([]*dto.UserSummary, error) {
	summaries := make([]*dto.UserSummary, 0, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		summaries = append(summaries, &dto.UserSummary{
			Id:        u.Id,
			FullName:  u.FullName,
			AvatarURL: u.AvatarURL,
		})
	}
	return summaries, nil
}
