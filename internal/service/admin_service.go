package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/pkg/logger"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

type IAdminService interface {
	ListUsers(ctx context.Context, query string, page, limit int) ([]*dto.UserProfile, error)
	UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, role string) error
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error
	DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, appLogger logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     appLogger,
	}
}

func (s *adminService) ListUsers(ctx context.Context, query string, page, limit int) ([]*dto.UserProfile, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().SearchUsers(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]*dto.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, toProfile(u))
	}
	return profiles, nil
}

// UpdateUserRole changes a user's role. Admins cannot demote themselves, so
// the system always keeps at least the acting admin.
func (s *adminService) UpdateUserRole(ctx context.Context, actorId, userId uuid.UUID, role string) error {
	if actorId == userId && role != string(entity.UserRoleAdmin) {
		return fiber.NewError(fiber.StatusForbidden, "cannot demote your own account")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if err := uow.UserRepository().UpdateRole(ctx, userId, role); err != nil {
		return err
	}

	s.logger.Info("admin", "User role updated", map[string]interface{}{
		"actor_id": actorId.String(),
		"user_id":  userId.String(),
		"role":     role,
	})
	return nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if err := uow.UserRepository().UpdateStatus(ctx, userId, status); err != nil {
		return err
	}

	s.logger.Info("admin", "User status updated", map[string]interface{}{
		"user_id": userId.String(),
		"status":  status,
	})
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorId, userId uuid.UUID) error {
	if actorId == userId {
		return fiber.NewError(fiber.StatusForbidden, "cannot delete your own account")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	s.logger.Warn("admin", "User soft-deleted", map[string]interface{}{
		"actor_id": actorId.String(),
		"user_id":  userId.String(),
	})
	return nil
}

func (s *adminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	res := &dto.DashboardResponse{}
	var err error

	if res.TotalUsers, err = uow.UserRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.ProUsers, err = uow.UserRepository().Count(ctx, specification.ByPlan{Plan: string(entity.UserPlanPro)}); err != nil {
		return nil, err
	}
	if res.TotalPosts, err = uow.PostRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.TotalAnalyses, err = uow.AnalysisRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.BadgesAwarded, err = uow.BadgeRepository().CountUserBadges(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	entry, err := s.logger.GetLogById(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "log entry not found")
	}
	return entry, nil
}
