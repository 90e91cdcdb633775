package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	mailPublisher  IMailPublisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, mailPublisher IMailPublisher) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		mailPublisher:  mailPublisher,
	}
}

// signToken issues the JWT used by both credential and OAuth logins.
func signToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(secret))
}

func toProfile(user *entity.User) *dto.UserProfile {
	return &dto.UserProfile{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Plan:      string(user.Plan),
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOneUnscoped(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:                    uuid.New(),
		Email:                 req.Email,
		PasswordHash:          &hashStr,
		FullName:              req.FullName,
		Role:                  entity.UserRoleUser,
		Plan:                  entity.UserPlanFree,
		Status:                entity.UserStatusActive,
		AiDailyUsageLastReset: time.Now(),
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id, user.Email)); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}
	if s.mailPublisher != nil {
		if err := s.mailPublisher.PublishWelcome(ctx, user.Email, user.FullName); err != nil {
			fmt.Printf("[WARN] Failed to queue welcome mail for %s: %v\n", user.Email, err)
		}
	}

	token, err := signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: toProfile(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, fiber.NewError(fiber.StatusForbidden, "account is blocked")
	}

	token, err := signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: toProfile(user)}, nil
}
