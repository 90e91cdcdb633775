package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error)
}

type oauthService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	mailPublisher  IMailPublisher
	googleConf     *oauth2.Config
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, mailPublisher IMailPublisher) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		mailPublisher:  mailPublisher,
		googleConf:     conf,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

// HandleCallback resolves an external identity into a local account. The
// resolution order is: active user by email, then soft-deleted user (which
// gets restored), then a brand new account.
func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	userInfoURL := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken
	resp, err := http.Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %v", err)
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}

	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = uow.UserRepository().FindOneUnscoped(ctx, specification.ByEmail{Email: googleUser.Email})
		if err != nil {
			return nil, err
		}

		if user != nil {
			log.Printf("[OAuth Service] Restoring soft-deleted user %s", user.Id)
			if err := uow.UserRepository().Restore(ctx, user.Id); err != nil {
				return nil, err
			}
			user, _ = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
		}
	}

	isNewUser := false
	if user == nil {
		newUser := &entity.User{
			Id:                    uuid.New(),
			Email:                 googleUser.Email,
			FullName:              googleUser.Name,
			PasswordHash:          nil,
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

		if err := uow.UserRepository().Create(ctx, newUser); err != nil {
			uow.Rollback()
			return nil, err
		}

		if err := uow.Commit(); err != nil {
			return nil, err
		}

		user = newUser
		isNewUser = true
	}

	userProvider := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: googleUser.ID,
		AvatarURL:      googleUser.Picture,
		CreatedAt:      time.Now(),
	}

	if err := uow.UserRepository().SaveUserProvider(ctx, userProvider); err != nil {
		return nil, fmt.Errorf("failed to save provider info: %v", err)
	}

	if user.AvatarURL == nil && googleUser.Picture != "" {
		if err := uow.UserRepository().UpdateAvatar(ctx, user.Id, googleUser.Picture); err == nil {
			user.AvatarURL = &googleUser.Picture
		}
	}

	if isNewUser {
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
	}

	signedToken, err := signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: signedToken, User: toProfile(user)}, nil
}
