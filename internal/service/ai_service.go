package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bandoxanh-be/internal/config"
	"bandoxanh-be/internal/constant"
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/ai"
	"bandoxanh-be/pkg/quota"
)

type IAiService interface {
	// Analyze runs one AI call. userId is nil for guests, in which case the
	// quota is tracked per clientKey instead.
	Analyze(ctx context.Context, userId *uuid.UUID, clientKey string, kind entity.AnalysisKind, image []byte, mimeType, note string) (*dto.AnalyzeResponse, error)
	History(ctx context.Context, userId uuid.UUID) ([]*dto.AnalysisResponse, error)
}

type aiService struct {
	uowFactory unitofwork.RepositoryFactory
	gate       *quota.Gate
	client     *ai.Client
	appConfig  config.AppConfig
}

func NewAiService(uowFactory unitofwork.RepositoryFactory, gate *quota.Gate, client *ai.Client, appConfig config.AppConfig) IAiService {
	return &aiService{
		uowFactory: uowFactory,
		gate:       gate,
		client:     client,
		appConfig:  appConfig,
	}
}

func promptFor(kind entity.AnalysisKind) (string, error) {
	switch kind {
	case entity.AnalysisKindIdentify:
		return constant.IdentifyWastePromptV1, nil
	case entity.AnalysisKindDiy:
		return constant.DiyIdeasPromptV1, nil
	case entity.AnalysisKindVegetarian:
		return constant.VegetarianCheckPromptV1, nil
	case entity.AnalysisKindCalories:
		return constant.CaloriesPromptV1, nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "unknown analysis kind")
	}
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func (s *aiService) Analyze(ctx context.Context, userId *uuid.UUID, clientKey string, kind entity.AnalysisKind, image []byte, mimeType, note string) (*dto.AnalyzeResponse, error) {
	prompt, err := promptFor(kind)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "image is required")
	}
	if note != "" {
		prompt = fmt.Sprintf("%s\n\nGhi chú của người dùng: %s", prompt, note)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The quota is consumed before the model call. A failed call still
	// counts, which keeps retry storms from bypassing the limit.
	var quotaStatus *dto.QuotaStatus
	if userId != nil {
		quotaStatus, err = s.gate.ConsumeUser(ctx, uow, *userId)
	} else {
		quotaStatus, err = s.gate.ConsumeGuest(clientKey)
	}
	if err != nil {
		return nil, err
	}

	imageURL, err := s.saveUpload(image, mimeType)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GenerateJSON(ctx, prompt, image, mimeType)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, fmt.Sprintf("analysis failed: %v", err))
	}

	analysis := &entity.Analysis{
		Id:        uuid.New(),
		UserId:    userId,
		Kind:      kind,
		ImageURL:  imageURL,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if err := uow.AnalysisRepository().Create(ctx, analysis); err != nil {
		return nil, err
	}

	return &dto.AnalyzeResponse{Result: result, Quota: quotaStatus}, nil
}

func (s *aiService) History(ctx context.Context, userId uuid.UUID) ([]*dto.AnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	analyses, err := uow.AnalysisRepository().FindAll(ctx,
		specification.ByUser{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		responses = append(responses, &dto.AnalysisResponse{
			Id:        a.Id,
			Kind:      string(a.Kind),
			ImageURL:  a.ImageURL,
			Result:    a.Result,
			CreatedAt: a.CreatedAt,
		})
	}
	return responses, nil
}

// saveUpload writes the image under the upload dir and returns the public path.
func (s *aiService) saveUpload(image []byte, mimeType string) (string, error) {
	if err := os.MkdirAll(s.appConfig.UploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + extensionFor(mimeType)
	if err := os.WriteFile(filepath.Join(s.appConfig.UploadDir, name), image, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
