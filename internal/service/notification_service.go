package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
	"bandoxanh-be/internal/pkg/logger"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userId uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       contract.NotificationRepository
	users      contract.UserRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo contract.NotificationRepository, users contract.UserRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		users:      users,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	// NATS subjects carry the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	config, err := s.repo.FindTypeByCode(ctx, typeCode)
	if err != nil {
		return err
	}
	if config == nil {
		s.logger.Warn("NotificationService", fmt.Sprintf("No notification type configured for code '%s'", typeCode), nil)
		return nil
	}
	if !config.IsActive {
		s.logger.Info("NotificationService", fmt.Sprintf("Notification type '%s' is inactive", typeCode), nil)
		return nil
	}

	if config.TargetType == "BROADCAST" {
		// Broadcasts are push-only. Persisting a row per user does not
		// scale and the inbox is meant for personal notifications.
		notif := s.buildNotification(uuid.Nil, config, event)
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", event.EventType()), map[string]interface{}{"error": err})
		return err // NATS will redeliver
	}

	for _, userId := range recipients {
		notif := s.buildNotification(userId, config, event)

		if err := s.repo.Create(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userId), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userId, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	var userIds []uuid.UUID

	switch config.TargetType {
	case "SELF":
		if uidStr, ok := event.Payload()["user_id"].(string); ok {
			uid, err := uuid.Parse(uidStr)
			if err == nil {
				userIds = append(userIds, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no user_id in payload for event %s", event.EventType()), nil)
		}

	case "ADMIN":
		admins, err := s.users.FindAll(ctx, specification.ByRole{Role: string(entity.UserRoleAdmin)})
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIds = append(userIds, u.Id)
		}
	}

	return userIds, nil
}

func (s *NotificationService) buildNotification(userId uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	var actorId *uuid.UUID
	if actorStr, ok := payload["actor_id"].(string); ok {
		if aid, err := uuid.Parse(actorStr); err == nil {
			actorId = &aid
		}
	}

	metaJSON, _ := json.Marshal(payload)

	return model.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		ActorId:   actorId,
		TypeCode:  config.Code,
		Title:     config.DisplayName,
		Message:   msg,
		Metadata:  datatypes.JSON(metaJSON),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

// List returns the user's inbox, newest first, with the unread counter.
func (s *NotificationService) List(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := s.repo.FindAll(ctx,
		specification.ByUser{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, &dto.NotificationResponse{
			Id:        n.Id,
			TypeCode:  n.TypeCode,
			Title:     n.Title,
			Message:   n.Message,
			Metadata:  json.RawMessage(n.Metadata),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{Notifications: responses, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userId uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userId)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userId)
}
