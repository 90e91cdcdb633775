package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationType configures how an event code becomes a notification.
// Template supports {placeholder} substitution from the event payload.
type NotificationType struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
	Template    string    `gorm:"type:text;not null"`
	TargetType  string    `gorm:"type:varchar(20);not null;default:'SELF'"` // SELF, ADMIN, BROADCAST
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

func (NotificationType) TableName() string {
	return "notification_types"
}

type Notification struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorId   *uuid.UUID     `gorm:"type:uuid" json:"actor_id,omitempty"`
	TypeCode  string         `gorm:"type:varchar(100);not null" json:"type_code"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
