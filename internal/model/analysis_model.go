package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Analysis struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	Kind      string     `gorm:"type:varchar(30);not null"`
	ImageURL  string     `gorm:"type:text;not null"`
	Result    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:SET NULL"`
}

func (Analysis) TableName() string {
	return "analyses"
}
