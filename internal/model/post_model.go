package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	ImageURL   *string   `gorm:"type:text"`
	LikesCount int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  *time.Time

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	Post *Post `gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string {
	return "comments"
}

type Like struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time

	Post *Post `gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string {
	return "likes"
}

type Reaction struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_post_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_post_user"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt *time.Time

	Post *Post `gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Reaction) TableName() string {
	return "reactions"
}

type Poll struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PostId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Question  string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	Post    *Post         `gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
	Options []*PollOption `gorm:"foreignKey:PollId"`
}

func (Poll) TableName() string {
	return "polls"
}

type PollOption struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PollId uuid.UUID `gorm:"type:uuid;not null;index"`
	Label  string    `gorm:"type:varchar(255);not null"`

	Poll *Poll `gorm:"foreignKey:PollId;constraint:OnDelete:CASCADE"`
}

func (PollOption) TableName() string {
	return "poll_options"
}

type PollVote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OptionId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_poll_votes_option_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_poll_votes_option_user"`
	CreatedAt time.Time

	Option *PollOption `gorm:"foreignKey:OptionId;constraint:OnDelete:CASCADE"`
	User   *User       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}
