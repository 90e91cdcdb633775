package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPost filters edge rows by post
type ByPost struct {
	PostId uuid.UUID
}

func (s ByPost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("post_id = ?", s.PostId)
}

// ByUser filters rows owned by a user
type ByUser struct {
	UserId uuid.UUID
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByFollower filters follow edges by the follower side
type ByFollower struct {
	FollowerId uuid.UUID
}

func (s ByFollower) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("follower_id = ?", s.FollowerId)
}

// ByFollowee filters follow edges by the followee side
type ByFollowee struct {
	FolloweeId uuid.UUID
}

func (s ByFollowee) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("followee_id = ?", s.FolloweeId)
}

// ByQrCode filters badges by QR code
type ByQrCode struct {
	QrCode string
}

func (s ByQrCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("qr_code = ?", s.QrCode)
}

// ByOption filters poll votes by option
type ByOption struct {
	OptionId uuid.UUID
}

func (s ByOption) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("option_id = ?", s.OptionId)
}

// UnreadOnly filters notifications that have not been read
type UnreadOnly struct{}

func (s UnreadOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_read = false")
}
