package main

import (
	"bandoxanh-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with the notification
// templates for every domain event the worker consumes.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_REGISTERED",
			DisplayName: "Chào mừng thành viên mới",
			Template:    "Chào mừng bạn đến với BandoXanh! Hãy bắt đầu hành trình sống xanh của bạn.",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "USER_FOLLOWED",
			DisplayName: "Người theo dõi mới",
			Template:    "{follower_name} đã bắt đầu theo dõi bạn",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "REACTION_ADDED",
			DisplayName: "Cảm xúc mới trên bài viết",
			Template:    "Bài viết của bạn vừa nhận được một cảm xúc {reaction_type}",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "BADGE_AWARDED",
			DisplayName: "Huy hiệu mới",
			Template:    "Chúc mừng! Bạn vừa nhận được huy hiệu \"{badge_name}\"",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "PRO_UPGRADED",
			DisplayName: "Nâng cấp Pro",
			Template:    "Tài khoản của bạn đã được nâng cấp lên BandoXanh Pro. Cảm ơn bạn đã ủng hộ!",
			TargetType:  "SELF",
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			color.Red("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	color.Green("Notification types seeded.")
}
