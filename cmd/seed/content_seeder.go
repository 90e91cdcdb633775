package main

import (
	"time"

	"bandoxanh-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedBadges creates the starter badge set. QR codes are the values
// printed on the physical stickers at partner locations.
func SeedBadges(db *gorm.DB) {
	badges := []model.Badge{
		{
			Name:        "Người tiên phong",
			Description: "Ghé thăm trạm tái chế đầu tiên của bạn",
			QrCode:      "BDX-PIONEER-2026",
		},
		{
			Name:        "Chiến binh xanh",
			Description: "Tham gia một sự kiện dọn rác cộng đồng",
			QrCode:      "BDX-GREEN-WARRIOR",
		},
		{
			Name:        "Bạn của trái đất",
			Description: "Quyên góp đồ cũ tại một điểm quyên góp",
			QrCode:      "BDX-EARTH-FRIEND",
		},
	}

	for _, b := range badges {
		if err := db.Where("qr_code = ?", b.QrCode).FirstOrCreate(&b).Error; err != nil {
			color.Red("Error seeding badge %s: %v", b.Name, err)
		}
	}
	color.Green("Badges seeded.")
}

// SeedMapContent inserts a few sample map entries so a fresh install has
// something to render.
func SeedMapContent(db *gorm.DB) {
	stations := []model.Station{
		{
			Name:         "Trạm tái chế Quận 1",
			Description:  "Nhận nhựa, giấy và kim loại",
			Address:      "12 Nguyễn Huệ, Quận 1, TP.HCM",
			Latitude:     10.7743,
			Longitude:    106.7038,
			WasteTypes:   "plastic,paper,metal",
			OpeningHours: "08:00-17:00",
		},
		{
			Name:         "Trạm tái chế Cầu Giấy",
			Description:  "Nhận pin và rác điện tử",
			Address:      "144 Xuân Thủy, Cầu Giấy, Hà Nội",
			Latitude:     21.0362,
			Longitude:    105.7905,
			WasteTypes:   "battery,e-waste",
			OpeningHours: "09:00-18:00",
		},
	}
	for _, s := range stations {
		if err := db.Where("name = ?", s.Name).FirstOrCreate(&s).Error; err != nil {
			color.Red("Error seeding station %s: %v", s.Name, err)
		}
	}

	events := []model.Event{
		{
			Title:       "Ngày hội đổi rác lấy quà",
			Description: "Mang rác tái chế đến và nhận cây xanh",
			Address:     "Công viên Tao Đàn, Quận 1, TP.HCM",
			Latitude:    10.7736,
			Longitude:   106.6917,
			StartsAt:    time.Now().AddDate(0, 0, 14),
		},
	}
	for _, e := range events {
		if err := db.Where("title = ?", e.Title).FirstOrCreate(&e).Error; err != nil {
			color.Red("Error seeding event %s: %v", e.Title, err)
		}
	}

	ideas := []model.DiyIdea{
		{
			Title:       "Chậu cây từ chai nhựa",
			Description: "Tái chế chai nhựa thành chậu trồng cây mini",
			Materials:   datatypes.JSON([]byte(`["chai nhựa 1.5L", "kéo", "sơn acrylic"]`)),
			Steps:       datatypes.JSON([]byte(`["Cắt đôi chai", "Đục lỗ thoát nước", "Sơn trang trí", "Cho đất và trồng cây"]`)),
		},
	}
	for _, i := range ideas {
		if err := db.Where("title = ?", i.Title).FirstOrCreate(&i).Error; err != nil {
			color.Red("Error seeding DIY idea %s: %v", i.Title, err)
		}
	}

	color.Green("Map content seeded.")
}
