package content

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bandoxanh-be/internal/model"
)

// RegisterAll mounts every map-content resource under /content/v1.
func RegisterAll(r fiber.Router, db *gorm.DB, adminGuard fiber.Handler) {
	h := r.Group("/content/v1")

	NewResource[model.Station](db, "stations", "name asc").RegisterRoutes(h, adminGuard)
	NewResource[model.Event](db, "events", "starts_at desc").RegisterRoutes(h, adminGuard)
	NewResource[model.News](db, "news", "published_at desc").RegisterRoutes(h, adminGuard)
	NewResource[model.DonationPoint](db, "donation-points", "name asc").RegisterRoutes(h, adminGuard)
	NewResource[model.BikeRental](db, "bike-rentals", "name asc").RegisterRoutes(h, adminGuard)
	NewResource[model.Restaurant](db, "restaurants", "name asc").RegisterRoutes(h, adminGuard)
	NewResource[model.DiyIdea](db, "diy-ideas", "created_at desc").RegisterRoutes(h, adminGuard)
}
