package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Map content models. Each one is served by the generic content resource
// endpoints; mutations are admin-only, reads are public.

type Station struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Description  string    `gorm:"type:text" json:"description"`
	Address      string    `gorm:"type:text;not null" json:"address" validate:"required"`
	Latitude     float64   `gorm:"not null" json:"latitude" validate:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude" validate:"longitude"`
	WasteTypes   string    `gorm:"type:varchar(255)" json:"waste_types"`
	OpeningHours string    `gorm:"type:varchar(255)" json:"opening_hours"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Station) TableName() string {
	return "stations"
}

type Event struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	Description string     `gorm:"type:text" json:"description"`
	Address     string     `gorm:"type:text;not null" json:"address" validate:"required"`
	Latitude    float64    `gorm:"not null" json:"latitude" validate:"latitude"`
	Longitude   float64    `gorm:"not null" json:"longitude" validate:"longitude"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	ImageURL    string     `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

type News struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	Summary     string    `gorm:"type:text" json:"summary"`
	Body        string    `gorm:"type:text;not null" json:"body" validate:"required"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (News) TableName() string {
	return "news"
}

type DonationPoint struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Description   string    `gorm:"type:text" json:"description"`
	Address       string    `gorm:"type:text;not null" json:"address" validate:"required"`
	Latitude      float64   `gorm:"not null" json:"latitude" validate:"latitude"`
	Longitude     float64   `gorm:"not null" json:"longitude" validate:"longitude"`
	AcceptedItems string    `gorm:"type:varchar(255)" json:"accepted_items"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	ImageURL      string    `gorm:"type:text" json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DonationPoint) TableName() string {
	return "donation_points"
}

type BikeRental struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Description  string    `gorm:"type:text" json:"description"`
	Address      string    `gorm:"type:text;not null" json:"address" validate:"required"`
	Latitude     float64   `gorm:"not null" json:"latitude" validate:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude" validate:"longitude"`
	PricePerHour float64   `json:"price_per_hour"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BikeRental) TableName() string {
	return "bike_rentals"
}

type Restaurant struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `gorm:"type:text;not null" json:"address" validate:"required"`
	Latitude    float64   `gorm:"not null" json:"latitude" validate:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude" validate:"longitude"`
	Cuisine     string    `gorm:"type:varchar(100)" json:"cuisine"`
	PriceRange  string    `gorm:"type:varchar(50)" json:"price_range"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

type DiyIdea struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	Materials   datatypes.JSON `gorm:"type:jsonb" json:"materials"`
	Steps       datatypes.JSON `gorm:"type:jsonb" json:"steps"`
	ImageURL    string         `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (DiyIdea) TableName() string {
	return "diy_ideas"
}
