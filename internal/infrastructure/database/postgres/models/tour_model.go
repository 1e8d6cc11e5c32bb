package models

import (
	"time"

	"github.com/google/uuid"
)

// TourModel represents the database model for Tour.
type TourModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug            string    `gorm:"type:varchar(80);not null;index"`
	Duration        int       `gorm:"type:integer;not null"`
	MaxGroupSize    int       `gorm:"type:integer;not null"`
	Difficulty      string    `gorm:"type:varchar(20);not null;index"`
	RatingsAverage  float64   `gorm:"type:decimal(3,2);not null;default:4.5"`
	RatingsQuantity int       `gorm:"type:integer;not null;default:0"`
	Price           float64   `gorm:"type:decimal(10,2);not null"`
	PriceDiscount   *float64  `gorm:"type:decimal(10,2)"`
	Summary         string    `gorm:"type:text;not null"`
	Description     *string   `gorm:"type:text"`
	ImageCover      string    `gorm:"type:varchar(255);not null"`
	Images          []string  `gorm:"serializer:json;type:jsonb"`
	Secret          bool      `gorm:"default:false;not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	StartDates []TourStartDateModel `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
}

func (TourModel) TableName() string {
	return "tours"
}

// TourStartDateModel holds one departure date of a tour; kept as child rows so
// the monthly plan can be computed in SQL.
type TourStartDateModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TourID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt time.Time `gorm:"type:timestamptz;not null;index"`
}

func (TourStartDateModel) TableName() string {
	return "tour_start_dates"
}
