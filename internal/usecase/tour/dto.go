package tour

import (
	"time"

	domainTour "tour-booking-api/internal/domain/tour"

	"github.com/google/uuid"
)

type CreateTourRequest struct {
	Name           string      `json:"name" validate:"required,min=5,max=50,tour_name"`
	Duration       int         `json:"duration" validate:"required,min=1"`
	MaxGroupSize   int         `json:"maxGroupSize" validate:"required,min=1"`
	Difficulty     string      `json:"difficulty" validate:"required,difficulty"`
	RatingsAverage *float64    `json:"ratingsAverage" validate:"omitempty,min=1,max=5"`
	Price          float64     `json:"price" validate:"required,gt=0"`
	PriceDiscount  *float64    `json:"priceDiscount" validate:"omitempty,gt=0"`
	Summary        string      `json:"summary" validate:"required"`
	Description    *string     `json:"description"`
	ImageCover     string      `json:"imageCover" validate:"required"`
	Images         []string    `json:"images"`
	StartDates     []time.Time `json:"startDates"`
	Secret         *bool       `json:"secretTour"`
}

type UpdateTourRequest struct {
	Name           *string     `json:"name" validate:"omitempty,min=5,max=50,tour_name"`
	Duration       *int        `json:"duration" validate:"omitempty,min=1"`
	MaxGroupSize   *int        `json:"maxGroupSize" validate:"omitempty,min=1"`
	Difficulty     *string     `json:"difficulty" validate:"omitempty,difficulty"`
	RatingsAverage *float64    `json:"ratingsAverage" validate:"omitempty,min=1,max=5"`
	Price          *float64    `json:"price" validate:"omitempty,gt=0"`
	PriceDiscount  *float64    `json:"priceDiscount" validate:"omitempty,gt=0"`
	Summary        *string     `json:"summary" validate:"omitempty,min=1"`
	Description    *string     `json:"description"`
	ImageCover     *string     `json:"imageCover" validate:"omitempty,min=1"`
	Images         []string    `json:"images"`
	StartDates     []time.Time `json:"startDates"`
	Secret         *bool       `json:"secretTour"`
}

type TourResponse struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Duration        int         `json:"duration"`
	DurationWeeks   float64     `json:"durationWeeks"`
	MaxGroupSize    int         `json:"maxGroupSize"`
	Difficulty      string      `json:"difficulty"`
	RatingsAverage  float64     `json:"ratingsAverage"`
	RatingsQuantity int         `json:"ratingsQuantity"`
	Price           float64     `json:"price"`
	PriceDiscount   *float64    `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary"`
	Description     *string     `json:"description,omitempty"`
	ImageCover      string      `json:"imageCover"`
	Images          []string    `json:"images,omitempty"`
	StartDates      []time.Time `json:"startDates,omitempty"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func ToTourResponse(t *domainTour.Tour) *TourResponse {
	if t == nil {
		return nil
	}
	return &TourResponse{
		ID:              t.ID,
		Name:            t.Name,
		Slug:            t.Slug,
		Duration:        t.Duration,
		DurationWeeks:   t.DurationWeeks(),
		MaxGroupSize:    t.MaxGroupSize,
		Difficulty:      string(t.Difficulty),
		RatingsAverage:  t.RatingsAverage,
		RatingsQuantity: t.RatingsQuantity,
		Price:           t.Price,
		PriceDiscount:   t.PriceDiscount,
		Summary:         t.Summary,
		Description:     t.Description,
		ImageCover:      t.ImageCover,
		Images:          t.Images,
		StartDates:      t.StartDates,
		UpdatedAt:       t.UpdatedAt,
	}
}
