package tour

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Tour represents a tour entity in the domain. Secret tours are excluded from
// every list and stat query by the repository scope.
type Tour struct {
	ID              uuid.UUID
	Name            string
	Slug            string
	Duration        int
	MaxGroupSize    int
	Difficulty      Difficulty
	RatingsAverage  float64
	RatingsQuantity int
	Price           float64
	PriceDiscount   *float64
	Summary         string
	Description     *string
	ImageCover      string
	Images          []string
	Secret          bool
	StartDates      []time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// FilterOp is a comparison operator accepted in list queries.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
)

type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

type SortField struct {
	Field      string
	Descending bool
}

// ListQuery carries the catalog query features: filtering, sorting, field
// projection and pagination.
type ListQuery struct {
	Filters []Filter
	Sort    []SortField
	Fields  []string
	Page    int
	Limit   int
}

// DifficultyStats aggregates highly rated tours per difficulty.
type DifficultyStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"num_tours"`
	NumRatings int     `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// MonthlyPlanEntry counts tour departures per month of a year.
type MonthlyPlanEntry struct {
	Month    int      `json:"month"`
	NumTours int      `json:"num_tours"`
	Tours    []string `json:"tours"`
}
