package tour

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the tour catalog operations.
type Repository interface {
	Create(ctx context.Context, tour *Tour) error
	GetByID(ctx context.Context, tourID uuid.UUID) (*Tour, error)
	List(ctx context.Context, query *ListQuery) ([]*Tour, error)
	Update(ctx context.Context, tour *Tour) error
	Delete(ctx context.Context, tourID uuid.UUID) error

	Stats(ctx context.Context) ([]*DifficultyStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]*MonthlyPlanEntry, error)
}
