package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tour-booking-api/internal/domain/tour"
	"tour-booking-api/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TourRepository implements tour.Repository on Postgres. Every read goes
// through the visible scope so secret tours never leak into responses.
type TourRepository struct {
	db *DB
}

func NewTourRepository(db *DB) tour.Repository {
	return &TourRepository{db: db}
}

func visible(db *gorm.DB) *gorm.DB {
	return db.Where("secret = ?", false)
}

func (r *TourRepository) Create(ctx context.Context, t *tour.Tour) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	dbModel := toTourModel(t)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	t.ID = dbModel.ID
	t.CreatedAt = dbModel.CreatedAt
	t.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, tourID uuid.UUID) (*tour.Tour, error) {
	var dbModel models.TourModel
	err := r.db.DB.WithContext(ctx).
		Scopes(visible).
		Preload("StartDates").
		First(&dbModel, "id = ?", tourID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tour.ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}

	return toTourEntity(&dbModel), nil
}

func (r *TourRepository) List(ctx context.Context, query *tour.ListQuery) ([]*tour.Tour, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.TourModel{}).Scopes(visible)

	for _, f := range query.Filters {
		switch f.Op {
		case tour.OpGt:
			db = db.Where(f.Field+" > ?", f.Value)
		case tour.OpGte:
			db = db.Where(f.Field+" >= ?", f.Value)
		case tour.OpLt:
			db = db.Where(f.Field+" < ?", f.Value)
		case tour.OpLte:
			db = db.Where(f.Field+" <= ?", f.Value)
		default:
			db = db.Where(f.Field+" = ?", f.Value)
		}
	}

	if len(query.Sort) > 0 {
		for _, s := range query.Sort {
			order := s.Field
			if s.Descending {
				order += " DESC"
			}
			db = db.Order(order)
		}
	} else {
		db = db.Order("created_at DESC")
	}

	if len(query.Fields) > 0 {
		db = db.Select(query.Fields)
	} else {
		db = db.Preload("StartDates")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 100
	}
	db = db.Offset((page - 1) * limit).Limit(limit)

	var dbModels []models.TourModel
	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	tours := make([]*tour.Tour, 0, len(dbModels))
	for i := range dbModels {
		tours = append(tours, toTourEntity(&dbModels[i]))
	}
	return tours, nil
}

func (r *TourRepository) Update(ctx context.Context, t *tour.Tour) error {
	t.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.TourModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":             t.Name,
			"slug":             t.Slug,
			"duration":         t.Duration,
			"max_group_size":   t.MaxGroupSize,
			"difficulty":       string(t.Difficulty),
			"ratings_average":  t.RatingsAverage,
			"ratings_quantity": t.RatingsQuantity,
			"price":            t.Price,
			"price_discount":   t.PriceDiscount,
			"summary":          t.Summary,
			"description":      t.Description,
			"image_cover":      t.ImageCover,
			"images":           toTourModel(t).Images,
			"secret":           t.Secret,
			"updated_at":       t.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update tour: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tour.ErrTourNotFound
	}

	if t.StartDates != nil {
		if err := r.replaceStartDates(ctx, t.ID, t.StartDates); err != nil {
			return err
		}
	}

	return nil
}

func (r *TourRepository) replaceStartDates(ctx context.Context, tourID uuid.UUID, dates []time.Time) error {
	db := r.db.DB.WithContext(ctx)
	if err := db.Where("tour_id = ?", tourID).Delete(&models.TourStartDateModel{}).Error; err != nil {
		return fmt.Errorf("failed to replace start dates: %w", err)
	}
	if len(dates) == 0 {
		return nil
	}

	rows := make([]models.TourStartDateModel, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.TourStartDateModel{
			ID:       uuid.New(),
			TourID:   tourID,
			StartsAt: d,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert start dates: %w", err)
	}
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, tourID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", tourID).
		Delete(&models.TourModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete tour: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tour.ErrTourNotFound
	}
	return nil
}

func (r *TourRepository) Stats(ctx context.Context) ([]*tour.DifficultyStats, error) {
	var stats []*tour.DifficultyStats
	err := r.db.DB.WithContext(ctx).
		Model(&models.TourModel{}).
		Scopes(visible).
		Select(
			"UPPER(difficulty) AS difficulty",
			"COUNT(*) AS num_tours",
			"COALESCE(SUM(ratings_quantity), 0) AS num_ratings",
			"AVG(ratings_average) AS avg_rating",
			"AVG(price) AS avg_price",
			"MIN(price) AS min_price",
			"MAX(price) AS max_price",
		).
		Where("ratings_average >= ?", 4.5).
		Group("difficulty").
		Order("avg_price").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute tour stats: %w", err)
	}
	return stats, nil
}

func (r *TourRepository) MonthlyPlan(ctx context.Context, year int) ([]*tour.MonthlyPlanEntry, error) {
	yearStart, yearEnd := yearBounds(year)

	var rows []struct {
		Month int
		Name  string
	}
	err := r.db.DB.WithContext(ctx).
		Table("tour_start_dates").
		Select("EXTRACT(MONTH FROM tour_start_dates.starts_at)::int AS month, tours.name AS name").
		Joins("JOIN tours ON tours.id = tour_start_dates.tour_id").
		Where("tours.secret = ?", false).
		Where("tour_start_dates.starts_at >= ? AND tour_start_dates.starts_at < ?", yearStart, yearEnd).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly plan: %w", err)
	}

	byMonth := make(map[int]*tour.MonthlyPlanEntry)
	for _, row := range rows {
		entry, ok := byMonth[row.Month]
		if !ok {
			entry = &tour.MonthlyPlanEntry{Month: row.Month}
			byMonth[row.Month] = entry
		}
		entry.NumTours++
		entry.Tours = append(entry.Tours, row.Name)
	}

	plan := make([]*tour.MonthlyPlanEntry, 0, len(byMonth))
	for _, entry := range byMonth {
		plan = append(plan, entry)
	}
	sort.Slice(plan, func(i, j int) bool {
		if plan[i].NumTours != plan[j].NumTours {
			return plan[i].NumTours > plan[j].NumTours
		}
		return plan[i].Month < plan[j].Month
	})

	return plan, nil
}

// yearBounds returns the half-open interval [Jan 1 of year, Jan 1 of year+1)
// so departures in the last second of December 31 are still included.
func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func toTourModel(t *tour.Tour) *models.TourModel {
	m := &models.TourModel{
		ID:              t.ID,
		Name:            t.Name,
		Slug:            t.Slug,
		Duration:        t.Duration,
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
		Secret:          t.Secret,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	for _, d := range t.StartDates {
		m.StartDates = append(m.StartDates, models.TourStartDateModel{
			ID:       uuid.New(),
			StartsAt: d,
		})
	}
	return m
}

func toTourEntity(m *models.TourModel) *tour.Tour {
	t := &tour.Tour{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		Duration:        m.Duration,
		MaxGroupSize:    m.MaxGroupSize,
		Difficulty:      tour.Difficulty(m.Difficulty),
		RatingsAverage:  m.RatingsAverage,
		RatingsQuantity: m.RatingsQuantity,
		Price:           m.Price,
		PriceDiscount:   m.PriceDiscount,
		Summary:         m.Summary,
		Description:     m.Description,
		ImageCover:      m.ImageCover,
		Images:          m.Images,
		Secret:          m.Secret,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, d := range m.StartDates {
		t.StartDates = append(t.StartDates, d.StartsAt)
	}
	return t
}
