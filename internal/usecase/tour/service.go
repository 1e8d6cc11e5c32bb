package tour

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	domainTour "tour-booking-api/internal/domain/tour"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/validator"
	"tour-booking-api/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// queryFieldColumns maps the public API field names onto columns. Anything
// outside this allow-list is silently dropped from filters, sorts and
// projections.
var queryFieldColumns = map[string]string{
	"name":            "name",
	"slug":            "slug",
	"duration":        "duration",
	"maxGroupSize":    "max_group_size",
	"difficulty":      "difficulty",
	"ratingsAverage":  "ratings_average",
	"ratingsQuantity": "ratings_quantity",
	"price":           "price",
	"summary":         "summary",
}

var filterKeyPattern = regexp.MustCompile(`^([A-Za-z]+)\[(gte|gt|lte|lt)\]$`)

const defaultPageSize = 100

// Service implements the tour catalog use cases.
type Service struct {
	tours domainTour.Repository
}

func NewService(tours domainTour.Repository) *Service {
	return &Service{tours: tours}
}

func (s *Service) Create(ctx context.Context, req *CreateTourRequest) (*TourResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.PriceDiscount != nil && *req.PriceDiscount >= req.Price {
		return nil, apperrors.BadRequest(domainTour.ErrDiscountTooHigh.Error())
	}

	ratingsAverage := 4.5
	if req.RatingsAverage != nil {
		ratingsAverage = *req.RatingsAverage
	}

	tour := &domainTour.Tour{
		Name: req.Name,
		// Slug derivation is an explicit step of the write path, not a
		// persistence-layer hook.
		Slug:           slug.Make(req.Name),
		Duration:       req.Duration,
		MaxGroupSize:   req.MaxGroupSize,
		Difficulty:     domainTour.Difficulty(req.Difficulty),
		RatingsAverage: ratingsAverage,
		Price:          req.Price,
		PriceDiscount:  req.PriceDiscount,
		Summary:        req.Summary,
		Description:    req.Description,
		ImageCover:     req.ImageCover,
		Images:         req.Images,
		StartDates:     req.StartDates,
	}
	if req.Secret != nil {
		tour.Secret = *req.Secret
	}

	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, err
	}

	logger.Info("Tour created",
		zap.String("tour_id", tour.ID.String()),
		zap.String("slug", tour.Slug),
		zap.String("event", "tour_created"),
	)

	return ToTourResponse(tour), nil
}

func (s *Service) Get(ctx context.Context, tourID uuid.UUID) (*TourResponse, error) {
	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, domainTour.ErrTourNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no tour found for the id: %s", tourID))
		}
		return nil, err
	}
	return ToTourResponse(tour), nil
}

func (s *Service) List(ctx context.Context, values url.Values) ([]*TourResponse, error) {
	query := ParseListQuery(values)
	return s.list(ctx, query)
}

// TopCheap is the fixed alias for the five best-value tours.
func (s *Service) TopCheap(ctx context.Context) ([]*TourResponse, error) {
	query := &domainTour.ListQuery{
		Sort: []domainTour.SortField{
			{Field: "ratings_average", Descending: true},
			{Field: "price"},
		},
		Fields: []string{"id", "name", "price", "ratings_average", "summary", "difficulty"},
		Page:   1,
		Limit:  5,
	}
	return s.list(ctx, query)
}

func (s *Service) list(ctx context.Context, query *domainTour.ListQuery) ([]*TourResponse, error) {
	tours, err := s.tours.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]*TourResponse, 0, len(tours))
	for _, t := range tours {
		responses = append(responses, ToTourResponse(t))
	}
	return responses, nil
}

func (s *Service) Update(ctx context.Context, tourID uuid.UUID, req *UpdateTourRequest) (*TourResponse, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, domainTour.ErrTourNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no tour found for the id: %s", tourID))
		}
		return nil, err
	}

	if req.Name != nil {
		tour.Name = *req.Name
		tour.Slug = slug.Make(*req.Name)
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.MaxGroupSize != nil {
		tour.MaxGroupSize = *req.MaxGroupSize
	}
	if req.Difficulty != nil {
		tour.Difficulty = domainTour.Difficulty(*req.Difficulty)
	}
	if req.RatingsAverage != nil {
		tour.RatingsAverage = *req.RatingsAverage
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.PriceDiscount != nil {
		tour.PriceDiscount = req.PriceDiscount
	}
	if req.Summary != nil {
		tour.Summary = *req.Summary
	}
	if req.Description != nil {
		tour.Description = req.Description
	}
	if req.ImageCover != nil {
		tour.ImageCover = *req.ImageCover
	}
	if req.Images != nil {
		tour.Images = req.Images
	}
	if req.StartDates != nil {
		tour.StartDates = req.StartDates
	} else {
		tour.StartDates = nil
	}
	if req.Secret != nil {
		tour.Secret = *req.Secret
	}

	if tour.PriceDiscount != nil && *tour.PriceDiscount >= tour.Price {
		return nil, apperrors.BadRequest(domainTour.ErrDiscountTooHigh.Error())
	}

	if err := s.tours.Update(ctx, tour); err != nil {
		if errors.Is(err, domainTour.ErrTourNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("no tour found for the id: %s", tourID))
		}
		return nil, err
	}

	return ToTourResponse(tour), nil
}

func (s *Service) Delete(ctx context.Context, tourID uuid.UUID) error {
	err := s.tours.Delete(ctx, tourID)
	if errors.Is(err, domainTour.ErrTourNotFound) {
		return apperrors.NotFound(fmt.Sprintf("no tour found for the id: %s", tourID))
	}
	return err
}

func (s *Service) Stats(ctx context.Context) ([]*domainTour.DifficultyStats, error) {
	return s.tours.Stats(ctx)
}

func (s *Service) MonthlyPlan(ctx context.Context, year int) ([]*domainTour.MonthlyPlanEntry, error) {
	if year < 1900 || year > 2200 {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid year: %d", year))
	}
	return s.tours.MonthlyPlan(ctx, year)
}

// ParseListQuery turns raw query parameters into a catalog query: equality
// and gte/gt/lte/lt filters, comma-separated sort with a leading dash for
// descending, field projection and pagination.
func ParseListQuery(values url.Values) *domainTour.ListQuery {
	query := &domainTour.ListQuery{Page: 1, Limit: defaultPageSize}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		value := vals[0]

		switch key {
		case "page":
			if page, err := strconv.Atoi(value); err == nil && page > 0 {
				query.Page = page
			}
		case "limit":
			if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
				query.Limit = limit
			}
		case "sort":
			query.Sort = parseSort(value)
		case "fields":
			query.Fields = parseFields(value)
		default:
			if filter, ok := parseFilter(key, value); ok {
				query.Filters = append(query.Filters, filter)
			}
		}
	}

	return query
}

func parseFilter(key, value string) (domainTour.Filter, bool) {
	op := domainTour.OpEq
	field := key

	if match := filterKeyPattern.FindStringSubmatch(key); match != nil {
		field = match[1]
		op = domainTour.FilterOp(match[2])
	}

	column, ok := queryFieldColumns[field]
	if !ok {
		return domainTour.Filter{}, false
	}
	return domainTour.Filter{Field: column, Op: op, Value: value}, true
}

func parseSort(value string) []domainTour.SortField {
	var sorts []domainTour.SortField
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		descending := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")

		column, ok := queryFieldColumns[part]
		if !ok {
			continue
		}
		sorts = append(sorts, domainTour.SortField{Field: column, Descending: descending})
	}
	return sorts
}

func parseFields(value string) []string {
	fields := []string{"id"}
	for _, part := range strings.Split(value, ",") {
		column, ok := queryFieldColumns[strings.TrimSpace(part)]
		if !ok || column == "id" {
			continue
		}
		fields = append(fields, column)
	}
	if len(fields) == 1 {
		return nil
	}
	return fields
}
