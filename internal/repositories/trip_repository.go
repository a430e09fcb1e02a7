package repositories

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

// TripStore persists assembled plans.
type TripStore interface {
	Save(ctx context.Context, params trip_models.TripParameters, plan *trip_models.TripPlan) (string, error)
	Get(ctx context.Context, id string) (*trip_models.TripPlan, error)
	// List returns the most recently saved trips, newest first.
	List(ctx context.Context, limit int) ([]trip_models.TripSummary, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripStore {
	return &tripRepository{db: db}
}

func (r *tripRepository) Save(ctx context.Context, params trip_models.TripParameters, plan *trip_models.TripPlan) (string, error) {
	record, err := tripRecord(params, plan)
	if err != nil {
		return "", err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return "", fmt.Errorf("%w: save trip: %v", utils.ErrDatabaseError, err)
	}
	return record.ID.String(), nil
}

func (r *tripRepository) Get(ctx context.Context, id string) (*trip_models.TripPlan, error) {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrTripNotFound
	}

	var record dbm.Trip
	err = r.db.WithContext(ctx).
		Where("id = ?", tripID).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Days.Stops", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTripNotFound
		}
		return nil, fmt.Errorf("%w: load trip: %v", utils.ErrDatabaseError, err)
	}

	return tripPlan(&record)
}

func (r *tripRepository) List(ctx context.Context, limit int) ([]trip_models.TripSummary, error) {
	var records []dbm.Trip
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list trips: %v", utils.ErrDatabaseError, err)
	}

	out := make([]trip_models.TripSummary, 0, len(records))
	for i := range records {
		out = append(out, tripSummary(&records[i]))
	}
	return out, nil
}

func tripRecord(params trip_models.TripParameters, plan *trip_models.TripPlan) (*dbm.Trip, error) {
	hotels, err := json.Marshal(plan.Hotels.Items)
	if err != nil {
		return nil, fmt.Errorf("encode hotels: %w", err)
	}
	restaurants, err := json.Marshal(plan.Restaurants.Items)
	if err != nil {
		return nil, fmt.Errorf("encode restaurants: %w", err)
	}

	record := &dbm.Trip{
		LocationName:      params.Location(),
		DisplayName:       plan.Location.DisplayName,
		Latitude:          plan.Location.Latitude,
		Longitude:         plan.Location.Longitude,
		DurationDays:      params.DurationDays,
		Budget:            params.Budget,
		Travelers:         params.Travelers,
		Query:             params.Query,
		Hotels:            datatypes.JSON(hotels),
		HotelsOrigin:      string(plan.Hotels.Origin),
		Restaurants:       datatypes.JSON(restaurants),
		RestaurantsOrigin: string(plan.Restaurants.Origin),
		Highlights:        pq.StringArray{},
	}

	for pos, day := range plan.Itinerary {
		d := dbm.TripDay{Position: pos, DayNumber: day.DayNumber}
		for i, s := range day.Stops {
			d.Stops = append(d.Stops, dbm.TripStop{
				Position:    i,
				Name:        s.Name,
				Description: s.Description,
				Rating:      s.Rating,
				PriceInfo:   s.PriceInfo,
				TimeOfDay:   s.TimeOfDay,
				ImageURL:    s.ImageURL,
				Lat:         s.Lat,
				Lon:         s.Lon,
			})
			record.Highlights = append(record.Highlights, s.Name)
		}
		record.Days = append(record.Days, d)
	}
	return record, nil
}

func tripPlan(record *dbm.Trip) (*trip_models.TripPlan, error) {
	plan := &trip_models.TripPlan{
		ID: record.ID.String(),
		Location: trip_models.ResolvedLocation{
			DisplayName: record.DisplayName,
			Latitude:    record.Latitude,
			Longitude:   record.Longitude,
		},
		Parameters: trip_models.TripParameters{
			DurationDays: record.DurationDays,
			Budget:       record.Budget,
			Travelers:    record.Travelers,
			Query:        record.Query,
		},
		Hotels:      trip_models.ProviderResult[trip_models.Lodging]{Items: []trip_models.Lodging{}, Origin: trip_models.Origin(record.HotelsOrigin)},
		Restaurants: trip_models.ProviderResult[trip_models.Dining]{Items: []trip_models.Dining{}, Origin: trip_models.Origin(record.RestaurantsOrigin)},
		Itinerary:   make([]trip_models.ItineraryDay, 0, len(record.Days)),
	}
	if record.LocationName != "" {
		name := record.LocationName
		plan.Parameters.LocationName = &name
	}

	if len(record.Hotels) > 0 {
		if err := json.Unmarshal(record.Hotels, &plan.Hotels.Items); err != nil {
			return nil, fmt.Errorf("%w: decode hotels: %v", utils.ErrDatabaseError, err)
		}
	}
	if len(record.Restaurants) > 0 {
		if err := json.Unmarshal(record.Restaurants, &plan.Restaurants.Items); err != nil {
			return nil, fmt.Errorf("%w: decode restaurants: %v", utils.ErrDatabaseError, err)
		}
	}

	slices.SortStableFunc(record.Days, func(a, b dbm.TripDay) int { return cmp.Compare(a.Position, b.Position) })
	for _, d := range record.Days {
		slices.SortStableFunc(d.Stops, func(a, b dbm.TripStop) int { return cmp.Compare(a.Position, b.Position) })
		day := trip_models.ItineraryDay{DayNumber: d.DayNumber, Stops: make([]trip_models.Stop, 0, len(d.Stops))}
		for _, s := range d.Stops {
			day.Stops = append(day.Stops, trip_models.Stop{
				Name:        s.Name,
				Description: s.Description,
				Rating:      s.Rating,
				PriceInfo:   s.PriceInfo,
				TimeOfDay:   s.TimeOfDay,
				ImageURL:    s.ImageURL,
				Lat:         s.Lat,
				Lon:         s.Lon,
			})
		}
		plan.Itinerary = append(plan.Itinerary, day)
	}
	return plan, nil
}

func tripSummary(record *dbm.Trip) trip_models.TripSummary {
	highlights := []string(record.Highlights)
	if highlights == nil {
		highlights = []string{}
	}
	return trip_models.TripSummary{
		ID:           record.ID.String(),
		Location:     record.DisplayName,
		DurationDays: record.DurationDays,
		Budget:       record.Budget,
		Travelers:    record.Travelers,
		Highlights:   highlights,
		CreatedAt:    record.CreatedAt,
	}
}
