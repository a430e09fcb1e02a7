package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Trip is one persisted plan together with the parameters that produced it.
type Trip struct {
	BaseModel
	LocationName string
	DisplayName  string
	Latitude     float64
	Longitude    float64
	DurationDays int
	Budget       string
	Travelers    string
	Query        string

	// Stop names in day-major order, for listing without loading days.
	Highlights pq.StringArray `gorm:"type:text[]"`

	Hotels            datatypes.JSON `gorm:"type:jsonb"`
	HotelsOrigin      string
	Restaurants       datatypes.JSON `gorm:"type:jsonb"`
	RestaurantsOrigin string

	Days []TripDay
}

type TripDay struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	DayNumber int

	Stops []TripStop
}

type TripStop struct {
	BaseModel
	TripDayID   uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	Name        string
	Description string
	Rating      string
	PriceInfo   string
	TimeOfDay   string
	ImageURL    string
	Lat         float64
	Lon         float64
}
