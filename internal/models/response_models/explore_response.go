package response_models

import "wayfarer/internal/models/trip_models"

type ExploreResponse struct {
	Location    trip_models.ResolvedLocation                       `json:"location"`
	Hotels      trip_models.ProviderResult[trip_models.Lodging]    `json:"hotels"`
	Restaurants trip_models.ProviderResult[trip_models.Dining]     `json:"restaurants"`
	Attractions trip_models.ProviderResult[trip_models.Attraction] `json:"attractions"`
	Guides      []trip_models.Guide                                `json:"guides"`
}
