package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
	logger      *zap.Logger
}

func NewTripController(tripService services.TripServiceInterface, logger *zap.Logger) *TripController {
	return &TripController{
		tripService: tripService,
		logger:      logger,
	}
}

// CreateTrip godoc
// @Summary Plan a trip
// @Description Builds a day-by-day itinerary with hotels and restaurants and stores it
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip request"
// @Success 201 {object} trip_models.TripPlan
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/v1/trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := t.tripService.CreateTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondWithCode(c, http.StatusCreated, plan, "Trip planned successfully")
}

// GetTrip godoc
// @Summary Get a saved trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} trip_models.TripPlan
// @Failure 404 {object} utils.APIResponse
// @Router /api/v1/trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	plan, err := t.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, plan, "Trip fetched successfully")
}

// ListTrips godoc
// @Summary List recent trips
// @Tags Trips
// @Produce json
// @Param limit query int false "Number of trips" default(20) minimum(1) maximum(50)
// @Success 200 {array} trip_models.TripSummary
// @Failure 400 {object} utils.APIResponse
// @Router /api/v1/trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 50 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-50)")
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, t.logger, err)
		return
	}
	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}
