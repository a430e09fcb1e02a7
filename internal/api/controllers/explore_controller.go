package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type ExploreController struct {
	exploreService services.ExploreServiceInterface
	logger         *zap.Logger
}

func NewExploreController(exploreService services.ExploreServiceInterface, logger *zap.Logger) *ExploreController {
	return &ExploreController{
		exploreService: exploreService,
		logger:         logger,
	}
}

// Explore godoc
// @Summary Explore a destination
// @Description Hotels, restaurants, attractions and local guides for a location
// @Tags Explore
// @Produce json
// @Param location query string true "Destination name"
// @Success 200 {object} response_models.ExploreResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /api/v1/explore [get]
func (e *ExploreController) Explore(c *gin.Context) {
	out, err := e.exploreService.Explore(c.Request.Context(), c.Query("location"))
	if err != nil {
		utils.HandleServiceError(c, e.logger, err)
		return
	}
	utils.RespondSuccess(c, out, "Destination explored successfully")
}
