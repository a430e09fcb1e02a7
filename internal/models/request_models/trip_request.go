package request_models

type CreateTripRequest struct {
	Location  string `json:"location" binding:"required"`
	Days      int    `json:"days" binding:"required"`
	Budget    string `json:"budget" binding:"required"`
	Travelers string `json:"travelers" binding:"required"`
}
