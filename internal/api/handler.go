// Package api holds the JSON response envelopes and request parsing
// shared by registry handlers.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type StationsResponse struct {
	APIResponse
	Stations []models.EnrichedStation `json:"stations"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewStationsResponse(stations []models.EnrichedStation) *StationsResponse {
	return &StationsResponse{
		APIResponse: APIResponse{ResponseType: "stations"},
		Stations:    stations,
	}
}

// Error writes the {"message": ...} body the mobile client expects.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// Parameter parsing helpers
func ParseCoordinates(c *gin.Context) (float64, float64, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		return 0, 0, InvalidCoordinatesError{}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, err
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, err
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, InvalidCoordinatesError{}
	}

	return lat, lon, nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}
