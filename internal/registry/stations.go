package registry

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type stationRequest struct {
	Name              string  `json:"name" binding:"required"`
	Logo              string  `json:"logo"`
	Image             string  `json:"image"`
	ImageID           string  `json:"imageId"`
	PMS               float64 `json:"pms"`
	AGO               float64 `json:"ago"`
	Address           string  `json:"address"`
	SupportedOrdering bool    `json:"supportedOrdering"`
	Email             string  `json:"email"`
	OperatingHours    string  `json:"operatingHours"`
	AvailableProducts string  `json:"availableProducts"`
	PaymentMethods    string  `json:"paymentMethods"`
	Facilities        string  `json:"facilities"`
	OwnerID           string  `json:"ownerId"`
}

func (s *Server) createStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	station := models.Station{
		Name:              req.Name,
		Logo:              req.Logo,
		Image:             req.Image,
		ImageID:           req.ImageID,
		PMS:               req.PMS,
		AGO:               req.AGO,
		Address:           req.Address,
		SupportedOrdering: req.SupportedOrdering,
		Email:             req.Email,
		OperatingHours:    req.OperatingHours,
		AvailableProducts: req.AvailableProducts,
		PaymentMethods:    req.PaymentMethods,
		Facilities:        req.Facilities,
	}
	if req.OwnerID != "" {
		station.OwnerID = &req.OwnerID
	}

	if err := s.db.Create(&station).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create station")
		return
	}

	c.JSON(http.StatusCreated, station)
}

func (s *Server) updateStation(c *gin.Context) {
	id := c.Param("id")

	var existing models.Station
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Station not found")
		return
	}

	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	existing.Name = req.Name
	existing.Logo = req.Logo
	existing.Image = req.Image
	existing.ImageID = req.ImageID
	existing.PMS = req.PMS
	existing.AGO = req.AGO
	existing.Address = req.Address
	existing.SupportedOrdering = req.SupportedOrdering
	existing.Email = req.Email
	existing.OperatingHours = req.OperatingHours
	existing.AvailableProducts = req.AvailableProducts
	existing.PaymentMethods = req.PaymentMethods
	existing.Facilities = req.Facilities

	if err := s.db.Save(&existing).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to update station")
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (s *Server) deleteStation(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := s.db.Select("id", "image_id").First(&station, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Station not found")
		return
	}

	// Best effort: a failed image delete should not block removing the
	// listing itself.
	if station.ImageID != "" && s.images != nil {
		if err := s.images.Delete(context.Background(), station.ImageID); err != nil {
			log.Error().Err(err).Str("image_id", station.ImageID).Msg("Failed to delete station image")
		}
	}

	if err := s.db.Delete(&models.Station{}, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to delete station")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Station and image deleted successfully"})
}

func (s *Server) listStations(c *gin.Context) {
	var stations []models.Station
	if err := s.db.Order("updated_at desc").Find(&stations).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch stations")
		return
	}
	c.JSON(http.StatusOK, stations)
}

func (s *Server) stationByOwner(c *gin.Context) {
	ownerID := c.Param("ownerId")

	var station models.Station
	err := s.db.Where("owner_id = ?", ownerID).First(&station).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch station")
		return
	}
	c.JSON(http.StatusOK, station)
}

func (s *Server) stationDetails(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := s.db.Preload("Owner").First(&station, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "No stations found for this owner.")
		return
	}
	c.JSON(http.StatusOK, station)
}

func (s *Server) stationByID(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := s.db.First(&station, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Station not found")
		return
	}
	c.JSON(http.StatusOK, station)
}
