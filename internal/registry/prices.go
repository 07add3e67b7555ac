package registry

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/models"
	"gorm.io/gorm"
)

type fuelPriceRequest struct {
	Type  string  `json:"type" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

type priceRequest struct {
	StationName  string             `json:"stationName" binding:"required"`
	PriceAndType []fuelPriceRequest `json:"priceAndType" binding:"required"`
}

func (s *Server) createPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.PriceAndType) == 0 {
		api.Error(c, http.StatusBadRequest, "At least one price is required")
		return
	}

	// Names join the POI feed case-insensitively, so duplicates are
	// rejected the same way.
	var existing models.PetrolPrice
	err := s.db.Where("lower(station_name) = ?", strings.ToLower(strings.TrimSpace(req.StationName))).
		First(&existing).Error
	if err == nil {
		api.Error(c, http.StatusConflict, "A price entry for this station already exists")
		return
	}
	if err != gorm.ErrRecordNotFound {
		api.Error(c, http.StatusInternalServerError, "Failed to create price entry")
		return
	}

	entry := models.PetrolPrice{
		StationName:  strings.TrimSpace(req.StationName),
		PriceAndType: make([]models.PriceAndType, 0, len(req.PriceAndType)),
	}
	for _, p := range req.PriceAndType {
		entry.PriceAndType = append(entry.PriceAndType, models.PriceAndType{
			Type:  p.Type,
			Price: p.Price,
		})
	}

	if err := s.db.Create(&entry).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create price entry")
		return
	}

	s.prices.invalidate()
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) updatePrice(c *gin.Context) {
	id := c.Param("id")

	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.PriceAndType) == 0 {
		api.Error(c, http.StatusBadRequest, "At least one price is required")
		return
	}

	var entry models.PetrolPrice
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Price entry not found")
		return
	}

	// Prices are replaced wholesale rather than patched row by row.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("petrol_price_id = ?", entry.ID).Delete(&models.PriceAndType{}).Error; err != nil {
			return err
		}

		entry.StationName = strings.TrimSpace(req.StationName)
		entry.PriceAndType = make([]models.PriceAndType, 0, len(req.PriceAndType))
		for _, p := range req.PriceAndType {
			entry.PriceAndType = append(entry.PriceAndType, models.PriceAndType{
				Type:          p.Type,
				Price:         p.Price,
				PetrolPriceID: entry.ID,
			})
		}
		return tx.Save(&entry).Error
	})
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to update price entry")
		return
	}

	s.prices.invalidate()
	c.JSON(http.StatusOK, entry)
}

func (s *Server) listPrices(c *gin.Context) {
	var records []models.PetrolPrice
	err := s.db.Preload("PriceAndType").Order("station_name asc").Find(&records).Error
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch prices")
		return
	}
	c.JSON(http.StatusOK, records)
}
