package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/models"
)

type orderRequest struct {
	StationID string  `json:"stationId" binding:"required"`
	Product   string  `json:"product" binding:"required"`
	Litres    float64 `json:"litres" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var station models.Station
	if err := s.db.First(&station, "id = ?", req.StationID).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Station not found")
		return
	}
	if !station.SupportedOrdering {
		api.Error(c, http.StatusBadRequest, "Station does not support ordering")
		return
	}

	order := models.Order{
		UserID:    c.GetString("userId"),
		StationID: req.StationID,
		Product:   req.Product,
		Litres:    req.Litres,
		Amount:    req.Amount,
		Status:    "pending",
	}
	if err := s.db.Create(&order).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) ordersByUser(c *gin.Context) {
	userID := c.Param("userId")

	var orders []models.Order
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}
