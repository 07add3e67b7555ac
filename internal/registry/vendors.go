package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/models"
)

type vendorRequest struct {
	FullName string  `json:"fullName" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Location string  `json:"location"`
	PMS      float64 `json:"pms"`
	UserID   string  `json:"userId"`
}

func (s *Server) createVendor(c *gin.Context) {
	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = c.GetString("userId")
	}

	vendor := models.Vendor{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		PMS:      req.PMS,
		UserID:   userID,
	}
	if err := s.db.Create(&vendor).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create vendor")
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

func (s *Server) updateVendor(c *gin.Context) {
	id := c.Param("id")

	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Vendor not found")
		return
	}

	var req vendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	vendor.FullName = req.FullName
	vendor.Phone = req.Phone
	vendor.Location = req.Location
	vendor.PMS = req.PMS

	if err := s.db.Save(&vendor).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to update vendor")
		return
	}

	c.JSON(http.StatusOK, vendor)
}

func (s *Server) listVendors(c *gin.Context) {
	var vendors []models.Vendor
	if err := s.db.Order("created_at desc").Find(&vendors).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (s *Server) vendorByID(c *gin.Context) {
	id := c.Param("id")

	var vendor models.Vendor
	if err := s.db.Preload("User").First(&vendor, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Vendor not found")
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (s *Server) deleteVendor(c *gin.Context) {
	id := c.Param("id")

	result := s.db.Delete(&models.Vendor{}, "id = ?", id)
	if result.Error != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to delete vendor")
		return
	}
	if result.RowsAffected == 0 {
		api.Error(c, http.StatusNotFound, "Vendor not found")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Vendor deleted successfully"})
}
