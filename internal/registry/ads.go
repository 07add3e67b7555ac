package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/models"
)

type adRequest struct {
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body" binding:"required"`
	Image   string `json:"image"`
	ImageID string `json:"imageId"`
}

func (s *Server) listAds(c *gin.Context) {
	var ads []models.Ad
	if err := s.db.Order("created_at desc").Find(&ads).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to fetch ads")
		return
	}
	c.JSON(http.StatusOK, ads)
}

func (s *Server) adByID(c *gin.Context) {
	id := c.Param("id")

	var ad models.Ad
	if err := s.db.First(&ad, "id = ?", id).Error; err != nil {
		api.Error(c, http.StatusNotFound, "Ad not found")
		return
	}
	c.JSON(http.StatusOK, ad)
}

func (s *Server) createAd(c *gin.Context) {
	var req adRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ad := models.Ad{
		Title:   req.Title,
		Body:    req.Body,
		Image:   req.Image,
		ImageID: req.ImageID,
		UserID:  c.GetString("userId"),
	}
	if err := s.db.Create(&ad).Error; err != nil {
		api.Error(c, http.StatusInternalServerError, "Failed to create ad")
		return
	}

	c.JSON(http.StatusCreated, ad)
}
