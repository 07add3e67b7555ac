package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petapp4all/petrol-go/internal/api"
	"github.com/petapp4all/petrol-go/internal/enrich"
	"github.com/petapp4all/petrol-go/internal/models"
)

// nearbyStations runs the enrichment pass server side: POI lookup around
// the supplied coordinates joined with the registry price list, ranked by
// distance.
func (s *Server) nearbyStations(c *gin.Context) {
	if s.stations == nil {
		api.Error(c, http.StatusServiceUnavailable, "Nearby lookup is not configured")
		return
	}

	lat, lon, err := api.ParseCoordinates(c)
	if err != nil {
		api.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	pipeline := enrich.NewPipeline(s.stations, s.prices)
	stations, err := pipeline.Run(c.Request.Context(), models.Coordinate{Lat: lat, Lon: lon})
	if err != nil {
		api.Error(c, http.StatusBadGateway, "Failed to fetch nearby stations")
		return
	}

	c.JSON(http.StatusOK, api.NewStationsResponse(stations))
}
