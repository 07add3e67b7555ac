// Package registry is the REST backend the mobile client talks to:
// station directory, petrol price registry, vendors, classified ads and
// orders, with JWT auth and S3-backed image uploads.
package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/petapp4all/petrol-go/internal/config"
	"github.com/petapp4all/petrol-go/internal/enrich"
	"gorm.io/gorm"
)

type Server struct {
	db        *gorm.DB
	jwtSecret []byte
	images    ImageStore
	prices    *dbPriceSource
	stations  enrich.StationSource
}

type ServerOption func(*Server)

// WithImageStore wires an image store; without one the upload endpoint
// reports the feature as unavailable.
func WithImageStore(store ImageStore) ServerOption {
	return func(s *Server) {
		s.images = store
	}
}

// WithStationSource enables the server-side /station/nearby lookup.
func WithStationSource(source enrich.StationSource) ServerOption {
	return func(s *Server) {
		s.stations = source
	}
}

func NewServer(db *gorm.DB, jwtSecret []byte, cacheCfg *config.CacheConfig, opts ...ServerOption) *Server {
	s := &Server{
		db:        db,
		jwtSecret: jwtSecret,
		prices: &dbPriceSource{
			db:    db,
			cache: gocache.New(cacheCfg.GetPriceListTTL(), cacheCfg.GetPriceListCleanup()),
		},
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table. Paths mirror the contract the mobile
// client already uses.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
	}

	station := r.Group("/station")
	{
		station.GET("", s.listStations)
		station.GET("/by-owner/:ownerId", s.stationByOwner)
		station.GET("/details/:id", s.stationDetails)
		station.GET("/nearby", s.nearbyStations)

		station.GET("/price", s.listPrices)
		station.GET("/vendor", s.listVendors)
		station.GET("/vendor/:id", s.vendorByID)

		station.GET("/:id", s.stationByID)

		protected := station.Group("")
		protected.Use(s.authRequired())
		{
			protected.POST("/create", s.createStation)
			protected.PUT("/:id", s.updateStation)
			protected.DELETE("/:id", s.deleteStation)

			protected.POST("/price", s.createPrice)
			protected.PUT("/price/:id", s.updatePrice)

			protected.POST("/vendor", s.createVendor)
			protected.PUT("/vendor/:id", s.updateVendor)
			protected.DELETE("/vendor/:id", s.deleteVendor)
		}
	}

	ads := r.Group("/ads")
	{
		ads.GET("", s.listAds)
		ads.GET("/:id", s.adByID)
		ads.POST("", s.authRequired(), s.createAd)
	}

	orders := r.Group("/order")
	{
		orders.POST("", s.authRequired(), s.createOrder)
		orders.GET("/by-user/:userId", s.authRequired(), s.ordersByUser)
	}

	uploads := r.Group("/upload")
	uploads.Use(s.authRequired())
	{
		uploads.POST("", s.presignUpload)
	}

	return r
}
