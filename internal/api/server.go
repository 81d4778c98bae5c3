// Package api exposes the reporting endpoints over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trishaguarin/STADVDB-MCO1/internal/logging"
	"github.com/trishaguarin/STADVDB-MCO1/internal/reports"
	"github.com/trishaguarin/STADVDB-MCO1/pkg/version"
)

// Server serves the dashboard API.
type Server struct {
	Reports *reports.Client
	Listen  string
}

// NewServer creates a server around a report client.
func NewServer(client *reports.Client, listen string) *Server {
	return &Server{Reports: client, Listen: listen}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", s.health)

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		orders.GET("/total-over-time", s.ordersOverTime)
		orders.GET("/by-location", s.ordersByLocation)
		orders.GET("/by-product-category", s.ordersByCategory)

		sales := api.Group("/sales")
		sales.GET("/total-over-time", s.salesOverTime)
		sales.GET("/by-location", s.salesByLocation)
		sales.GET("/by-product-category", s.salesByCategory)

		customers := api.Group("/customers")
		customers.GET("/orders-by-demographics", s.ordersByDemographics)
		customers.GET("/segments-revenue", s.segmentsRevenue)

		api.GET("/products/top-by-category", s.topProductsByCategory)

		filters := api.Group("/filters")
		filters.GET("/countries", s.filterCountries)
		filters.GET("/cities", s.filterCities)
	}

	return r
}

// Run starts the HTTP listener and blocks until it fails.
func (s *Server) Run() error {
	logging.Info().Str("listen", s.Listen).Msg("Starting API server")
	return s.Router().Run(s.Listen)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"service": "stadvdb",
			"version": version.Short(),
		},
	})
}

// requestLogger logs each request once it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	}
}
