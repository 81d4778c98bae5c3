package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trishaguarin/STADVDB-MCO1/internal/reports"
)

// respond writes the response envelope. Report failures surface as a
// 500 with the error message; the details stay in the server log.
func respond(c *gin.Context, data any, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// listParam collects a multi-valued query parameter. Both repeated keys
// (?countries=USA&countries=Canada) and comma-separated values
// (?countries=USA,Canada) are accepted, in any mix.
func listParam(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseParams maps the request's query string onto report parameters.
// The time granularity rides under "category" and the location axis
// under "type"; the product-category filter is "product_category" so
// the two never collide. Axis selectors with bad values fall back to
// endpoint defaults inside the report builder rather than erroring
// here.
func parseParams(c *gin.Context) reports.Params {
	p := reports.Params{
		Granularity:  c.Query("category"),
		LocationType: c.Query("type"),
		Segment:      c.Query("segment"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		Countries:    listParam(c, "country"),
		Cities:       listParam(c, "city"),
		Categories:   listParam(c, "product_category"),
		Couriers:     listParam(c, "courier"),
		Genders:      listParam(c, "gender"),
		AgeGroups:    listParam(c, "age_group"),
		Metric:       c.Query("metric"),
		Ascending:    c.Query("order") == "asc",
	}
	if n, err := strconv.Atoi(c.Query("top_n")); err == nil {
		p.TopN = n
	}
	return p
}

func (s *Server) ordersOverTime(c *gin.Context) {
	data, err := s.Reports.OrdersOverTime(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) ordersByLocation(c *gin.Context) {
	data, err := s.Reports.OrdersByLocation(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) ordersByCategory(c *gin.Context) {
	data, err := s.Reports.OrdersByCategory(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) salesOverTime(c *gin.Context) {
	data, err := s.Reports.SalesOverTime(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) salesByLocation(c *gin.Context) {
	data, err := s.Reports.SalesByLocation(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) salesByCategory(c *gin.Context) {
	data, err := s.Reports.SalesByCategory(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) ordersByDemographics(c *gin.Context) {
	data, err := s.Reports.OrdersByDemographics(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) segmentsRevenue(c *gin.Context) {
	data, err := s.Reports.SegmentsRevenue(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) topProductsByCategory(c *gin.Context) {
	data, err := s.Reports.TopProductsByCategory(c.Request.Context(), parseParams(c))
	respond(c, data, err)
}

func (s *Server) filterCountries(c *gin.Context) {
	data, err := s.Reports.Countries(c.Request.Context())
	respond(c, data, err)
}

func (s *Server) filterCities(c *gin.Context) {
	data, err := s.Reports.Cities(c.Request.Context(), c.Query("country"))
	respond(c, data, err)
}
