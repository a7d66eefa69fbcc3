package attendance

import (
	"hrm-core/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.StationAuth())
	{
		// Scan stations hammer this endpoint; cap per-station throughput.
		attendances.POST("/check-in", middleware.RateLimitByStation(rate.Limit(5), 10), h.CheckIn)
		attendances.GET("/status/:employee_id/:date", h.Status)
		attendances.POST("/seed", h.SeedDay)
	}
}
