package candidate

import (
	"hrm-core/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	candidates := r.Group("/candidates")
	{
		candidates.GET("", h.GetAll)
		candidates.GET("/:id", h.GetByID)
		candidates.POST("", middleware.Idempotency(rdb), h.Create)
		candidates.PUT("/:id", h.Update)
		candidates.DELETE("/:id", h.Delete)
	}
}
