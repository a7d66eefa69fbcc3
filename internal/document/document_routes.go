package document

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	documents := r.Group("/documents")
	{
		documents.POST("", h.Upload)
		documents.GET("/candidate/:id", h.ListByCandidate)
	}
}
