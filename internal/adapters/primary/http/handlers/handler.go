package handlers

import (
	"nomogram-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the nomogram API. historySvc may be nil, in which case the
// history routes are not registered.
type Handler struct {
	nomogramSvc *services.NomogramService
	historySvc  *services.HistoryService
}

func New(
	nomogramSvc *services.NomogramService,
	historySvc *services.HistoryService,
) *Handler {
	return &Handler{
		nomogramSvc: nomogramSvc,
		historySvc:  historySvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Calculation
	r.POST("/calculate", h.Calculate)
	r.GET("/model", h.GetModel)

	// History
	if h.historySvc == nil {
		return
	}
	r.GET("/history", h.ListHistory)
	r.GET("/history/export", h.ExportHistory)
	r.GET("/history/:id", h.GetHistoryRecord)
	r.GET("/history/:id/export", h.ExportHistoryRecord)
	r.DELETE("/history", h.ClearHistory)
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
