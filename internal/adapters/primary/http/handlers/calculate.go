package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	log "github.com/sirupsen/logrus"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/core/domain"
)

func (h *Handler) Calculate(c *gin.Context) {
	var raw domain.RawCovariates

	if c.ContentType() == binding.MIMEPOSTForm {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form body"})
			return
		}
		raw = dto.FromForm(c.Request.PostForm)
	} else {
		var req dto.CalculateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}
		raw = req.ToDomain()
	}

	calc, err := h.nomogramSvc.Calculate(c.Request.Context(), raw, requestID(c))
	if err != nil {
		log.WithError(err).WithField("request_id", requestID(c)).Info("calculation rejected")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalculateResponse(calc.Result, calc.RecordID, h.nomogramSvc.Model()))
}

func (h *Handler) GetModel(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToModelResponse(h.nomogramSvc.Model(), h.nomogramSvc.Horizons()))
}
