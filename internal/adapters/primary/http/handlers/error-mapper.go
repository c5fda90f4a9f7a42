package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	var precondition *domain.PreconditionError
	var validation *domain.ValidationError

	switch {
	// Covariate errors
	case errors.As(err, &precondition):
		c.JSON(http.StatusBadRequest, dto.PreconditionErrorResponse{
			Error:   precondition.Error(),
			Missing: precondition.Missing,
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Error:  domain.ErrInvalidCovariate.Error(),
			Errors: validation.Errors,
		})

	// Not found errors
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidRecordID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
