package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/core/domain"
	ports "nomogram-service/internal/core/ports/output"
)

const csvContentType = "text/csv; charset=utf-8"

func (h *Handler) ListHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	page, err := h.historySvc.List(c.Request.Context(), ports.HistoryFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		log.WithError(err).Error("list history failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.HistoryRecordResponse, 0, len(page.Records))
	for _, rec := range page.Records {
		items = append(items, dto.ToHistoryRecordResponse(rec))
	}

	c.JSON(http.StatusOK, dto.ListHistoryResponse{
		Items:      items,
		Total:      page.Total,
		PageSize:   page.Limit,
		NextOffset: page.Offset + len(items),
	})
}

func (h *Handler) GetHistoryRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidRecordID)
		return
	}

	rec, err := h.historySvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryRecordResponse(rec))
}

func (h *Handler) ClearHistory(c *gin.Context) {
	deleted, err := h.historySvc.Clear(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("clear history failed")
		mapDomainError(c, err)
		return
	}

	log.WithField("deleted", deleted).Info("history cleared")
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) ExportHistory(c *gin.Context) {
	var buf bytes.Buffer
	n, err := h.historySvc.ExportAll(c.Request.Context(), &buf)
	if err != nil {
		log.WithError(err).Error("export history failed")
		mapDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", attachment("nomogram_history"))
	c.Header("X-Record-Count", strconv.Itoa(n))
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

func (h *Handler) ExportHistoryRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidRecordID)
		return
	}

	var buf bytes.Buffer
	if err := h.historySvc.ExportRecord(c.Request.Context(), id, &buf); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", attachment("nomogram_record"))
	c.Data(http.StatusOK, csvContentType, buf.Bytes())
}

func attachment(prefix string) string {
	return fmt.Sprintf("attachment; filename=%q", prefix+"_"+time.Now().Format("20060102_150405")+".csv")
}
