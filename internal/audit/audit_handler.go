package audit

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"go-leavehub/internal/shared/apperror"
	"go-leavehub/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func filterFromQuery(c *gin.Context) ListFilter {
	filter := ListFilter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "25"))
	return filter
}

func (h *Handler) List(c *gin.Context) {
	filter := filterFromQuery(c)

	entries, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, entries, &meta)
}

// Export streams the filtered audit trail as an XLSX workbook.
func (h *Handler) Export(c *gin.Context) {
	filter := filterFromQuery(c)

	entries, err := h.service.Export(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Audit Logs"
	f.SetSheetName("Sheet1", sheet)

	headers := []any{"Timestamp", "Actor ID", "Action", "Entity", "Entity ID", "Metadata"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		h.logger.Error("audit export write header failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Failed to build export", nil)
		return
	}

	for i, entry := range entries {
		actor := ""
		if entry.ActorID != nil {
			actor = *entry.ActorID
		}
		row := []any{
			entry.CreatedAt,
			actor,
			entry.Action,
			entry.Entity,
			entry.EntityID,
			string(entry.Metadata),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			h.logger.Error("audit export write row failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Failed to build export", nil)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.logger.Error("audit export buffer failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Failed to build export", nil)
		return
	}

	filename := fmt.Sprintf("audit-logs-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}
