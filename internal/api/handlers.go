package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/transformer1234/job-application-tracker/internal/application"
	"github.com/transformer1234/job-application-tracker/internal/export"
	"github.com/transformer1234/job-application-tracker/internal/queryir"
)

// statusUpdate is the PUT /applications/:id body.
type statusUpdate struct {
	Status *string `json:"status"`
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Create stores a new record and returns it with its id.
func (h *Handler) Create(c *gin.Context) {
	var d application.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		writeBindError(c, err)
		return
	}

	app, err := h.svc.Create(c.Request.Context(), d)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListAll returns every record in id order.
func (h *Handler) ListAll(c *gin.Context) {
	apps, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// List returns one page of records matching the query parameters.
func (h *Handler) List(c *gin.Context) {
	spec, err := h.filterSpec(c)
	if err != nil {
		writeError(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Export returns every record matching the filters as CSV.
func (h *Handler) Export(c *gin.Context) {
	spec, err := h.filterSpec(c)
	if err != nil {
		writeError(c, err)
		return
	}

	apps, err := h.svc.Export(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="applications.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, apps); err != nil {
		_ = c.Error(err)
	}
}

// Stats returns the total and the count per status.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Compact renumbers ids to 1..N.
func (h *Handler) Compact(c *gin.Context) {
	n, err := h.svc.Compact(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Applications renumbered", "count": n})
}

// Get returns one record.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus overwrites the status of one record.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body statusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}
	if body.Status == nil {
		writeDetail(c, http.StatusBadRequest, "status is required")
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, *body.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}

// Delete removes one record; the rest are renumbered.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// filterSpec reads the list query parameters. page defaults to 1 and
// page_size to the configured default, clamped to the configured maximum.
// Non-integer values are validation errors; out-of-range integers are
// normalized later.
func (h *Handler) filterSpec(c *gin.Context) (queryir.FilterSpec, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return queryir.FilterSpec{}, err
	}
	pageSize, err := intQuery(c, "page_size", h.defaultPageSize)
	if err != nil {
		return queryir.FilterSpec{}, err
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	return queryir.FilterSpec{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, application.NewValidationError(name, fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}

// parseID reads the :id path parameter, writing a 400 when it is not an
// integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeDetail(c, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// writeError maps a service error to a status code and detail body.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *application.Error
	if !errors.As(err, &appErr) {
		writeDetail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch appErr.Code {
	case application.CodeValidation:
		writeDetail(c, http.StatusBadRequest, appErr.Message)
	case application.CodeNotFound:
		writeDetail(c, http.StatusNotFound, "Application not found")
	case application.CodeStoreUnavailable:
		writeDetail(c, http.StatusServiceUnavailable, "Store unavailable")
	default:
		writeDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// writeBindError reports a request body that could not be decoded.
func writeBindError(c *gin.Context, err error) {
	if application.IsValidation(err) {
		writeError(c, err)
		return
	}
	_ = c.Error(err)
	writeDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
}

func writeDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": detail})
}
