package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workorder-service/internal/apperr"
	"workorder-service/internal/model"
	"workorder-service/internal/service"
)

// ListServers handles GET /servers.
func (h *Handler) ListServers(c *gin.Context) {
	page, pageErr := intQuery(c, "page", 1)
	rpp, rppErr := intQuery(c, "rpp", h.defaultPageSize)
	if fields := append(pageErr, rppErr...); len(fields) > 0 {
		h.writeError(c, apperr.Validation("invalid pagination", fields...), "")
		return
	}

	result, err := h.servers.List(c.Request.Context(), service.ListParams{
		Search:    c.Query("search"),
		SortField: c.DefaultQuery("sortField", "availability"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		PageSize:  rpp,
	})
	if err != nil {
		h.writeError(c, err, "Failed to retrieve servers.")
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Meta: Meta{
			Message:     "Servers retrieved successfully.",
			PageCount:   &result.TotalPages,
			ResultCount: &result.TotalElements,
		},
		Data: result.Servers,
	})
}

// GetServer handles GET /servers/:id.
func (h *Handler) GetServer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	server, err := h.servers.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to retrieve server.")
		return
	}
	respond(c, http.StatusOK, "Server retrieved successfully.", server)
}

// CreateServer handles POST /servers.
func (h *Handler) CreateServer(c *gin.Context) {
	dto, ok := h.bindServer(c)
	if !ok {
		return
	}

	created, err := h.servers.Create(c.Request.Context(), dto)
	if err != nil {
		h.writeError(c, err, "Failed to create new server.")
		return
	}
	respond(c, http.StatusOK, "Server created successfully", created)
}

// UpdateServer handles PUT /servers/:id.
func (h *Handler) UpdateServer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	dto, ok := h.bindServer(c)
	if !ok {
		return
	}

	updated, err := h.servers.Update(c.Request.Context(), id, dto)
	if err != nil {
		h.writeError(c, err, "Failed to update server.")
		return
	}
	respond(c, http.StatusOK, "Server updated successfully", updated)
}

// DeleteServer handles DELETE /servers/:id.
func (h *Handler) DeleteServer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.servers.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete server.")
		return
	}
	respond(c, http.StatusOK, "Server deleted successfully", nil)
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeError(c, apperr.Validation("invalid server id",
			apperr.FieldError{Field: "id", Message: "must be an integer"}), "")
		return 0, false
	}
	return id, true
}

func (h *Handler) bindServer(c *gin.Context) (model.ServerDTO, bool) {
	var req serverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("malformed request body",
			apperr.FieldError{Field: "body", Message: err.Error()}), "")
		return model.ServerDTO{}, false
	}

	dto, err := validateServer(req)
	if err != nil {
		h.writeError(c, err, "")
		return model.ServerDTO{}, false
	}
	return dto, true
}

func intQuery(c *gin.Context, key string, def int) (int, []apperr.FieldError) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, []apperr.FieldError{{Field: key, Message: "must be an integer"}}
	}
	return v, nil
}
