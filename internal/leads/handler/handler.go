// Package handler exposes the lead triage HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lead_triage_backend/internal/leads/service"
	"lead_triage_backend/internal/leads/transport"
	"lead_triage_backend/platform/httpkit"
	"lead_triage_backend/platform/validator"
)

// Handler serves the lead ingest and reporting endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Ingest handles POST /api/v1/leads/ingest. The body is optional; an
// empty body ingests the configured default file.
func (h *Handler) Ingest(c *gin.Context) {
	var req transport.IngestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
	}

	resp, err := h.svc.Ingest(c.Request.Context(), req.FilePath)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// List handles GET /api/v1/leads.
func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, h.svc.List())
}

// Report handles GET /api/v1/leads/report.
func (h *Handler) Report(c *gin.Context) {
	httpkit.OK(c, h.svc.Report())
}
