package handler

import (
	"net/http"

	approvalapp "github.com/chatforge/backend/internal/application/approval"
	"github.com/gin-gonic/gin"
)

// DiagnosticsHandler exposes statistics, integrity reports and the
// snapshot export
type DiagnosticsHandler struct {
	BaseHandler
	diagnostics    *approvalapp.DiagnosticsService
	reconciliation *approvalapp.ReconciliationService
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler
func NewDiagnosticsHandler(diagnostics *approvalapp.DiagnosticsService, reconciliation *approvalapp.ReconciliationService) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnostics: diagnostics, reconciliation: reconciliation}
}

// Statistics returns approval/rejection/pending rates
func (h *DiagnosticsHandler) Statistics(c *gin.Context) {
	stats, err := h.diagnostics.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Integrity runs a fresh scan and reports invariant violations without
// repairing anything
func (h *DiagnosticsHandler) Integrity(c *gin.Context) {
	snapshot, err := h.reconciliation.Scan(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, approvalapp.ValidateIntegrity(snapshot))
}

// ExportSnapshot archives a diagnostics dump and returns it for
// download
func (h *DiagnosticsHandler) ExportSnapshot(c *gin.Context) {
	key, data, err := h.diagnostics.ExportSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+key+`"`)
	c.Data(http.StatusOK, "application/json", data)
}
