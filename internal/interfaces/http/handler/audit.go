package handler

import (
	"strconv"
	"time"

	"github.com/chatforge/backend/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler exposes the audit trail to the admin dashboard. The
// trail is read-only from the API; entries are appended by the
// services that run destructive operations.
type AuditHandler struct {
	BaseHandler
	auditRepo audit.Repository
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditRepo audit.Repository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// AuditEntryResponse is the read model for one audit entry
type AuditEntryResponse struct {
	ID            uuid.UUID `json:"id"`
	Actor         string    `json:"actor"`
	Action        string    `json:"action"`
	Target        string    `json:"target"`
	AffectedCount int       `json:"affected_count"`
	Detail        string    `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListRecent returns the most recent audit entries, newest first
func (h *AuditHandler) ListRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.BadRequest(c, "limit must be an integer between 1 and 500")
			return
		}
		limit = parsed
	}

	entries, err := h.auditRepo.FindRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = AuditEntryResponse{
			ID:            entries[i].ID,
			Actor:         entries[i].Actor,
			Action:        string(entries[i].Action),
			Target:        entries[i].Target,
			AffectedCount: entries[i].AffectedCount,
			Detail:        entries[i].Detail,
			CreatedAt:     entries[i].CreatedAt,
		}
	}
	h.Success(c, responses)
}
