package handler

import (
	approvalapp "github.com/chatforge/backend/internal/application/approval"
	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// ApprovalHandler exposes the company approval workflow to the admin
// dashboard.
type ApprovalHandler struct {
	BaseHandler
	workflow *approvalapp.WorkflowService
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(workflow *approvalapp.WorkflowService) *ApprovalHandler {
	return &ApprovalHandler{workflow: workflow}
}

// ResetAllRequest carries the typed confirmation for the blanket reset
type ResetAllRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// DeleteCompanyRequest carries the typed company name confirming a
// permanent delete
type DeleteCompanyRequest struct {
	ConfirmName string `json:"confirm_name" binding:"required"`
}

// ListPending returns all companies awaiting a decision
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	companies, err := h.workflow.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// Counts returns per-status company totals for the dashboard header
func (h *ApprovalHandler) Counts(c *gin.Context) {
	counts, err := h.workflow.Counts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// ListByStatus returns companies in the requested approval status
func (h *ApprovalHandler) ListByStatus(c *gin.Context) {
	status := identity.ApprovalStatus(c.Param("status"))
	if !status.IsKnown() {
		h.BadRequest(c, "Unknown approval status: "+c.Param("status"))
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	companies, err := h.workflow.ListByStatus(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, companies, filter, len(companies))
}

// Approve transitions a single company to approved
func (h *ApprovalHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.workflow.Approve(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Reject transitions a single company to rejected
func (h *ApprovalHandler) Reject(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.workflow.Reject(c.Request.Context(), getActor(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// ApproveAllPending approves every pending company in one batch
func (h *ApprovalHandler) ApproveAllPending(c *gin.Context) {
	result, err := h.workflow.ApproveAllPending(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ResetAllToPending resets every company back to pending. The request
// body must carry the typed confirmation phrase.
func (h *ApprovalHandler) ResetAllToPending(c *gin.Context) {
	var req ResetAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.workflow.ResetAllToPending(c.Request.Context(), getActor(c), req.Confirmation)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteCompany permanently removes a company after a name-match
// confirmation and an archive backup
func (h *ApprovalHandler) DeleteCompany(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req DeleteCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.workflow.DeleteCompany(c.Request.Context(), getActor(c), id, req.ConfirmName); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSyntheticCompany inserts a marked probe record to validate the
// write path end to end
func (h *ApprovalHandler) CreateSyntheticCompany(c *gin.Context) {
	company, err := h.workflow.CreateSyntheticCompany(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}
