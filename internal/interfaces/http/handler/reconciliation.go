package handler

import (
	approvalapp "github.com/chatforge/backend/internal/application/approval"
	"github.com/gin-gonic/gin"
)

// ReconciliationHandler exposes the orphan scan and repair operations
type ReconciliationHandler struct {
	BaseHandler
	reconciliation *approvalapp.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(reconciliation *approvalapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliation: reconciliation}
}

// CreateCompanyForEmailRequest names the user to repair by email
type CreateCompanyForEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Scan recomputes the orphan sets and per-status counts
func (h *ReconciliationHandler) Scan(c *gin.Context) {
	snapshot, err := h.reconciliation.Scan(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// FixOrphanUser synthesizes a pending company for one orphaned user
func (h *ReconciliationHandler) FixOrphanUser(c *gin.Context) {
	userID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	companyID, err := h.reconciliation.FixOrphanUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"company_id": companyID})
}

// FixAllOrphans repairs every orphaned user found by the last scan
func (h *ReconciliationHandler) FixAllOrphans(c *gin.Context) {
	result, err := h.reconciliation.FixAllOrphans(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteOrphanCompanies removes the companies whose user is gone,
// per the last scan
func (h *ReconciliationHandler) DeleteOrphanCompanies(c *gin.Context) {
	result, err := h.reconciliation.DeleteOrphanCompanies(c.Request.Context(), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateCompanyForEmail repairs a single user identified by email
func (h *ReconciliationHandler) CreateCompanyForEmail(c *gin.Context) {
	var req CreateCompanyForEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	companyID, err := h.reconciliation.CreateCompanyForEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"company_id": companyID})
}
