package handler

import (
	"net/http"

	intakeapp "github.com/chatforge/backend/internal/application/intake"
	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BuildRequestHandler handles website-build request intake and the
// operator workflow over it
type BuildRequestHandler struct {
	BaseHandler
	requests *intakeapp.BuildRequestService
}

// NewBuildRequestHandler creates a new BuildRequestHandler
func NewBuildRequestHandler(requests *intakeapp.BuildRequestService) *BuildRequestHandler {
	return &BuildRequestHandler{requests: requests}
}

// SubmitBuildRequestRequest is the public intake form payload
type SubmitBuildRequestRequest struct {
	ProjectName      string   `json:"project_name" binding:"required,max=200"`
	Description      string   `json:"description" binding:"required,max=5000"`
	BusinessType     string   `json:"business_type" binding:"required,max=100"`
	SelectedFeatures []string `json:"selected_features"`
	Timeline         string   `json:"timeline" binding:"max=100"`
	Budget           string   `json:"budget" binding:"max=100"`
	CompanyID        *string  `json:"company_id" binding:"omitempty,uuid"`
}

// TransitionRequest names the target workflow status
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted in_review building delivered declined"`
}

// Submit accepts a build request from the public intake form
func (h *BuildRequestHandler) Submit(c *gin.Context) {
	var req SubmitBuildRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := intakeapp.SubmitBuildRequestInput{
		ProjectName:      req.ProjectName,
		Description:      req.Description,
		BusinessType:     req.BusinessType,
		SelectedFeatures: req.SelectedFeatures,
		Timeline:         req.Timeline,
		Budget:           req.Budget,
	}
	if req.CompanyID != nil {
		companyID, err := uuid.Parse(*req.CompanyID)
		if err != nil {
			h.BadRequest(c, "Invalid company ID")
			return
		}
		input.CompanyID = &companyID
	}

	request, err := h.requests.Submit(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, request)
}

// Get returns one build request
func (h *BuildRequestHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// List returns build requests, optionally filtered by status
func (h *BuildRequestHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	status := intake.BuildRequestStatus(c.Query("status"))
	requests, err := h.requests.List(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, requests, filter, len(requests))
}

// Transition moves a request along its workflow
func (h *BuildRequestHandler) Transition(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	request, err := h.requests.Transition(c.Request.Context(), id, intake.BuildRequestStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// ExportProjectDetail returns a request's detail document for download
func (h *BuildRequestHandler) ExportProjectDetail(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	filename, data, err := h.requests.ExportProjectDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Features returns the priceable feature catalog for the public form
func (h *BuildRequestHandler) Features(c *gin.Context) {
	h.Success(c, h.requests.Features())
}
