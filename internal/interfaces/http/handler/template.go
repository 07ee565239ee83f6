package handler

import (
	intakeapp "github.com/chatforge/backend/internal/application/intake"
	"github.com/gin-gonic/gin"
)

// TemplateHandler handles the website template gallery
type TemplateHandler struct {
	BaseHandler
	templates *intakeapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templates *intakeapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// CreateTemplateRequest is the admin payload for a new gallery template
type CreateTemplateRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Category    string   `json:"category" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=2000"`
	PreviewURL  string   `json:"preview_url" binding:"omitempty,url"`
	Features    []string `json:"features"`
}

// SetPublishedRequest toggles a template's public visibility
type SetPublishedRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// Create adds a template to the gallery
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	template, err := h.templates.Create(c.Request.Context(), intakeapp.CreateTemplateInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		Features:    req.Features,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, template)
}

// ListActive returns published templates for the public gallery,
// optionally narrowed to one category
func (h *TemplateHandler) ListActive(c *gin.Context) {
	templates, err := h.templates.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// ListAll returns every template for the admin panel
func (h *TemplateHandler) ListAll(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	templates, err := h.templates.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, templates, filter, len(templates))
}

// Update replaces a template's descriptive fields
func (h *TemplateHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	template, err := h.templates.Update(c.Request.Context(), id, intakeapp.CreateTemplateInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		PreviewURL:  req.PreviewURL,
		Features:    req.Features,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// SetPublished publishes or unpublishes a template
func (h *TemplateHandler) SetPublished(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	template, err := h.templates.SetPublished(c.Request.Context(), id, *req.Published)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// Delete removes a template from the gallery
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
