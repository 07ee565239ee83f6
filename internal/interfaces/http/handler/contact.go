package handler

import (
	intakeapp "github.com/chatforge/backend/internal/application/intake"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles the public contact form and its admin inbox
type ContactHandler struct {
	BaseHandler
	contacts *intakeapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts *intakeapp.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// SubmitContactRequest is the public contact form payload
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Subject string `json:"subject" binding:"required,max=300"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Submit accepts a contact-form submission from the public site
func (h *ContactHandler) Submit(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	message, err := h.contacts.Submit(c.Request.Context(), intakeapp.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, message)
}

// List returns contact messages for the admin inbox
func (h *ContactHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}
	if read := c.Query("read"); read != "" {
		filter.Filters = map[string]interface{}{"read": read == "true"}
	}

	messages, err := h.contacts.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, messages, filter, len(messages))
}

// MarkRead marks a message as read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	message, err := h.contacts.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, message)
}

// Delete removes a message from the inbox
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UnreadCount returns the number of unread messages for the inbox badge
func (h *ContactHandler) UnreadCount(c *gin.Context) {
	count, err := h.contacts.UnreadCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}
