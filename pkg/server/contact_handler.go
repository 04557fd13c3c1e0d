package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/service"
)

// ContactHandler exposes the contact form endpoint.
type ContactHandler struct {
	svc *service.ContactService
	log logger.Logger
}

// NewContactHandler creates a contact handler.
func NewContactHandler(svc *service.ContactService, log logger.Logger) *ContactHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ContactHandler{svc: svc, log: log}
}

// Register mounts the contact routes on the given group.
func (h *ContactHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/contacts", h.Create)
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, h.log, err)
		return
	}

	msg, err := h.svc.CreateContactMessage(c.Request.Context(), service.ContactMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
