package service

import (
	"context"

	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/model"
	"github.com/bookvault/bookvault/pkg/repository"
)

// ContactMessageInput carries the user-supplied fields of a contact message.
type ContactMessageInput struct {
	Name    string
	Email   string
	Message string
}

// ContactService handles contact form submissions. Messages are write-only
// from the public API, so no caching is involved.
type ContactService struct {
	repo repository.Repository[model.ContactMessage]
	log  logger.Logger
}

// NewContactService creates a contact service.
func NewContactService(repo repository.Repository[model.ContactMessage], log logger.Logger) *ContactService {
	if log == nil {
		log = logger.Nop()
	}
	return &ContactService{repo: repo, log: log}
}

// CreateContactMessage persists a new contact message, stamping the sender as
// the acting identity.
func (s *ContactService) CreateContactMessage(ctx context.Context, input ContactMessageInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	return s.repo.Create(ctx, msg, input.Name, input.Email)
}
