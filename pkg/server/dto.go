package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest is the body of POST /api/books and PUT /api/books/:id.
type CreateBookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	PublishedYear int      `json:"publishedYear"`
	Genres        []string `json:"genres"`
	Stock         int      `json:"stock"`
}

// Validate checks the request against the book schema rules.
func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Author, validation.Required),
		validation.Field(&r.PublishedYear, validation.Required, validation.Min(4)),
		validation.Field(&r.Genres, validation.NotNil),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// CreateContactMessageRequest is the body of POST /api/contacts.
type CreateContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks the request against the contact message rules.
func (r CreateContactMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Message, validation.Required, validation.Length(10, 255)),
	)
}
