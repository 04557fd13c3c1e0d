package model

import "github.com/bookvault/bookvault/pkg/repository"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	Base
	Name    string `gorm:"column:name" json:"name"`
	Email   string `gorm:"column:email" json:"email"`
	Message string `gorm:"column:message;size:255" json:"message"`
}

// TableName returns the database table name.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// ContactMessageSchema is the explicit field registry for ContactMessage.
func ContactMessageSchema() repository.Schema {
	return repository.Schema{
		Table:         "contact_messages",
		PrimaryColumn: "id",
		Fields: map[string]repository.Field{
			"id":          {Column: "id", Queryable: true},
			"name":        {Column: "name", Queryable: true},
			"email":       {Column: "email", Queryable: true},
			"message":     {Column: "message", Queryable: true},
			"createdDate": {Column: "created_date", Queryable: true},
		},
	}
}
