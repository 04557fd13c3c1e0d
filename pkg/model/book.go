package model

import "github.com/bookvault/bookvault/pkg/repository"

// Book is a book record. Genres are stored as a JSON-encoded array in a text
// column, so substring filters over the column match individual tags.
type Book struct {
	Base
	Title         string   `gorm:"column:title" json:"title"`
	Author        string   `gorm:"column:author" json:"author"`
	PublishedYear int      `gorm:"column:published_year" json:"publishedYear"`
	Genres        []string `gorm:"column:genres;serializer:json" json:"genres"`
	Stock         int      `gorm:"column:stock" json:"stock"`
}

// TableName returns the database table name.
func (Book) TableName() string {
	return "books"
}

// BookSchema is the explicit field registry for Book, consumed by the generic
// repository to validate filter and order fields.
func BookSchema() repository.Schema {
	return repository.Schema{
		Table:         "books",
		PrimaryColumn: "id",
		Fields: map[string]repository.Field{
			"id":            {Column: "id", Queryable: true},
			"title":         {Column: "title", Queryable: true},
			"author":        {Column: "author", Queryable: true},
			"publishedYear": {Column: "published_year", Queryable: true},
			"genres":        {Column: "genres", Queryable: true},
			"stock":         {Column: "stock", Queryable: true},
			"createdDate":   {Column: "created_date", Queryable: true},
			"updatedDate":   {Column: "updated_date", Queryable: true},
		},
	}
}
