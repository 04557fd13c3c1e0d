package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/model"
	"github.com/bookvault/bookvault/pkg/repository"
	"github.com/bookvault/bookvault/pkg/service"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// pagedBooksResponse is the envelope for search and filtered listings.
type pagedBooksResponse struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalBooks int64        `json:"totalBooks"`
	Books      []model.Book `json:"books"`
}

// BookHandler exposes the book CRUD and search endpoints.
type BookHandler struct {
	svc *service.BookService
	log logger.Logger
}

// NewBookHandler creates a book handler.
func NewBookHandler(svc *service.BookService, log logger.Logger) *BookHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &BookHandler{svc: svc, log: log}
}

// Register mounts the book routes on the given group.
func (h *BookHandler) Register(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.POST("", h.Create)
	books.GET("", h.List)
	books.GET("/:id", h.GetByID)
	books.PUT("/:id", h.Update)
	books.DELETE("/:id", h.Delete)
}

// Create handles POST /api/books.
func (h *BookHandler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, h.log, err)
		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), service.BookInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genres:        req.Genres,
		Stock:         req.Stock,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// List handles GET /api/books. Without query parameters it returns the full
// collection. A search parameter switches to free-text search; filter/orderBy
// parameters switch to the filter DSL listing. Both paged modes share the
// same response envelope.
func (h *BookHandler) List(c *gin.Context) {
	page := intQuery(c, "page", defaultPage)
	limit := intQuery(c, "limit", defaultLimit)

	if search := c.Query("search"); search != "" {
		books, total, err := h.svc.SearchBooks(c.Request.Context(), search, page, limit)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, pagedResponse(books, total, page, limit))
		return
	}

	filter := c.Query("filter")
	orderBy := c.Query("orderBy")
	if filter != "" || orderBy != "" || c.Query("page") != "" {
		result, err := h.svc.ListBooks(c.Request.Context(), repository.PageRequest{
			Filter:     filter,
			OrderBy:    orderBy,
			Page:       page,
			PageSize:   limit,
			Descending: c.Query("desc") == "true",
		})
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, pagedResponse(result.Items, result.Total, page, limit))
		return
	}

	books, err := h.svc.GetAllBooks(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// GetByID handles GET /api/books/:id.
func (h *BookHandler) GetByID(c *gin.Context) {
	book, err := h.svc.GetBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update handles PUT /api/books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, h.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, h.log, err)
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), c.Param("id"), service.BookInput{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genres:        req.Genres,
		Stock:         req.Stock,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteBook(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "book deleted successfully"})
}

// pagedResponse computes totalPages as ceil(total / limit).
func pagedResponse(books []model.Book, total int64, page, limit int) pagedBooksResponse {
	if books == nil {
		books = []model.Book{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return pagedBooksResponse{
		Page:       page,
		TotalPages: totalPages,
		TotalBooks: total,
		Books:      books,
	}
}

// intQuery parses a positive integer query parameter with a fallback.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
