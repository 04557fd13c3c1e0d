package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/bookvault/bookvault/pkg/cache"
	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/model"
	"github.com/bookvault/bookvault/pkg/repository"
)

// Cache key namespace for books: one key for the full collection, one per id,
// and one per page signature. Every mutation invalidates all three shapes.
const (
	bookAllKey      = "book:all"
	bookIDKeyFormat = "book:id=%s"
	bookPagePrefix  = "book:page:"
	bookPagePattern = bookPagePrefix + "*"
)

// BookInput carries the user-supplied fields of a book.
type BookInput struct {
	Title         string
	Author        string
	PublishedYear int
	Genres        []string
	Stock         int
}

// BookPage is one page of books plus the total count of all matching rows.
type BookPage struct {
	Items []model.Book `msgpack:"items" json:"items"`
	Total int64        `msgpack:"total" json:"total"`
}

// BookService wraps the book repository with a read-through, write-invalidate
// cache. The store is the source of truth: writes go to the repository first
// and invalidation follows before the call returns. Cache failures are logged
// and bypassed (fail-open) so a cache outage degrades to direct store access.
type BookService struct {
	repo  repository.Repository[model.Book]
	cache *cache.Manager
	log   logger.Logger
}

// NewBookService creates a cache-aware book service.
func NewBookService(repo repository.Repository[model.Book], cacheManager *cache.Manager, log logger.Logger) *BookService {
	if log == nil {
		log = logger.Nop()
	}
	return &BookService{repo: repo, cache: cacheManager, log: log}
}

// GetAllBooks returns the full collection, serving from the cache when the
// "all" key is populated.
func (s *BookService) GetAllBooks(ctx context.Context) ([]model.Book, error) {
	var cached []model.Book
	if s.cacheGet(ctx, bookAllKey, &cached) {
		return cached, nil
	}

	books, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(books) > 0 {
		s.cacheSet(ctx, bookAllKey, books)
	}
	return books, nil
}

// GetBookByID returns one book. Unlike raw repository reads, a missing id is
// an error here: callers of the service expect the book to exist.
func (s *BookService) GetBookByID(ctx context.Context, id string) (*model.Book, error) {
	key := fmt.Sprintf(bookIDKeyFormat, id)

	var cached model.Book
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	book, err := s.repo.GetSingleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("%w: book %s", ErrNotFound, id)
	}

	s.cacheSet(ctx, key, book)
	return book, nil
}

// ListBooks serves a filtered, ordered page of books. Pages are cached under
// a signature key in the book:page namespace; any book mutation
// pattern-deletes the whole namespace, and the TTL bounds staleness should an
// invalidation be missed.
func (s *BookService) ListBooks(ctx context.Context, req repository.PageRequest) (*BookPage, error) {
	key := bookPageKey(req)

	var cached BookPage
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.repo.GetPageData(ctx, req)
	if err != nil {
		return nil, err
	}

	page := &BookPage{Items: items, Total: total}
	if total > 0 {
		s.cacheSet(ctx, key, page)
	}
	return page, nil
}

// SearchBooks runs a free-text search across title, author and genre tags,
// OR-combined. Search pages are deliberately not cached.
func (s *BookService) SearchBooks(ctx context.Context, search string, page, limit int) ([]model.Book, int64, error) {
	term := sanitizeSearchTerm(search)
	filter := fmt.Sprintf("title_contains_%s,author_contains_%s,genres_contains_%s", term, term, term)

	return s.repo.GetPageData(ctx, repository.PageRequest{
		Filter:   filter,
		OrderBy:  "id",
		Page:     page,
		PageSize: limit,
	})
}

// CreateBook persists a new book and invalidates the book cache namespace.
func (s *BookService) CreateBook(ctx context.Context, input BookInput) (*model.Book, error) {
	book := &model.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedYear: input.PublishedYear,
		Genres:        input.Genres,
		Stock:         input.Stock,
	}

	created, err := s.repo.Create(ctx, book, "", "")
	if err != nil {
		return nil, err
	}

	s.invalidateBookCaches(ctx, created.ID)
	return created, nil
}

// UpdateBook applies input to an existing book. Fails with ErrNotFound when
// the id does not resolve; the pre-read happens before any mutation.
func (s *BookService) UpdateBook(ctx context.Context, id string, input BookInput) (*model.Book, error) {
	existing, err := s.repo.GetSingleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: book %s", ErrNotFound, id)
	}

	existing.Title = input.Title
	existing.Author = input.Author
	existing.PublishedYear = input.PublishedYear
	existing.Genres = input.Genres
	existing.Stock = input.Stock

	updated, err := s.repo.Update(ctx, existing, "", "")
	if err != nil {
		return nil, err
	}

	s.invalidateBookCaches(ctx, id)
	return updated, nil
}

// DeleteBook removes a book. Fails with ErrNotFound when the id does not
// resolve; nothing is mutated in that case.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	existing, err := s.repo.GetSingleByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: book %s", ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateBookCaches(ctx, id)
	return nil
}

// invalidateBookCaches deletes the id key, the "all" key and every page
// signature key. Deleting absent keys is a no-op. Runs synchronously so
// invalidation has commenced before the mutation returns, but failures are
// logged rather than surfaced: the store write already committed.
func (s *BookService) invalidateBookCaches(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, fmt.Sprintf(bookIDKeyFormat, id)); err != nil && !cache.IsCacheDisabled(err) {
		s.log.Warn("cache invalidation failed", "key", fmt.Sprintf(bookIDKeyFormat, id), "error", err)
	}
	if err := s.cache.Delete(ctx, bookAllKey); err != nil && !cache.IsCacheDisabled(err) {
		s.log.Warn("cache invalidation failed", "key", bookAllKey, "error", err)
	}
	if err := s.cache.InvalidatePattern(ctx, bookPagePattern); err != nil && !cache.IsCacheDisabled(err) {
		s.log.Warn("cache invalidation failed", "pattern", bookPagePattern, "error", err)
	}
}

// cacheGet reads target from the cache, reporting whether it was a hit. All
// cache failures degrade to a miss.
func (s *BookService) cacheGet(ctx context.Context, key string, target interface{}) bool {
	err := s.cache.GetValue(ctx, key, target)
	if err == nil {
		return true
	}
	if !cache.IsKeyNotFound(err) && !cache.IsCacheDisabled(err) {
		s.log.Warn("cache read failed, falling back to store", "key", key, "error", err)
	}
	return false
}

// cacheSet stores value best-effort with the configured TTL.
func (s *BookService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetValue(ctx, key, value); err != nil && !cache.IsCacheDisabled(err) {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// bookPageKey derives a stable signature key for one page request.
func bookPageKey(req repository.PageRequest) string {
	signature := fmt.Sprintf("%s|%s|%t|%d|%d", req.Filter, req.OrderBy, req.Descending, req.Page, req.PageSize)
	return fmt.Sprintf("%s%016x", bookPagePrefix, xxhash.Sum64String(signature))
}

// sanitizeSearchTerm strips grammar delimiters so a raw search string cannot
// split into extra filter groups.
func sanitizeSearchTerm(term string) string {
	term = strings.ReplaceAll(term, ",", " ")
	term = strings.ReplaceAll(term, ";", " ")
	return strings.TrimSpace(term)
}
