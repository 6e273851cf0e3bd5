package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/model"
)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {},
}

// Book serves the catalogue: scoped CRUD, cached listings and cover image
// uploads. The cache and storage collaborators are optional; a nil cache
// disables caching and a nil storage disables uploads.
type Book struct {
	store    model.BookStore
	cache    model.Cache
	storage  model.Storage
	cacheTTL time.Duration
	logger   *logger.Logger
}

func NewBook(store model.BookStore, cache model.Cache, storage model.Storage, cacheTTL time.Duration, logger *logger.Logger) *Book {
	return &Book{store: store, cache: cache, storage: storage, cacheTTL: cacheTTL, logger: logger}
}

// BookList is the paginated listing payload.
type BookList struct {
	Items []model.Book `json:"items"`
	Meta  ListMeta     `json:"meta"`
}

// ListMeta describes the page window of a listing.
type ListMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func (s *Book) Create(ctx context.Context, caller model.Identity, book model.Book) (model.Book, error) {
	book.OwnerID = caller.UserID

	created, err := s.store.Create(ctx, book)
	if err != nil {
		return model.Book{}, err
	}

	s.invalidate(ctx, caller)
	return created, nil
}

// List returns a page of books visible to the caller, served from the
// cache when possible. Cache failures degrade to the store silently.
func (s *Book) List(ctx context.Context, caller model.Identity, query model.BookQuery) (BookList, error) {
	query = query.Normalize()
	key := s.listKey(caller, query)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached BookList
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, model.ErrCacheMiss) {
			s.logger.Warn("book list cache read failed", "error", err.Error())
		}
	}

	items, total, err := s.store.List(ctx, caller, query)
	if err != nil {
		return BookList{}, err
	}

	totalPages := (total + query.PageSize - 1) / query.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	list := BookList{
		Items: items,
		Meta: ListMeta{
			Page:       query.Page,
			PageSize:   query.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	if s.cache != nil {
		if raw, err := json.Marshal(list); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				s.logger.Warn("book list cache write failed", "error", err.Error())
			}
		}
	}

	return list, nil
}

func (s *Book) Update(ctx context.Context, caller model.Identity, book model.Book) (model.Book, error) {
	updated, err := s.store.Update(ctx, caller, book)
	if err != nil {
		return model.Book{}, err
	}

	s.invalidate(ctx, caller)
	return updated, nil
}

// UploadImage stores a new cover image for the book and replaces any
// previous one. Keys are namespaced per owner so a public URL never
// collides across users.
func (s *Book) UploadImage(ctx context.Context, caller model.Identity, bookID int64, filename, contentType string, data io.Reader, size int64) (model.Book, error) {
	if s.storage == nil {
		return model.Book{}, model.ErrStorageUnavailable
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageExtensions[ext]; !ok {
		return model.Book{}, fmt.Errorf("%w: unsupported image format, use jpg, jpeg, png, webp, or gif", model.ErrInvalidArgument)
	}

	book, err := s.store.GetByID(ctx, caller, bookID)
	if err != nil {
		return model.Book{}, err
	}

	s.removeImage(ctx, book.ImageURL)

	key := fmt.Sprintf("books/%d/%s%s", caller.UserID, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
	url, err := s.storage.Upload(ctx, key, data, size, contentType)
	if err != nil {
		s.logger.Error("image upload failed", "book_id", bookID, "error", err.Error())
		return model.Book{}, fmt.Errorf("%w: %s", model.ErrStorageUnavailable, err)
	}

	updated, err := s.store.SetImageURL(ctx, caller, bookID, url)
	if err != nil {
		return model.Book{}, err
	}

	s.invalidate(ctx, caller)
	return updated, nil
}

func (s *Book) Delete(ctx context.Context, caller model.Identity, bookID int64) error {
	book, err := s.store.GetByID(ctx, caller, bookID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, caller, bookID); err != nil {
		return err
	}

	s.removeImage(ctx, book.ImageURL)
	s.invalidate(ctx, caller)
	return nil
}

// removeImage deletes a previously stored cover. Best effort: a missing or
// unreachable object must not fail the catalogue operation that triggered
// the cleanup.
func (s *Book) removeImage(ctx context.Context, imageURL *string) {
	if s.storage == nil || imageURL == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(*imageURL)
	if !ok {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete old image", "key", key, "error", err.Error())
	}
}

func (s *Book) listKey(caller model.Identity, q model.BookQuery) string {
	year := ""
	if q.Year != nil {
		year = fmt.Sprintf("%d", *q.Year)
	}
	parts := []string{
		"books",
		fmt.Sprintf("%d", caller.UserID),
		string(caller.Role.OrDefault()),
		q.Title, q.Author, year, q.ISBN,
		fmt.Sprintf("%d", q.Page), fmt.Sprintf("%d", q.PageSize),
		q.Sort,
	}
	return strings.Join(parts, ":")
}

// invalidate drops every cached listing of the caller after a write.
func (s *Book) invalidate(ctx context.Context, caller model.Identity) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("books:%d:%s:*", caller.UserID, caller.Role.OrDefault())
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Warn("book list cache invalidation failed", "error", err.Error())
	}
}
