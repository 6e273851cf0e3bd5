package model

import (
	"context"
	"time"
)

// BookStore defines persistence operations for books. Every read and write
// is scoped by the caller's identity: non-admin callers only resolve rows
// they own.
type BookStore interface {
	Create(ctx context.Context, book Book) (Book, error)
	GetByID(ctx context.Context, caller Identity, id int64) (Book, error)
	Update(ctx context.Context, caller Identity, book Book) (Book, error)
	SetImageURL(ctx context.Context, caller Identity, id int64, imageURL string) (Book, error)
	Delete(ctx context.Context, caller Identity, id int64) error
	List(ctx context.Context, caller Identity, query BookQuery) ([]Book, int, error)
}

// Book is a catalogue record.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Year        *int      `json:"year"`
	ISBN        *string   `json:"isbn"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Book list sort orders.
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortAZ     = "az"
)

// BookQuery carries list filters and pagination. Zero-valued filters are
// ignored.
type BookQuery struct {
	Title    string
	Author   string
	Year     *int
	ISBN     string
	Page     int
	PageSize int
	Sort     string
}

// Normalize clamps pagination and sort to their documented ranges.
func (q BookQuery) Normalize() BookQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	switch q.Sort {
	case SortOldest, SortAZ:
	default:
		q.Sort = SortLatest
	}
	return q
}
