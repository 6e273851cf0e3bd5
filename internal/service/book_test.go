package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Prem324/bookshelf/internal/mocks"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/testutil"
)

var testCaller = model.Identity{UserID: 1, Role: model.RoleUser}

func TestBook_Create(t *testing.T) {
	ctx := context.Background()

	store := &mocks.BookStore{}
	store.On("Create", ctx, mock.MatchedBy(func(b model.Book) bool {
		return b.OwnerID == 1 && b.Title == "Dune"
	})).Return(model.Book{ID: 10, Title: "Dune", OwnerID: 1}, nil).Once()

	cache := &mocks.Cache{}
	cache.On("Invalidate", ctx, "books:1:user:*").Return(nil).Once()

	svc := NewBook(store, cache, nil, time.Minute, testutil.MakeNoopLogger())

	book, err := svc.Create(ctx, testCaller, model.Book{Title: "Dune", OwnerID: 999})
	require.NoError(t, err)
	assert.Equal(t, int64(10), book.ID)
	assert.Equal(t, int64(1), book.OwnerID)
	cache.AssertExpectations(t)
}

func TestBook_List(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit bypasses the store", func(t *testing.T) {
		cached := BookList{
			Items: []model.Book{{ID: 10, Title: "Dune"}},
			Meta:  ListMeta{Page: 1, PageSize: 10, Total: 1, TotalPages: 1},
		}
		raw, err := json.Marshal(cached)
		require.NoError(t, err)

		store := &mocks.BookStore{}
		cache := &mocks.Cache{}
		cache.On("Get", ctx, mock.Anything).Return(raw, nil).Once()

		svc := NewBook(store, cache, nil, time.Minute, testutil.MakeNoopLogger())

		list, err := svc.List(ctx, testCaller, model.BookQuery{})
		require.NoError(t, err)
		assert.Equal(t, cached, list)
		store.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		store := &mocks.BookStore{}
		store.On("List", ctx, testCaller, mock.MatchedBy(func(q model.BookQuery) bool {
			return q.Page == 1 && q.PageSize == 10 && q.Sort == model.SortLatest
		})).Return([]model.Book{{ID: 10}}, 25, nil).Once()

		cache := &mocks.Cache{}
		cache.On("Get", ctx, mock.Anything).Return(nil, model.ErrCacheMiss).Once()
		cache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil).Once()

		svc := NewBook(store, cache, nil, time.Minute, testutil.MakeNoopLogger())

		list, err := svc.List(ctx, testCaller, model.BookQuery{})
		require.NoError(t, err)
		assert.Equal(t, 25, list.Meta.Total)
		assert.Equal(t, 3, list.Meta.TotalPages)
		cache.AssertExpectations(t)
	})

	t.Run("cache key separates callers and filters", func(t *testing.T) {
		svc := NewBook(&mocks.BookStore{}, nil, nil, time.Minute, testutil.MakeNoopLogger())

		q := model.BookQuery{Title: "dune"}.Normalize()
		keyUser := svc.listKey(model.Identity{UserID: 1, Role: model.RoleUser}, q)
		keyOther := svc.listKey(model.Identity{UserID: 2, Role: model.RoleUser}, q)
		keyAdmin := svc.listKey(model.Identity{UserID: 1, Role: model.RoleAdmin}, q)
		keyNoFilter := svc.listKey(model.Identity{UserID: 1, Role: model.RoleUser}, model.BookQuery{}.Normalize())

		assert.True(t, strings.HasPrefix(keyUser, "books:1:user:"))
		assert.NotEqual(t, keyUser, keyOther)
		assert.NotEqual(t, keyUser, keyAdmin)
		assert.NotEqual(t, keyUser, keyNoFilter)
	})

	t.Run("cache failures degrade to the store", func(t *testing.T) {
		store := &mocks.BookStore{}
		store.On("List", ctx, testCaller, mock.Anything).Return([]model.Book{}, 0, nil).Once()

		cache := &mocks.Cache{}
		cache.On("Get", ctx, mock.Anything).Return(nil, assert.AnError).Once()
		cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		svc := NewBook(store, cache, nil, time.Minute, testutil.MakeNoopLogger())

		list, err := svc.List(ctx, testCaller, model.BookQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, list.Meta.TotalPages)
	})

	t.Run("works without a cache", func(t *testing.T) {
		store := &mocks.BookStore{}
		store.On("List", ctx, testCaller, mock.Anything).Return([]model.Book{{ID: 10}}, 1, nil).Once()

		svc := NewBook(store, nil, nil, time.Minute, testutil.MakeNoopLogger())

		list, err := svc.List(ctx, testCaller, model.BookQuery{})
		require.NoError(t, err)
		assert.Len(t, list.Items, 1)
	})
}

func TestBook_Update(t *testing.T) {
	ctx := context.Background()

	store := &mocks.BookStore{}
	store.On("Update", ctx, testCaller, mock.Anything).Return(model.Book{ID: 10, Title: "Dune Messiah"}, nil).Once()

	cache := &mocks.Cache{}
	cache.On("Invalidate", ctx, "books:1:user:*").Return(nil).Once()

	svc := NewBook(store, cache, nil, time.Minute, testutil.MakeNoopLogger())

	book, err := svc.Update(ctx, testCaller, model.Book{ID: 10, Title: "Dune Messiah"})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", book.Title)
	cache.AssertExpectations(t)
}

func TestBook_UploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads and replaces previous cover", func(t *testing.T) {
		oldURL := "http://localhost:9000/bookshelf-images/books/1/old.jpg"

		store := &mocks.BookStore{}
		store.On("GetByID", ctx, testCaller, int64(10)).Return(model.Book{ID: 10, ImageURL: &oldURL}, nil).Once()
		store.On("SetImageURL", ctx, testCaller, int64(10), "http://localhost:9000/new-url").
			Return(model.Book{ID: 10}, nil).Once()

		storage := &mocks.Storage{}
		storage.On("KeyFromURL", oldURL).Return("books/1/old.jpg", true).Once()
		storage.On("Delete", ctx, "books/1/old.jpg").Return(nil).Once()
		storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "books/1/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, int64(4), "image/png").Return("http://localhost:9000/new-url", nil).Once()

		svc := NewBook(store, nil, storage, time.Minute, testutil.MakeNoopLogger())

		_, err := svc.UploadImage(ctx, testCaller, 10, "cover.PNG", "image/png", strings.NewReader("data"), 4)
		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		svc := NewBook(&mocks.BookStore{}, nil, &mocks.Storage{}, time.Minute, testutil.MakeNoopLogger())

		_, err := svc.UploadImage(ctx, testCaller, 10, "cover.pdf", "application/pdf", strings.NewReader(""), 0)
		assert.ErrorIs(t, err, model.ErrInvalidArgument)
	})

	t.Run("unavailable without storage", func(t *testing.T) {
		svc := NewBook(&mocks.BookStore{}, nil, nil, time.Minute, testutil.MakeNoopLogger())

		_, err := svc.UploadImage(ctx, testCaller, 10, "cover.png", "image/png", strings.NewReader(""), 0)
		assert.ErrorIs(t, err, model.ErrStorageUnavailable)
	})

	t.Run("foreign book stays hidden", func(t *testing.T) {
		store := &mocks.BookStore{}
		store.On("GetByID", ctx, testCaller, int64(10)).Return(model.Book{}, model.ErrNotFound).Once()

		svc := NewBook(store, nil, &mocks.Storage{}, time.Minute, testutil.MakeNoopLogger())

		_, err := svc.UploadImage(ctx, testCaller, 10, "cover.png", "image/png", strings.NewReader(""), 0)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestBook_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes row and stored cover", func(t *testing.T) {
		url := "http://localhost:9000/bookshelf-images/books/1/cover.jpg"

		store := &mocks.BookStore{}
		store.On("GetByID", ctx, testCaller, int64(10)).Return(model.Book{ID: 10, ImageURL: &url}, nil).Once()
		store.On("Delete", ctx, testCaller, int64(10)).Return(nil).Once()

		storage := &mocks.Storage{}
		storage.On("KeyFromURL", url).Return("books/1/cover.jpg", true).Once()
		storage.On("Delete", ctx, "books/1/cover.jpg").Return(nil).Once()

		cache := &mocks.Cache{}
		cache.On("Invalidate", ctx, "books:1:user:*").Return(nil).Once()

		svc := NewBook(store, cache, storage, time.Minute, testutil.MakeNoopLogger())

		require.NoError(t, svc.Delete(ctx, testCaller, 10))
		storage.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing row", func(t *testing.T) {
		store := &mocks.BookStore{}
		store.On("GetByID", ctx, testCaller, int64(10)).Return(model.Book{}, model.ErrNotFound).Once()

		svc := NewBook(store, nil, nil, time.Minute, testutil.MakeNoopLogger())

		err := svc.Delete(ctx, testCaller, 10)
		assert.ErrorIs(t, err, model.ErrNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
