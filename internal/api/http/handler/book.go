package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/api/http/middleware"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/service"
)

// BookService is the slice of the catalogue domain the HTTP layer consumes.
type BookService interface {
	Create(ctx context.Context, caller model.Identity, book model.Book) (model.Book, error)
	List(ctx context.Context, caller model.Identity, query model.BookQuery) (service.BookList, error)
	Update(ctx context.Context, caller model.Identity, book model.Book) (model.Book, error)
	UploadImage(ctx context.Context, caller model.Identity, bookID int64, filename, contentType string, data io.Reader, size int64) (model.Book, error)
	Delete(ctx context.Context, caller model.Identity, bookID int64) error
}

type BookHandler struct {
	service BookService
}

func NewBookHandler(s BookService) *BookHandler { return &BookHandler{service: s} }

type bookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Year        *int    `json:"year"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
}

func (r bookRequest) model() model.Book {
	return model.Book{
		Title:       r.Title,
		Author:      r.Author,
		Year:        r.Year,
		ISBN:        r.ISBN,
		Description: r.Description,
	}
}

func (h *BookHandler) Create(c echo.Context) error {
	caller, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}
	req := new(bookRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	book, err := h.service.Create(c.Request().Context(), caller, req.model())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) List(c echo.Context) error {
	caller, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}

	query := model.BookQuery{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
		ISBN:   c.QueryParam("isbn"),
		Sort:   c.QueryParam("sort"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "invalid year")
		}
		query.Year = &year
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "invalid page")
		}
		query.Page = page
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "invalid page_size")
		}
		query.PageSize = size
	}

	list, err := h.service.List(c.Request().Context(), caller, query)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *BookHandler) Update(c echo.Context) error {
	caller, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}
	id, err := bookID(c)
	if err != nil {
		return badRequest(c, "invalid book id")
	}
	req := new(bookRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}

	book := req.model()
	book.ID = id
	updated, err := h.service.Update(c.Request().Context(), caller, book)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *BookHandler) UploadImage(c echo.Context) error {
	caller, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}
	id, err := bookID(c)
	if err != nil {
		return badRequest(c, "invalid book id")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "failed to read image file")
	}
	defer file.Close()

	book, err := h.service.UploadImage(
		c.Request().Context(),
		caller,
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c echo.Context) error {
	caller, ok := middleware.IdentityFromContext(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}
	id, err := bookID(c)
	if err != nil {
		return badRequest(c, "invalid book id")
	}
	if err := h.service.Delete(c.Request().Context(), caller, id); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bookID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
