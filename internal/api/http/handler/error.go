package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/model"
)

// errorBody is the wire shape for every failed request.
type errorBody struct {
	Detail string `json:"detail"`
}

var statusByError = map[error]int{
	model.ErrEmailTaken:          http.StatusConflict,
	model.ErrInvalidCredentials:  http.StatusBadRequest,
	model.ErrInvalidArgument:     http.StatusBadRequest,
	model.ErrInvalidResetRequest: http.StatusBadRequest,
	model.ErrInvalidToken:        http.StatusUnauthorized,
	model.ErrNotFound:            http.StatusNotFound,
	model.ErrDeliveryFailed:      http.StatusBadGateway,
	model.ErrAuthUnavailable:     http.StatusServiceUnavailable,
	model.ErrStorageUnavailable:  http.StatusServiceUnavailable,
}

// errorResponse maps a service error onto an HTTP status and a body of
// the form {"detail": "..."}. Unknown errors become opaque 500s so
// internals never leak to clients.
func errorResponse(c echo.Context, err error) error {
	for sentinel, status := range statusByError {
		if errors.Is(err, sentinel) {
			return c.JSON(status, errorBody{Detail: sentinel.Error()})
		}
	}
	return c.JSON(http.StatusInternalServerError, errorBody{Detail: "internal server error"})
}

func badRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Detail: detail})
}
