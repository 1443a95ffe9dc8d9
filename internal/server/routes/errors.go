package routes

import (
	"errors"
	"net/http"

	"github.com/belgraph/reifier/internal/store"
	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/nodelink"

	"github.com/labstack/echo/v4"
)

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// storeError maps store and codec errors onto HTTP statuses.
func storeError(c echo.Context, err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, store.ErrNetworkNotFound):
		return errorJSON(c, http.StatusNotFound, "Network not found")
	case errors.Is(err, nodelink.ErrInvalidGraph):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("[Server] Request failed", "path", c.Path(), "err", err)
		return errorJSON(c, http.StatusInternalServerError, "Internal server error")
	}
}
