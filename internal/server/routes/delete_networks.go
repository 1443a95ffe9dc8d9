package routes

import (
	"net/http"

	"github.com/belgraph/reifier/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func DeleteNetworkHandler(c echo.Context) error {
	type deleteNetworkParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteNetworkParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}

	networks := c.(*middleware.AppContext).App.Store
	if err := networks.Delete(params.ID); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
