package server

import (
	"net/http"

	"github.com/belgraph/reifier/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	apiRoutes := e.Group("/api")

	// Network routes
	apiRoutes.GET("/networks", routes.GetNetworksHandler)
	apiRoutes.POST("/networks", routes.CreateNetworkHandler)
	apiRoutes.GET("/networks/:id", routes.GetNetworkHandler)
	apiRoutes.DELETE("/networks/:id", routes.DeleteNetworkHandler)
	apiRoutes.GET("/networks/:id/reified", routes.GetReifiedNetworkHandler)
	apiRoutes.GET("/networks/:id/diff/:other", routes.DiffNetworksHandler)
	apiRoutes.GET("/networks/:id/summary", routes.GetNetworkSummaryHandler)
	apiRoutes.GET("/networks/:id/fill", routes.GetFillEdgesHandler)
	apiRoutes.POST("/reload", routes.ReloadNetworksHandler)

	// Stateless routes
	apiRoutes.POST("/reify", routes.ReifyHandler)
	apiRoutes.GET("/schema", routes.GetSchemaHandler)
}
