package routes

import (
	"io"
	"net/http"

	"github.com/belgraph/reifier/internal/server/middleware"
	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/nodelink"
	"github.com/belgraph/reifier/pkg/reify"

	"github.com/labstack/echo/v4"
)

func readGraph(c echo.Context) (*bel.Graph, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	return nodelink.Unmarshal(body)
}

func CreateNetworkHandler(c echo.Context) error {
	type createNetworkParams struct {
		Name string `query:"name"`
	}

	params := new(createNetworkParams)
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}

	g, err := readGraph(c)
	if err != nil {
		return storeError(c, err)
	}
	if params.Name != "" {
		g.Name = params.Name
	}

	networks := c.(*middleware.AppContext).App.Store
	id, err := networks.Put(g)
	if err != nil {
		return storeError(c, err)
	}

	n, err := networks.Get(id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, n.Summary())
}

func ReloadNetworksHandler(c echo.Context) error {
	networks := c.(*middleware.AppContext).App.Store
	count, err := networks.Reload(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"loaded": count})
}

// ReifyHandler reifies the node-link graph in the request body without
// storing it.
func ReifyHandler(c echo.Context) error {
	g, err := readGraph(c)
	if err != nil {
		return storeError(c, err)
	}

	reified, report := reify.ReifyWithReport(g)
	if len(report.Unmatched) > 0 {
		logger.Info("[Server] Reified upload with unmatched edges", "unmatched", len(report.Unmatched))
	}

	doc := nodelink.FromReified(reified, nodelink.Meta{Name: g.Name, Version: g.Version})
	doc.Report = nodelink.Summarize(report)
	return c.JSON(http.StatusOK, doc)
}
