package routes

import (
	"net/http"

	"github.com/belgraph/reifier/internal/server/middleware"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/nodelink"
	"github.com/belgraph/reifier/pkg/selection"

	"github.com/labstack/echo/v4"
)

func GetNetworksHandler(c echo.Context) error {
	networks := c.(*middleware.AppContext).App.Store
	return c.JSON(http.StatusOK, networks.List())
}

func GetNetworkHandler(c echo.Context) error {
	type getNetworkParams struct {
		ID         string   `param:"id" validate:"required"`
		Annotation string   `query:"annotation"`
		Value      string   `query:"value"`
		Remove     []string `query:"remove"`
	}

	params := new(getNetworkParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if (params.Annotation == "") != (params.Value == "") {
		return errorJSON(c, http.StatusBadRequest, "annotation and value must be given together")
	}

	networks := c.(*middleware.AppContext).App.Store
	n, err := networks.Get(params.ID)
	if err != nil {
		return storeError(c, err)
	}

	g := n.Graph
	if params.Annotation != "" {
		g = selection.SubgraphByAnnotation(g, params.Annotation, params.Value)
	}
	if len(params.Remove) > 0 {
		if g == n.Graph {
			g = g.Copy()
		}
		g.RemoveNodes(params.Remove...)
	}

	return c.JSON(http.StatusOK, nodelink.ToDocument(g))
}

func GetReifiedNetworkHandler(c echo.Context) error {
	type getReifiedParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getReifiedParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}

	networks := c.(*middleware.AppContext).App.Store
	n, err := networks.Get(params.ID)
	if err != nil {
		return storeError(c, err)
	}
	g, report, err := networks.Reified(params.ID)
	if err != nil {
		return storeError(c, err)
	}

	doc := nodelink.FromReified(g, nodelink.Meta{Name: n.Graph.Name, Version: n.Graph.Version})
	doc.Report = nodelink.Summarize(report)
	return c.JSON(http.StatusOK, doc)
}

func DiffNetworksHandler(c echo.Context) error {
	type diffParams struct {
		ID    string `param:"id" validate:"required"`
		Other string `param:"other" validate:"required"`
	}

	params := new(diffParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}

	networks := c.(*middleware.AppContext).App.Store
	left, err := networks.Get(params.ID)
	if err != nil {
		return storeError(c, err)
	}
	right, err := networks.Get(params.Other)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, comparison.Diff(left.Graph, right.Graph))
}

func GetSchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, nodelink.Schema())
}
