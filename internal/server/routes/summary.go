package routes

import (
	"net/http"

	"github.com/belgraph/reifier/internal/server/middleware"
	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/selection"
	"github.com/belgraph/reifier/pkg/summary"

	"github.com/labstack/echo/v4"
)

// GetNetworkSummaryHandler reports the causal roles of the nodes of one
// function (proteins when omitted) and the modifier counts of a network.
func GetNetworkSummaryHandler(c echo.Context) error {
	type summaryParams struct {
		ID       string `param:"id" validate:"required"`
		Function string `query:"function"`
	}

	params := new(summaryParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if err := c.Validate(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request params")
	}
	if params.Function == "" {
		params.Function = bel.Protein
	}

	networks := c.(*middleware.AppContext).App.Store
	n, err := networks.Get(params.ID)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, summary.Describe(n.Graph, params.Function))
}

// GetFillEdgesHandler returns the edges linking the given nodes to the
// outside nodes they reach at least twice.
func GetFillEdgesHandler(c echo.Context) error {
	type fillParams struct {
		ID    string   `param:"id" validate:"required"`
		Nodes []string `query:"node" validate:"required,min=1"`
	}

	params := new(fillParams)
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
	return c.JSON(http.StatusOK, selection.SubgraphFillEdges(n.Graph, params.Nodes, nil))
}
