// README: Flow gateway handler (POST runs a flow, GET lists flows).
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/http/middleware"
	"freightcalc/internal/locale"
	"freightcalc/internal/modules/flow"
)

const maxFlowBodyBytes = 1 << 20

type FlowHandler struct {
	flows   *flow.Service
	catalog *locale.Catalog
}

func NewFlowHandler(flows *flow.Service, catalog *locale.Catalog) *FlowHandler {
	return &FlowHandler{flows: flows, catalog: catalog}
}

// Run handles POST /api/genkit/*slug.
func (h *FlowHandler) Run(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFlowBodyBytes+1))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(body) > maxFlowBodyBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "body too large")
		return
	}

	inv, err := flow.NewInvocation(flow.ParseSlug(c.Param("slug")), body)
	if err != nil {
		writeFlowError(c, err, middleware.Translator(c, h.catalog))
		return
	}

	result, err := h.flows.Invoke(c.Request.Context(), inv)
	if err != nil {
		writeFlowError(c, err, middleware.Translator(c, h.catalog))
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// List handles GET /api/genkit/*slug. The slug is ignored.
func (h *FlowHandler) List(c *gin.Context) {
	listing, err := h.flows.List(c.Request.Context())
	if err != nil {
		writeFlowError(c, err, middleware.Translator(c, h.catalog))
		return
	}
	c.Data(http.StatusOK, "application/json", listing)
}
