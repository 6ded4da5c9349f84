// README: Calculation form validation endpoint.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/http/middleware"
	"freightcalc/internal/locale"
	"freightcalc/internal/modules/calculation"
)

type CalculationHandler struct {
	catalog *locale.Catalog
}

func NewCalculationHandler(catalog *locale.Catalog) *CalculationHandler {
	return &CalculationHandler{catalog: catalog}
}

// Validate handles POST /api/calculations/validate.
func (h *CalculationHandler) Validate(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFlowBodyBytes))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}

	req, err := calculation.ValidateJSON(body)
	var verr *calculation.ValidationError
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, gin.H{"request": req})
	case errors.As(err, &verr):
		writeValidationError(c, http.StatusUnprocessableEntity, verr, middleware.Translator(c, h.catalog))
	case errors.Is(err, calculation.ErrMalformedInput):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
