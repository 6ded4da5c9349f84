// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/locale"
	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/modules/flow"
	"freightcalc/internal/modules/quote"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeValidationError(c *gin.Context, status int, verr *calculation.ValidationError, t locale.Translator) {
	writeJSON(c, status, validationResponse{Error: "validation failed", Errors: localizeFieldErrors(verr, t)})
}

// localizeFieldErrors maps each field path to its translated message.
func localizeFieldErrors(verr *calculation.ValidationError, t locale.Translator) map[string]string {
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		key := "validation." + f.Code
		msg := t.T(key, map[string]any{"Min": f.Min, "Field": f.Field})
		if msg == key {
			msg = f.Message
		}
		out[f.Field] = msg
	}
	return out
}

// writeFlowError maps runner failures to gateway statuses. Remote errors keep
// the remote status and body.
func writeFlowError(c *gin.Context, err error, t locale.Translator) {
	var remote *flow.RemoteError
	var verr *calculation.ValidationError
	switch {
	case errors.As(err, &remote):
		c.Data(remote.Status, "application/json", remote.Body)
	case errors.As(err, &verr):
		writeValidationError(c, http.StatusBadRequest, verr, t)
	case errors.Is(err, flow.ErrFlowNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, flow.ErrInvalidInput), errors.Is(err, flow.ErrEmptySlug):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "flow timed out")
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
		c.Status(499)
	default:
		writeError(c, http.StatusBadGateway, err.Error())
	}
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quote.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, quote.ErrHistoryDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, quote.ErrInvalidParams):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
