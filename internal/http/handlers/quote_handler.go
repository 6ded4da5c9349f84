// README: Dashboard endpoints over the quote history.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/modules/quote"
)

type QuoteHandler struct {
	quotes *quote.Service
}

func NewQuoteHandler(quotes *quote.Service) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// List handles GET /api/quotes?limit=N.
func (h *QuoteHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	quotes, err := h.quotes.Recent(c.Request.Context(), limit)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	writeJSON(c, http.StatusOK, gin.H{"quotes": quotes})
}

// Get handles GET /api/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	q, err := h.quotes.Get(c.Request.Context(), id)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// isValidID accepts uuid-shaped ids (hex and dashes, at most 36 chars).
func isValidID(v string) bool {
	if v == "" || len(v) > 36 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '-' {
			continue
		}
		return false
	}
	return true
}
