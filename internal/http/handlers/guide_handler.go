// README: Guide chapters endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/http/middleware"
	"freightcalc/internal/locale"
	"freightcalc/internal/modules/guide"
)

type GuideHandler struct {
	catalog *locale.Catalog
}

func NewGuideHandler(catalog *locale.Catalog) *GuideHandler {
	return &GuideHandler{catalog: catalog}
}

// List handles GET /api/guide.
func (h *GuideHandler) List(c *gin.Context) {
	t := middleware.Translator(c, h.catalog)
	writeJSON(c, http.StatusOK, gin.H{
		"locale":   t.Language().String(),
		"chapters": guide.Localize(t),
	})
}
