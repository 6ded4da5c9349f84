// README: Best-price route actions (copy text, open instructions) over HTTP.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/http/middleware"
	"freightcalc/internal/locale"
	"freightcalc/internal/modules/quote"
)

type RouteHandler struct {
	dispatcher *quote.Dispatcher
	catalog    *locale.Catalog
}

func NewRouteHandler(dispatcher *quote.Dispatcher, catalog *locale.Catalog) *RouteHandler {
	return &RouteHandler{dispatcher: dispatcher, catalog: catalog}
}

// responseClipboard keeps the copied text so it can be returned to the client.
type responseClipboard struct {
	text string
}

func (r *responseClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.text = text
	return nil
}

// redirectNavigator records the target instead of navigating.
type redirectNavigator struct {
	location string
}

func (r *redirectNavigator) Navigate(path string, params url.Values) error {
	if path == "" {
		return errors.New("empty navigation path")
	}
	r.location = path + "?" + params.Encode()
	return nil
}

type copyTextResponse struct {
	Text          string               `json:"text"`
	Notifications []quote.Notification `json:"notifications"`
}

// CopyText handles POST /api/routes/copy-text?index=N.
func (h *RouteHandler) CopyText(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil || index < 0 {
		writeError(c, http.StatusBadRequest, "invalid index")
		return
	}
	var route quote.BestPriceRoute
	if err := c.ShouldBindJSON(&route); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t := middleware.Translator(c, h.catalog)
	cb := &responseClipboard{}
	notes := &quote.NotificationLog{}
	text := h.dispatcher.CopyRoute(c.Request.Context(), route, index, cb, notes, t)
	writeJSON(c, http.StatusOK, copyTextResponse{Text: text, Notifications: notes.Items()})
}

type instructionsRedirect struct {
	Location      string               `json:"location,omitempty"`
	Notifications []quote.Notification `json:"notifications"`
}

// CreateInstructions handles POST /api/routes/instructions.
func (h *RouteHandler) CreateInstructions(c *gin.Context) {
	var route quote.BestPriceRoute
	if err := c.ShouldBindJSON(&route); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t := middleware.Translator(c, h.catalog)
	nav := &redirectNavigator{}
	notes := &quote.NotificationLog{}
	h.dispatcher.CreateInstructions(route, nav, notes, t)
	if nav.location == "" {
		writeJSON(c, http.StatusInternalServerError, instructionsRedirect{Notifications: notes.Items()})
		return
	}
	c.Header("Location", nav.location)
	writeJSON(c, http.StatusSeeOther, instructionsRedirect{Location: nav.location, Notifications: notes.Items()})
}

type instructionsResponse struct {
	Locale   string               `json:"locale"`
	Route    quote.BestPriceRoute `json:"route"`
	Steps    []string             `json:"steps"`
	CopyText string               `json:"copyText"`
}

// Instructions handles GET /api/instructions, the target of CreateInstructions.
func (h *RouteHandler) Instructions(c *gin.Context) {
	route, err := quote.ParseInstructionsParams(c.Request.URL.Query())
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	t := middleware.Translator(c, h.catalog)
	writeJSON(c, http.StatusOK, instructionsResponse{
		Locale:   t.Language().String(),
		Route:    route,
		Steps:    quote.BuildInstructions(route, t),
		CopyText: quote.FormatCopyText(route, 0, t),
	})
}
