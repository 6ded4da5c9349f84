// README: HTTP route registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/http/handlers"
	"freightcalc/internal/http/middleware"
)

func registerRoutes(r *gin.Engine, deps ServerDeps) {
	flowHandler := handlers.NewFlowHandler(deps.Flows, deps.Catalog)
	genkit := r.Group("/api/genkit", middleware.Auth(deps.Verifier))
	genkit.POST("/*slug", flowHandler.Run)
	genkit.GET("/*slug", flowHandler.List)

	calcHandler := handlers.NewCalculationHandler(deps.Catalog)
	r.POST("/api/calculations/validate", calcHandler.Validate)

	routeHandler := handlers.NewRouteHandler(deps.Dispatcher, deps.Catalog)
	r.POST("/api/routes/copy-text", routeHandler.CopyText)
	r.POST("/api/routes/instructions", routeHandler.CreateInstructions)
	r.GET("/api/instructions", routeHandler.Instructions)
	r.GET("/instructions", routeHandler.Instructions)

	guideHandler := handlers.NewGuideHandler(deps.Catalog)
	r.GET("/api/guide", guideHandler.List)

	quoteHandler := handlers.NewQuoteHandler(deps.Quotes)
	r.GET("/api/quotes", quoteHandler.List)
	r.GET("/api/quotes/:id", quoteHandler.Get)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
