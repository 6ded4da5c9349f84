// README: API gateway; builds the gin engine and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freightcalc/internal/http/middleware"
	"freightcalc/internal/infra"
	"freightcalc/internal/locale"
	"freightcalc/internal/modules/flow"
	"freightcalc/internal/modules/quote"
)

type ServerDeps struct {
	Flows      *flow.Service
	Quotes     *quote.Service
	Dispatcher *quote.Dispatcher
	Catalog    *locale.Catalog
	// Verifier guards the flow gateway; nil leaves it open.
	Verifier infra.TokenVerifier
	Logger   *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = quote.NewDispatcher(deps.Logger)
	}
	if deps.Quotes == nil {
		deps.Quotes = quote.NewService(nil)
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(s.deps.Logger),
		middleware.Logging(s.deps.Logger),
		middleware.Locale(s.deps.Catalog),
	)
	registerRoutes(r, s.deps)
	return r
}
