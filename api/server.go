// Package api serves the validated catalog over HTTP. The catalog is
// immutable, so handlers read it concurrently without locking. A catalog with
// outstanding diagnostics is never served.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	echo_contrib "github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/GeorgeHahn/vector/api/middlewares"
	"github.com/GeorgeHahn/vector/catalog"
	"github.com/GeorgeHahn/vector/components"
)

// TokenHeader is the header carrying API access tokens.
const TokenHeader = "X-Catalog-API-Token"

// ExtraOptions are options which change the behavior of the HTTP server.
type ExtraOptions struct {
	// Tokens are the access tokens which can access the API.
	Tokens []string

	// MetricsEndpoint turns on the /metrics endpoint for prometheus metrics.
	MetricsEndpoint bool
}

// ServerImplementation implements the catalog query handlers.
type ServerImplementation struct {
	catalog *catalog.Catalog
}

// componentSummary is the list representation of one record.
type componentSummary struct {
	ID    string          `json:"id"`
	Kind  components.Kind `json:"kind"`
	Name  string          `json:"name"`
	Title string          `json:"title"`
}

// ListComponents handles GET /v2/components
func (si *ServerImplementation) ListComponents(ctx echo.Context) error {
	records := si.catalog.Components()
	summaries := make([]componentSummary, len(records))
	for i, meta := range records {
		summaries[i] = componentSummary{
			ID:    meta.ID(),
			Kind:  meta.Kind,
			Name:  meta.Name,
			Title: meta.Title,
		}
	}
	return ctx.JSON(http.StatusOK, summaries)
}

// GetComponent handles GET /v2/components/:kind/:name
func (si *ServerImplementation) GetComponent(ctx echo.Context) error {
	kind := components.Kind(ctx.Param("kind"))
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unrecognized component kind")
	}
	meta, ok := si.catalog.Component(kind, ctx.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no such component")
	}
	return ctx.JSON(http.StatusOK, meta)
}

// ResolvePath handles GET /v2/resolve?path=<dotted-path>
func (si *ServerImplementation) ResolvePath(ctx echo.Context) error {
	path := ctx.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}
	value, err := si.catalog.Resolve(path)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"path":  path,
		"value": value,
	})
}

// Health handles GET /health
func (si *ServerImplementation) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"components": si.catalog.Len(),
	})
}

// RegisterHandlers wires the catalog handlers into an echo instance.
func RegisterHandlers(e *echo.Echo, si *ServerImplementation, m ...echo.MiddlewareFunc) {
	e.GET("/health", si.Health)
	e.GET("/v2/components", si.ListComponents, m...)
	e.GET("/v2/components/:kind/:name", si.GetComponent, m...)
	e.GET("/v2/resolve", si.ResolvePath, m...)
}

// MakeServerImplementation exists for tests.
func MakeServerImplementation(cat *catalog.Catalog) *ServerImplementation {
	return &ServerImplementation{catalog: cat}
}

// Serve starts an http server for the catalog API. This call blocks until the
// context is cancelled.
func Serve(ctx context.Context, serveAddr string, cat *catalog.Catalog, logger *log.Logger, options ExtraOptions) {
	e := echo.New()
	e.HideBanner = true

	if options.MetricsEndpoint {
		p := echo_contrib.NewPrometheus("catalog", nil, nil)
		// This call installs the prometheus metrics collection middleware and
		// the "/metrics" handler.
		p.Use(e)
	}

	e.Use(middlewares.MakeLogger(logger))
	e.Use(middleware.CORS())

	auth := make([]echo.MiddlewareFunc, 0)
	if len(options.Tokens) > 0 {
		auth = append(auth, middlewares.MakeAuth(TokenHeader, options.Tokens))
	}

	RegisterHandlers(e, MakeServerImplementation(cat), auth...)

	getctx := func(l net.Listener) context.Context {
		return ctx
	}
	s := &http.Server{
		Addr:           serveAddr,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
		BaseContext:    getctx,
	}

	go func() {
		logger.Fatal(e.StartServer(s))
	}()

	<-ctx.Done()
	// Allow one second for graceful shutdown.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(err)
	}
}
