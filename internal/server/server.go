// Package server exposes one explorer session over HTTP. Handlers run on
// many goroutines, so every session call goes through the server's mutex.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/selection"
	"github.com/yildizm/EmbedScope/internal/session"
)

const shutdownTimeout = 5 * time.Second

// Server owns a session and the headless grid it pushes selection into
type Server struct {
	mu      sync.Mutex
	session *session.Session
	grid    *selection.MemoryGrid
	source  string
	engine  *gin.Engine
	log     *logger.Logger
}

// New creates a server over data. source names the data in reports.
func New(data *dataset.Dataset, opts session.Options, source string, log *logger.Logger) (*Server, error) {
	if data == nil {
		return nil, session.ErrNoData
	}
	grid := selection.NewMemoryGrid(pointIDs(data))
	s, err := session.New(data, grid, opts, log.WithComponent("session"))
	if err != nil {
		return nil, err
	}

	srv := &Server{
		session: s,
		grid:    grid,
		source:  source,
		log:     log.WithComponent("server"),
	}
	srv.engine = srv.setupRouter()
	return srv, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// SetData replaces the point collection, as on a file reload
func (s *Server) SetData(data *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		return session.ErrNoData
	}
	s.grid.SetRows(pointIDs(data))
	return s.session.SetData(data)
}

// SetAxes selects the plotted pair by name. An empty name keeps that axis.
func (s *Server) SetAxes(x, y string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dims := s.session.Data().Dimensions
	xi, yi := s.session.Dimensions()
	if x == "" {
		x = dims[xi]
	}
	if y == "" {
		y = dims[yi]
	}
	return s.session.SetDimensionsByName(x, y)
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// setupRouter registers the routes
func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), cors())

	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	{
		api.GET("/dimensions", s.dimensions)
		api.GET("/hotspots", s.hotspots)

		view := api.Group("/view")
		{
			view.GET("", s.view)
			view.PUT("/dimensions", s.setDimensions)
			view.PUT("/threshold", s.setThreshold)
			view.POST("/pointer", s.pointer)
			view.POST("/grid-hover", s.gridHover)
		}
	}

	return r
}

func pointIDs(data *dataset.Dataset) []string {
	ids := make([]string, data.Len())
	for i, p := range data.Points {
		ids[i] = p.ID
	}
	return ids
}
