/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server serves grids over HTTP. Each grid view is backed by a
// server-side grid so that collapse state survives between requests; the
// URL carries the table, the grouping and the grid id.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/models"
	"github.com/google/gridgroup/core/rendering"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxGrids bounds the number of live grids; the least recently used one is
// dropped when a new grid would exceed it.
const MaxGrids = 256

// ErrUnknownTable is returned when a grid is requested for a table that is not loaded.
var ErrUnknownTable = errors.New("unknown table")

// Server represents the application server with all its dependencies
type Server struct {
	dataModel *models.DataModel
	renderer  *rendering.GridRenderer
	options   grid.Options
	logger    *zap.Logger

	mu       sync.Mutex
	grids    map[string]*gridSession
	order    []string // grid ids, least recently used first
	maxGrids int
}

// gridSession is a live grid opened on one table.
type gridSession struct {
	table      string
	grid       *grid.Grid
	controller *grouping.Controller
}

// NewServer creates a new server with the given data model
func NewServer(dataModel *models.DataModel, options grid.Options, logger *zap.Logger) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	options.ApplyDefaults()
	if !rendering.HasRowTemplate(options.GroupingRowTemplate) {
		return nil, fmt.Errorf("unknown grouping row template %q", options.GroupingRowTemplate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		dataModel: dataModel,
		renderer:  renderer,
		options:   options,
		logger:    logger,
		grids:     make(map[string]*gridSession),
		maxGrids:  MaxGrids,
	}, nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/", s.handleLanding)
	r.Get("/grid", s.handleGrid)
	r.Get("/grid.txt", s.handleGridText)
	r.Route("/grids/{id}", func(r chi.Router) {
		r.Get("/toggle/{index}", s.handleToggle)
		r.Get("/expand", s.handleSetAllCollapsed(false))
		r.Get("/collapse", s.handleSetAllCollapsed(true))
		r.Get("/columns/{column}/menu/{item}", s.handleMenuItem)
		r.Delete("/", s.handleDeleteGrid)
	})
	return r
}

// Serve starts the HTTP server on addr and blocks until the context is
// cancelled, then shuts down gracefully within shutdownTimeout.
func (s *Server) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.ServeListener(ctx, lis, shutdownTimeout)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener, shutdownTimeout time.Duration) error {
	s.logger.Info("starting server", zap.String("addr", lis.Addr().String()))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// openGrid returns the live grid with the given id when it is still open on
// table, or opens a new grid on table.
func (s *Server) openGrid(id, table string) (*gridSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.grids[id]; ok && session.table == table {
		s.touchLocked(id)
		return session, nil
	}

	dataTable := s.dataModel.GetTable(table)
	if dataTable == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	g := grid.New(grid.WithOptions(s.options), grid.WithLogger(s.logger))
	controller := grouping.Initialize(g)
	if err := dataTable.Populate(g); err != nil {
		return nil, fmt.Errorf("failed to populate grid: %w", err)
	}
	session := &gridSession{table: table, grid: g, controller: controller}

	s.grids[g.ID()] = session
	s.order = append(s.order, g.ID())
	for len(s.order) > s.maxGrids {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.grids, evicted)
		s.logger.Debug("grid evicted", zap.String("grid", evicted))
	}
	s.logger.Debug("grid opened",
		zap.String("grid", g.ID()),
		zap.String("table", table),
		zap.Int("rows", dataTable.Length()))
	return session, nil
}

// lookupGrid returns the live grid with the given id.
func (s *Server) lookupGrid(id string) (*gridSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.grids[id]
	if ok {
		s.touchLocked(id)
	}
	return session, ok
}

func (s *Server) closeGrid(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[id]; !ok {
		return false
	}
	delete(s.grids, id)
	s.removeLocked(id)
	return true
}

// GridCount returns the number of live grids.
func (s *Server) GridCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grids)
}

func (s *Server) touchLocked(id string) {
	s.removeLocked(id)
	s.order = append(s.order, id)
}

func (s *Server) removeLocked(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// logRequests logs every request once it has been served.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
