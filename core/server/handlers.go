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

package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/query"
	"github.com/google/gridgroup/core/rendering"
	"github.com/google/gridgroup/core/views"
	"go.uber.org/zap"
)

// ViewPath is the path of the grid view.
const ViewPath = "/grid"

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	vm := views.NewLandingViewModel("Tables", s.dataModel.GetAllTables())
	var buf bytes.Buffer
	if err := s.renderer.RenderLanding(&buf, vm); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	session, ok := s.prepareGrid(w, r, q)
	if !ok {
		return
	}

	vm := views.NewGridViewModel(q.Table, session.grid, q)
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, vm); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

func (s *Server) handleGridText(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)
	session, ok := s.prepareGrid(w, r, q)
	if !ok {
		return
	}

	vm := views.NewGridViewModel(q.Table, session.grid, q)
	var buf bytes.Buffer
	if err := rendering.RenderText(&buf, vm, r.URL.Query().Get("format")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// prepareGrid resolves the grid a view query refers to and applies the
// query's grouping to it. It writes the error response itself when it fails.
func (s *Server) prepareGrid(w http.ResponseWriter, r *http.Request, q *query.Query) (*gridSession, bool) {
	if q.Table == "" {
		http.Error(w, "missing table parameter", http.StatusBadRequest)
		return nil, false
	}
	session, err := s.openGrid(q.Grid, q.Table)
	if errors.Is(err, ErrUnknownTable) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	if err := session.controller.SetGroupColumnsByName(q.GroupedColumns); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return nil, false
	}
	return session, true
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	session, ok := s.gridFromRequest(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid group index %q", chi.URLParam(r, "index")), http.StatusBadRequest)
		return
	}
	if err := session.controller.ToggleGroup(index); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	redirectToView(w, r, query.NewQuery(r.URL))
}

func (s *Server) handleSetAllCollapsed(collapsed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.gridFromRequest(w, r)
		if !ok {
			return
		}
		session.controller.SetAllCollapsed(collapsed)
		redirectToView(w, r, query.NewQuery(r.URL))
	}
}

// handleMenuItem runs a column menu item. The redirect carries the grouping
// the item left behind, so that the view does not undo it.
func (s *Server) handleMenuItem(w http.ResponseWriter, r *http.Request) {
	session, ok := s.gridFromRequest(w, r)
	if !ok {
		return
	}
	name, err := url.PathUnescape(chi.URLParam(r, "column"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	col := session.grid.Column(name)
	if col == nil {
		http.Error(w, fmt.Sprintf("%v: %s", grouping.ErrUnknownColumn, name), http.StatusNotFound)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "item"))
	if err != nil || index < 0 || index >= len(col.MenuItems) {
		http.Error(w, fmt.Sprintf("invalid menu item %q", chi.URLParam(r, "item")), http.StatusBadRequest)
		return
	}
	item := col.MenuItems[index]
	if !item.Shown(col) {
		http.Error(w, fmt.Sprintf("%q does not apply to column %s", item.Title(), name), http.StatusConflict)
		return
	}
	if err := item.Run(col); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	s.logger.Debug("menu item run",
		zap.String("grid", session.grid.ID()),
		zap.String("column", name),
		zap.String("item", item.Title()))

	var groupings []string
	for _, grouped := range session.controller.Groupings() {
		groupings = append(groupings, grouped.Name())
	}
	redirectToView(w, r, query.NewQuery(r.URL).WithGroupedColumns(groupings))
}

func (s *Server) handleDeleteGrid(w http.ResponseWriter, r *http.Request) {
	if !s.closeGrid(chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) gridFromRequest(w http.ResponseWriter, r *http.Request) (*gridSession, bool) {
	id := chi.URLParam(r, "id")
	session, ok := s.lookupGrid(id)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown grid %q", id), http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// redirectToView sends the client back to the grid view described by q.
func redirectToView(w http.ResponseWriter, r *http.Request, q *query.Query) {
	q.Path = ViewPath
	http.Redirect(w, r, q.ToURL(), http.StatusSeeOther)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, grouping.ErrUnknownColumn), errors.Is(err, grouping.ErrUnknownGroup):
		return http.StatusNotFound
	case errors.Is(err, grouping.ErrGroupingDisabled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
