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

// Package grid is the host data grid that features such as grouping plug
// into. It owns the columns, the base rows and the renderable row sequence,
// and exposes the row/column/rows-processor extension points.
package grid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDuplicateColumn is returned when a column name is added twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// RowsProcessor transforms the renderable row sequence during a refresh.
// Processors run in registration order; each receives the output of the previous one.
type RowsProcessor func(rows []Renderable) []Renderable

// ColumnBuilder augments a column when it is added to the grid.
type ColumnBuilder func(col *Column, options *Options)

// RowBuilder augments a row when it is added to the grid.
type RowBuilder func(row *Row, options *Options)

// Grid holds all per-grid state. Mutations of the row sequence and of feature
// state are serialized through mu; the column collection has its own lock so
// that feature code running under mu may look columns up.
type Grid struct {
	id      string
	options Options
	logger  *zap.Logger

	mu             sync.Mutex
	rows           []*Row
	renderable     []Renderable
	rowsProcessors []RowsProcessor
	rowBuilders    []RowBuilder
	features       map[string]any

	colMu          sync.RWMutex
	columns        []*Column
	columnsByName  map[string]*Column
	columnBuilders []ColumnBuilder
}

// Option configures a Grid at construction time.
type Option func(*Grid)

// WithOptions sets the grid-level options.
func WithOptions(options Options) Option {
	return func(g *Grid) {
		g.options = options
	}
}

// WithLogger sets the logger used by the grid and its features.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Grid) {
		g.logger = logger
	}
}

// WithID overrides the generated grid id.
func WithID(id string) Option {
	return func(g *Grid) {
		g.id = id
	}
}

// New creates an empty grid.
func New(opts ...Option) *Grid {
	g := &Grid{
		id:            uuid.NewString(),
		options:       DefaultOptions(),
		logger:        zap.NewNop(),
		features:      make(map[string]any),
		columnsByName: make(map[string]*Column),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.options.ApplyDefaults()
	g.logger = g.logger.With(zap.String("grid", g.id))
	return g
}

// ID returns the grid's unique identifier.
func (g *Grid) ID() string {
	return g.id
}

// Options returns a copy of the grid options. Options do not change after New.
func (g *Grid) Options() Options {
	return g.options
}

// Logger returns the grid-scoped logger.
func (g *Grid) Logger() *zap.Logger {
	return g.logger
}

// SetFeature stores per-grid feature state under name.
func (g *Grid) SetFeature(name string, feature any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.features[name] = feature
}

// Feature returns the per-grid feature state registered under name, or nil.
func (g *Grid) Feature(name string) any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.features[name]
}

// AddColumn adds a column to the grid and runs the registered column builders on it.
func (g *Grid) AddColumn(def *columns.ColumnDef) (*Column, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	g.colMu.Lock()
	defer g.colMu.Unlock()
	if _, exists := g.columnsByName[def.Name()]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, def.Name())
	}
	col := &Column{Def: def, grid: g}
	for _, build := range g.columnBuilders {
		build(col, &g.options)
	}
	g.columns = append(g.columns, col)
	g.columnsByName[def.Name()] = col
	return col, nil
}

// Column returns the column with the given name, or nil.
func (g *Grid) Column(name string) *Column {
	g.colMu.RLock()
	defer g.colMu.RUnlock()
	return g.columnsByName[name]
}

// Columns returns the columns in the order they were added.
func (g *Grid) Columns() []*Column {
	g.colMu.RLock()
	defer g.colMu.RUnlock()
	result := make([]*Column, len(g.columns))
	copy(result, g.columns)
	return result
}

// HasColumn reports whether col belongs to this grid's column collection.
func (g *Grid) HasColumn(col *Column) bool {
	if col == nil || col.Def == nil {
		return false
	}
	g.colMu.RLock()
	defer g.colMu.RUnlock()
	return g.columnsByName[col.Name()] == col
}

// RegisterColumnBuilder registers a column builder and applies it to the existing columns.
func (g *Grid) RegisterColumnBuilder(build ColumnBuilder) {
	g.colMu.Lock()
	defer g.colMu.Unlock()
	g.columnBuilders = append(g.columnBuilders, build)
	for _, col := range g.columns {
		build(col, &g.options)
	}
}

// RegisterRowBuilder registers a row builder and applies it to the existing rows.
func (g *Grid) RegisterRowBuilder(build RowBuilder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rowBuilders = append(g.rowBuilders, build)
	for _, row := range g.rows {
		build(row, &g.options)
	}
}

// RegisterRowsProcessor appends a rows processor to the refresh pipeline.
func (g *Grid) RegisterRowsProcessor(process RowsProcessor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rowsProcessors = append(g.rowsProcessors, process)
}

// SetRows replaces the grid's data with one row per entity and refreshes.
func (g *Grid) SetRows(entities []Entity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rows = make([]*Row, len(entities))
	for i, entity := range entities {
		row := &Row{
			Entity:  entity,
			Visible: true,
			Index:   i,
			grid:    g,
		}
		for _, build := range g.rowBuilders {
			build(row, &g.options)
		}
		g.rows[i] = row
	}
	g.refreshLocked()
}

// Rows returns the base data rows in their original order.
func (g *Grid) Rows() []*Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	result := make([]*Row, len(g.rows))
	copy(result, g.rows)
	return result
}

// Refresh reruns the rows processor pipeline over the base rows.
func (g *Grid) Refresh() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshLocked()
}

// Update runs fn while holding the grid's mutation lock and refreshes
// afterwards unless fn fails. Rebuilds and toggles of one grid never interleave.
func (g *Grid) Update(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	g.refreshLocked()
	return nil
}

// Mutate runs fn while holding the grid's mutation lock, without a refresh.
func (g *Grid) Mutate(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}

// WithLock runs fn while holding the grid's mutation lock. Feature state
// shared with toggles and refreshes is read this way.
func (g *Grid) WithLock(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

func (g *Grid) refreshLocked() {
	rows := make([]Renderable, len(g.rows))
	for i, row := range g.rows {
		rows[i] = row
	}
	for _, process := range g.rowsProcessors {
		rows = process(rows)
	}
	g.renderable = rows
	g.logger.Debug("grid refreshed",
		zap.Int("rows", len(g.rows)),
		zap.Int("renderable", len(rows)))
}

// RenderableRows returns the output of the last refresh, including invisible rows.
func (g *Grid) RenderableRows() []Renderable {
	g.mu.Lock()
	defer g.mu.Unlock()
	result := make([]Renderable, len(g.renderable))
	copy(result, g.renderable)
	return result
}

// VisitVisibleRows calls visit for each visible row of the last refresh, in
// order, while holding the grid's mutation lock, and stops when visit returns
// false. visit must not call back into the grid's locking methods.
func (g *Grid) VisitVisibleRows(visit func(row Renderable) bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, row := range g.renderable {
		if row.IsVisible() && !visit(row) {
			return
		}
	}
}

// VisibleRows returns the rows the renderer should draw, in order.
func (g *Grid) VisibleRows() []Renderable {
	g.mu.Lock()
	defer g.mu.Unlock()
	result := make([]Renderable, 0, len(g.renderable))
	for _, row := range g.renderable {
		if row.IsVisible() {
			result = append(result, row)
		}
	}
	return result
}
