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

// Package grouping implements hierarchical row grouping for the grid: the
// grouping tree, its flattening into group headers, header caching across
// rebuilds, collapse/expand visibility and the selection of grouping columns.
package grouping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/gridgroup/core/grid"
	"go.uber.org/zap"
)

// FeatureName is the key the controller is registered under on the grid.
const FeatureName = "grouping"

var (
	// ErrUnknownColumn is returned for a column that is not part of the grid.
	ErrUnknownColumn = errors.New("column is not part of the grid")
	// ErrUnknownGroup is returned for a grouping index with no current header.
	ErrUnknownGroup = errors.New("no group header with this index")
	// ErrGroupingDisabled is returned when grouping is requested on a grid
	// with EnableGrouping off.
	ErrGroupingDisabled = errors.New("grouping is disabled for this grid")
	// ErrNotInitialized is returned when a grouping action runs on a grid
	// without the grouping feature.
	ErrNotInitialized = errors.New("grouping is not initialized for this grid")
)

// Controller holds the grouping state of one grid. All state is read and
// written under the grid's mutation lock.
type Controller struct {
	grid   *grid.Grid
	logger *zap.Logger

	// groupings is the ordered list of grouping columns; the first is outermost
	groupings []*grid.Column
	cache     *GroupCache
	headers   []*GroupingRow
}

// Initialize installs the grouping feature on g: it registers the column
// builder that adds the grouping menu actions, the row builder, and the rows
// processor that groups rows on every refresh.
func Initialize(g *grid.Grid) *Controller {
	c := &Controller{
		grid:   g,
		logger: g.Logger().Named(FeatureName),
		cache:  NewGroupCache(),
	}
	g.SetFeature(FeatureName, c)
	g.RegisterColumnBuilder(c.buildColumn)
	g.RegisterRowBuilder(c.buildRow)
	g.RegisterRowsProcessor(c.processRows)
	return c
}

// FromGrid returns the controller installed on g.
func FromGrid(g *grid.Grid) (*Controller, bool) {
	if g == nil {
		return nil, false
	}
	c, ok := g.Feature(FeatureName).(*Controller)
	return c, ok
}

func (c *Controller) buildColumn(col *grid.Column, options *grid.Options) {
	col.IsGroupBy = col.IsGroupBy && options.EnableGrouping
	col.MenuItems = append(col.MenuItems, GroupByAction, UngroupAction)
}

func (c *Controller) buildRow(row *grid.Row, options *grid.Options) {
	row.Grouping.Expanded = options.GroupExpandByDefault
	row.Grouping.IsGroupingRow = false
}

// SetGroupColumn enables or disables grouping on col. An enabled column
// becomes the innermost grouping level; a disabled one is removed and the
// remaining levels keep their order. The grid is refreshed afterwards.
func (c *Controller) SetGroupColumn(col *grid.Column, enable bool) error {
	return c.grid.Update(func() error {
		if !c.grid.HasColumn(col) {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, columnName(col))
		}
		index := slices.Index(c.groupings, col)
		switch {
		case enable && index == -1:
			if !c.grid.Options().EnableGrouping {
				return ErrGroupingDisabled
			}
			c.groupings = append(c.groupings, col)
			c.cache.Clear()
		case !enable && index >= 0:
			c.groupings = slices.Delete(c.groupings, index, index+1)
			c.cache.Clear()
		}
		col.IsGroupBy = enable
		c.logger.Debug("grouping column set",
			zap.String("column", col.Name()),
			zap.Bool("enable", enable),
			zap.Strings("groupings", c.groupingNames()))
		return nil
	})
}

// SetGroupColumnsByName replaces the grouping columns with the named columns,
// in order. Unknown names fail without any change. The grid is refreshed only
// when the grouping changes, so collapse state of an unchanged grouping is
// left alone.
func (c *Controller) SetGroupColumnsByName(names []string) error {
	changed := false
	err := c.grid.Mutate(func() error {
		groupings := make([]*grid.Column, 0, len(names))
		for _, name := range names {
			col := c.grid.Column(name)
			if col == nil {
				return fmt.Errorf("%w: %s", ErrUnknownColumn, name)
			}
			if slices.Contains(groupings, col) {
				continue
			}
			groupings = append(groupings, col)
		}
		if len(groupings) > 0 && !c.grid.Options().EnableGrouping {
			return ErrGroupingDisabled
		}
		if slices.Equal(groupings, c.groupings) {
			return nil
		}
		for _, col := range c.groupings {
			col.IsGroupBy = false
		}
		for _, col := range groupings {
			col.IsGroupBy = true
		}
		c.groupings = groupings
		c.cache.Clear()
		changed = true
		c.logger.Debug("grouping columns replaced", zap.Strings("groupings", c.groupingNames()))
		return nil
	})
	if err != nil || !changed {
		return err
	}
	c.grid.Refresh()
	return nil
}

// Groupings returns the grouping columns, outermost first.
func (c *Controller) Groupings() []*grid.Column {
	var result []*grid.Column
	c.grid.WithLock(func() {
		result = slices.Clone(c.groupings)
	})
	return result
}

// IsGrouped reports whether col is currently a grouping column.
func (c *Controller) IsGrouped(col *grid.Column) bool {
	grouped := false
	c.grid.WithLock(func() {
		grouped = slices.Contains(c.groupings, col)
	})
	return grouped
}

// Headers returns the group headers of the last refresh, in render order.
func (c *Controller) Headers() []*GroupingRow {
	var result []*GroupingRow
	c.grid.WithLock(func() {
		result = slices.Clone(c.headers)
	})
	return result
}

// Group returns the current header with the given grouping index, or nil.
func (c *Controller) Group(index int) *GroupingRow {
	var header *GroupingRow
	c.grid.WithLock(func() {
		header = c.cache.Get(index)
	})
	return header
}

// ToggleGroup collapses or expands the header with the given grouping index
// and updates the visibility of its subtree only.
func (c *Controller) ToggleGroup(index int) error {
	return c.grid.Mutate(func() error {
		header := c.cache.Get(index)
		if header == nil {
			return fmt.Errorf("%w: %d", ErrUnknownGroup, index)
		}
		header.Toggle()
		c.logger.Debug("group toggled",
			zap.Int("groupingIndex", index),
			zap.String("label", header.Label),
			zap.Bool("collapsed", header.Collapsed))
		return nil
	})
}

// SetAllCollapsed collapses or expands every current header.
func (c *Controller) SetAllCollapsed(collapsed bool) {
	c.grid.WithLock(func() {
		for _, header := range c.headers {
			header.Collapsed = collapsed
		}
		ApplyVisibility(c.headers)
	})
}

// processRows is the grouping stage of the grid's rows pipeline.
func (c *Controller) processRows(renderable []grid.Renderable) []grid.Renderable {
	if len(renderable) == 0 || len(c.groupings) == 0 {
		c.headers = nil
		for _, r := range renderable {
			if row, ok := r.(*grid.Row); ok {
				row.Visible = true
			}
		}
		return renderable
	}

	rows := make([]*grid.Row, 0, len(renderable))
	for _, r := range renderable {
		if row, ok := r.(*grid.Row); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) != len(renderable) {
		c.logger.Warn("non-data rows dropped before grouping",
			zap.Int("dropped", len(renderable)-len(rows)))
	}

	options := c.grid.Options()
	root := Build(rows, c.groupings, options.GroupExpandByDefault)
	c.headers = Flatten(root, c.cache, options)
	ApplyVisibility(c.headers)

	c.logger.Debug("rows grouped",
		zap.Strings("groupings", c.groupingNames()),
		zap.Int("rows", len(rows)),
		zap.Int("headers", len(c.headers)))
	return Interleave(c.headers)
}

func (c *Controller) groupingNames() []string {
	names := make([]string, len(c.groupings))
	for i, col := range c.groupings {
		names[i] = col.Name()
	}
	return names
}

func columnName(col *grid.Column) string {
	if col == nil || col.Def == nil {
		return "<nil>"
	}
	return col.Name()
}
