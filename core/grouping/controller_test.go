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

package grouping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntities() []grid.Entity {
	return []grid.Entity{
		{"dept": "A", "team": "X", "region": "north", "n": 1},
		{"dept": "A", "team": "Y", "region": "south", "n": 2},
		{"dept": "B", "team": "X", "region": "north", "n": 3},
		{"dept": "A", "team": "X", "region": "south", "n": 4},
	}
}

func groupingNamesOf(c *Controller) []string {
	var names []string
	for _, col := range c.Groupings() {
		names = append(names, col.Name())
	}
	return names
}

func TestNoGroupingPassesRowsThrough(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team")
	g.SetRows(sampleEntities())

	rows := g.Rows()
	seq := g.RenderableRows()
	require.Len(t, seq, len(rows))
	for i := range rows {
		assert.Same(t, rows[i], seq[i])
	}
	assert.Empty(t, c.Headers())
}

func TestEmptyRowsProduceNoHeaders(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept")
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	g.SetRows(nil)

	assert.Empty(t, g.RenderableRows())
	assert.Empty(t, c.Headers())
}

func TestSetGroupColumnOrder(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team", "region")
	g.SetRows(sampleEntities())

	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	require.NoError(t, c.SetGroupColumn(g.Column("team"), true))
	require.NoError(t, c.SetGroupColumn(g.Column("region"), true))
	assert.Equal(t, []string{"dept", "team", "region"}, groupingNamesOf(c))

	// enabling again is a no-op
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	assert.Equal(t, []string{"dept", "team", "region"}, groupingNamesOf(c))

	// removing the middle level re-nests region directly under dept
	require.NoError(t, c.SetGroupColumn(g.Column("team"), false))
	assert.Equal(t, []string{"dept", "region"}, groupingNamesOf(c))
	assert.False(t, g.Column("team").IsGroupBy)
	assert.True(t, g.Column("region").IsGroupBy)

	var got []string
	for _, h := range c.Headers() {
		got = append(got, h.Name+"="+h.Label)
	}
	want := []string{"dept=A", "region=north", "region=south", "dept=B", "region=north"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	for _, h := range c.Headers() {
		assert.Equal(t, map[string]int{"dept": 0, "region": 1}[h.Name], h.Depth)
	}
}

func TestSetGroupColumnUnknownColumn(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept")
	other := grid.New()
	foreign, err := other.AddColumn(columns.NewColumnDef("dept", ""))
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetGroupColumn(foreign, true), ErrUnknownColumn)
	assert.ErrorIs(t, c.SetGroupColumn(nil, true), ErrUnknownColumn)
	assert.ErrorIs(t, c.SetGroupColumn(&grid.Column{}, true), ErrUnknownColumn)
	assert.ErrorIs(t, c.SetGroupColumnsByName([]string{"dept", "missing"}), ErrUnknownColumn)
	assert.Empty(t, c.Groupings())
	assert.False(t, g.Column("dept").IsGroupBy)
}

func TestSetGroupColumnsByName(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team", "region")
	g.SetRows(sampleEntities())

	require.NoError(t, c.SetGroupColumnsByName([]string{"team", "dept", "team"}))
	assert.Equal(t, []string{"team", "dept"}, groupingNamesOf(c))
	assert.True(t, g.Column("team").IsGroupBy)

	require.NoError(t, c.ToggleGroup(0))
	require.NoError(t, c.SetGroupColumnsByName([]string{"team", "dept"}))
	assert.True(t, c.Group(0).Collapsed, "an unchanged grouping must not rebuild")

	require.NoError(t, c.SetGroupColumnsByName(nil))
	assert.Empty(t, c.Groupings())
	assert.False(t, g.Column("team").IsGroupBy)
	assert.Len(t, g.RenderableRows(), 4)
}

func TestGroupingDisabled(t *testing.T) {
	options := grid.DefaultOptions()
	options.EnableGrouping = false
	g, c := newTestGrid(t, options, "dept")

	assert.ErrorIs(t, c.SetGroupColumn(g.Column("dept"), true), ErrGroupingDisabled)
	assert.ErrorIs(t, c.SetGroupColumnsByName([]string{"dept"}), ErrGroupingDisabled)
	assert.Empty(t, g.Column("dept").ShownMenuItems())
}

func TestToggleGroupAndVisibleRows(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team")
	g.SetRows(sampleEntities())
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))

	// A(r0,r1,r3) B(r2)
	assert.Len(t, g.VisibleRows(), 6)

	require.NoError(t, c.ToggleGroup(0))
	visible := g.VisibleRows()
	require.Len(t, visible, 3)
	assert.True(t, visible[0].IsGroupingRow())
	assert.True(t, visible[1].IsGroupingRow())
	assert.Same(t, g.Rows()[2], visible[2])
	assert.True(t, c.Group(0).Collapsed)

	assert.ErrorIs(t, c.ToggleGroup(9), ErrUnknownGroup)
	assert.ErrorIs(t, c.ToggleGroup(-1), ErrUnknownGroup)
}

func TestCollapsedStateSurvivesRefresh(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team")
	g.SetRows(sampleEntities())
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	require.NoError(t, c.ToggleGroup(1))
	before := c.Headers()

	g.Refresh()

	after := c.Headers()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
	assert.True(t, after[1].Collapsed)
	assert.False(t, g.Rows()[2].Visible)
}

func TestChangingGroupingsResetsCollapsedState(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept", "team")
	g.SetRows(sampleEntities())
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	require.NoError(t, c.ToggleGroup(0))

	require.NoError(t, c.SetGroupColumn(g.Column("team"), true))
	require.NoError(t, c.SetGroupColumn(g.Column("team"), false))

	assert.False(t, c.Group(0).Collapsed)
	for _, row := range g.Rows() {
		assert.True(t, row.Visible)
	}
}

func TestUngroupingAllShowsEveryRow(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept")
	g.SetRows(sampleEntities())
	require.NoError(t, c.SetGroupColumn(g.Column("dept"), true))
	c.SetAllCollapsed(true)
	assert.Len(t, g.VisibleRows(), 2)

	require.NoError(t, c.SetGroupColumn(g.Column("dept"), false))
	assert.Len(t, g.VisibleRows(), 4)
}

func TestExpandByDefaultFalse(t *testing.T) {
	options := grid.DefaultOptions()
	options.GroupExpandByDefault = false
	g, c := newTestGrid(t, options, "dept", "team")
	g.SetRows(sampleEntities())
	require.NoError(t, c.SetGroupColumnsByName([]string{"dept", "team"}))

	// interior headers expand as children attach, leaf headers start collapsed
	for _, h := range c.Headers() {
		assert.Equal(t, h.Depth == 1, h.Collapsed, "%v", h.Path())
	}
	for _, r := range g.VisibleRows() {
		assert.True(t, r.IsGroupingRow())
	}
	for _, row := range g.Rows() {
		assert.False(t, row.Grouping.Expanded)
	}
}

func TestMenuActions(t *testing.T) {
	g, c := newTestGrid(t, grid.DefaultOptions(), "dept")
	dept := g.Column("dept")
	require.Len(t, dept.MenuItems, 2)

	shown := dept.ShownMenuItems()
	require.Len(t, shown, 1)
	assert.Equal(t, "Group By", shown[0].Title())
	assert.Equal(t, "ui-grid-icon-cancel", shown[0].Icon())

	require.NoError(t, shown[0].Run(dept))
	assert.True(t, c.IsGrouped(dept))

	shown = dept.ShownMenuItems()
	require.Len(t, shown, 1)
	assert.Equal(t, "Ungroup", shown[0].Title())

	require.NoError(t, shown[0].Run(dept))
	assert.False(t, c.IsGrouped(dept))
}

func TestActionWithoutFeature(t *testing.T) {
	g := grid.New()
	col, err := g.AddColumn(columns.NewColumnDef("dept", ""))
	require.NoError(t, err)

	assert.False(t, GroupByAction.Shown(col))
	assert.ErrorIs(t, GroupByAction.Run(col), ErrNotInitialized)
	assert.Equal(t, "ungroup", ActionUngroup.String())
}
