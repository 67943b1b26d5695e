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

package views

import (
	"net/url"
	"sync"
	"testing"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/query"
	"github.com/google/gridgroup/core/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newOrdersGrid(t *testing.T) (*grid.Grid, *grouping.Controller) {
	t.Helper()
	g := grid.New(grid.WithLogger(zaptest.NewLogger(t)), grid.WithID("g1"))
	c := grouping.Initialize(g)
	for _, name := range []string{"region", "status", "amount"} {
		_, err := g.AddColumn(columns.NewColumnDef(name, ""))
		require.NoError(t, err)
	}
	g.SetRows([]grid.Entity{
		{"region": "EU", "status": "open", "amount": 1},
		{"region": "EU", "status": "closed", "amount": 2},
		{"region": "US", "status": "open", "amount": 3},
	})
	return g, c
}

func parseQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return query.NewQuery(u)
}

func TestUngroupedViewModel(t *testing.T) {
	g, _ := newOrdersGrid(t)
	vm := NewGridViewModel("orders", g, parseQuery(t, "/grid?table=orders"))

	assert.False(t, vm.IsGrouped)
	assert.Equal(t, "g1", vm.GridID)
	assert.Equal(t, 3, vm.TotalRows)
	assert.Equal(t, 3, vm.DisplayedRows)
	require.Len(t, vm.Columns, 3)
	assert.Equal(t, []string{"EU", "closed", "2"}, vm.Rows[1].Cells)

	status := vm.Columns[1]
	require.Len(t, status.MenuItems, 1)
	assert.Equal(t, "Group By", status.MenuItems[0].Title)
	menuURL, err := url.Parse(status.MenuItems[0].URL.String())
	require.NoError(t, err)
	assert.Equal(t, "/grids/g1/columns/status/menu/0", menuURL.Path)
	assert.Equal(t, "orders", menuURL.Query().Get("table"))
}

func TestGroupedViewModel(t *testing.T) {
	g, c := newOrdersGrid(t)
	require.NoError(t, c.SetGroupColumnsByName([]string{"status"}))

	vm := NewGridViewModel("orders", g, parseQuery(t, "/grid?table=orders&grouped=status"))
	require.True(t, vm.IsGrouped)

	names := make([]string, len(vm.Columns))
	for i, col := range vm.Columns {
		names[i] = col.Name
	}
	assert.Equal(t, []string{"status", "region", "amount"}, names)
	assert.Equal(t, 1, vm.Columns[0].GroupingLevel)
	require.Len(t, vm.Columns[0].MenuItems, 1)
	assert.Equal(t, "Ungroup", vm.Columns[0].MenuItems[0].Title)

	require.Len(t, vm.Rows, 5)
	header := vm.Rows[0]
	assert.True(t, header.IsGroupingRow)
	assert.Equal(t, "open", header.Label)
	assert.Equal(t, "status", header.Column)
	assert.Equal(t, 2, header.Count)
	assert.Equal(t, "uiGroupingArrowExpanded", header.ArrowClass)
	assert.Equal(t, grid.DefaultGroupingRowTemplate, header.Template)
	toggleURL, err := url.Parse(header.ToggleURL.String())
	require.NoError(t, err)
	assert.Equal(t, "/grids/g1/toggle/0", toggleURL.Path)
	assert.Equal(t, []string{"open", "EU", "1"}, vm.Rows[1].Cells)

	require.NoError(t, c.ToggleGroup(0))
	vm = NewGridViewModel("orders", g, parseQuery(t, "/grid?table=orders&grouped=status"))
	require.Len(t, vm.Rows, 3)
	assert.Equal(t, "uiGroupingArrowCollapsed", vm.Rows[0].ArrowClass)
	assert.Equal(t, "closed", vm.Rows[1].Label)
}

func TestNestedHeadersAreIndented(t *testing.T) {
	g, c := newOrdersGrid(t)
	require.NoError(t, c.SetGroupColumnsByName([]string{"region", "status"}))

	vm := NewGridViewModel("orders", g, parseQuery(t, "/grid?limit=0"))
	require.Len(t, vm.Rows, 8)
	assert.Empty(t, vm.Rows[0].Indent)
	assert.Len(t, vm.Rows[1].Indent, 1)
	assert.Equal(t, 2, vm.Columns[1].GroupingLevel)
}

func TestViewModelLimitAndColumns(t *testing.T) {
	g, _ := newOrdersGrid(t)

	vm := NewGridViewModel("orders", g, parseQuery(t, "/grid?limit=2&columns=amount,region"))
	assert.True(t, vm.HasMoreRows)
	assert.Equal(t, 2, vm.DisplayedRows)
	require.Len(t, vm.Columns, 2)
	assert.Equal(t, "amount", vm.Columns[0].Name)
	assert.Equal(t, []string{"1", "EU"}, vm.Rows[0].Cells)
}

func TestViewModelWhileToggling(t *testing.T) {
	g, c := newOrdersGrid(t)
	require.NoError(t, c.SetGroupColumnsByName([]string{"region"}))
	q := parseQuery(t, "/grid?table=orders&grouped=region")
	counts := map[string]int{"EU": 2, "US": 1}

	const iterations = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			assert.NoError(t, c.ToggleGroup(0))
			g.Refresh()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			vm := NewGridViewModel("orders", g, q)
			// EU collapsed: EU, US, one US row. Expanded: all five.
			if !assert.Contains(t, []int{3, 5}, len(vm.Rows)) {
				return
			}
			for _, row := range vm.Rows {
				if row.IsGroupingRow {
					assert.Equal(t, counts[row.Label], row.Count, row.Label)
				}
			}
		}
	}()
	wg.Wait()

	assert.False(t, c.Group(0).Collapsed)
	assert.Len(t, NewGridViewModel("orders", g, q).Rows, 5)
}

func TestGridPath(t *testing.T) {
	assert.Equal(t, "/grids/abc", GridPath("abc"))
	assert.Equal(t, "/grids/abc/toggle/4", GridPath("abc", "toggle", "4"))
}

func TestLandingViewModel(t *testing.T) {
	orders := tables.NewDataTable()
	orders.AddColumn(columns.NewColumnDef("region", ""))
	require.NoError(t, orders.AppendRow(grid.Entity{"region": "EU"}))

	vm := NewLandingViewModel("tables", map[string]*tables.DataTable{
		"orders":   orders,
		"accounts": tables.NewDataTable(),
	})
	require.Len(t, vm.Tables, 2)
	assert.Equal(t, "accounts", vm.Tables[0].Name)
	assert.Equal(t, 1, vm.Tables[1].Rows)
	assert.Equal(t, 1, vm.Tables[1].Columns)
	assert.Equal(t, "/grid?limit=100&table=orders", vm.Tables[1].URL.String())
}
