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
	"fmt"
	"net/url"
	"strings"

	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/query"
	"github.com/google/safehtml"
)

// GridViewModel contains the data from the grid formatted for template consumption
type GridViewModel struct {
	Title      string
	GridID     string
	Columns    []ColumnViewModel // Visible columns, grouped columns first
	Rows       []RowViewModel    // Visible rows in render order
	CurrentURL safehtml.URL      // Current URL for building toggle links

	IsGrouped   bool
	ExpandAll   safehtml.URL
	CollapseAll safehtml.URL

	// Pagination info
	TotalRows     int  // Number of data rows in the grid
	DisplayedRows int  // Number of rows actually displayed, headers included
	HasMoreRows   bool // True if there are more visible rows than displayed
	CurrentLimit  int  // Current row limit
	ShowAllURL    safehtml.URL
}

// ColumnViewModel contains information about a column for UI display
type ColumnViewModel struct {
	Name            string
	DisplayName     string
	IsGrouped       bool
	GroupingLevel   int // 1-based position in the grouping, 0 when not grouped
	MenuItems       []MenuItemViewModel
	ToggleColumnURL safehtml.URL // URL to hide the column
}

// MenuItemViewModel is one entry of a column menu.
type MenuItemViewModel struct {
	Title string
	Icon  string
	URL   safehtml.URL
}

// RowViewModel is either a grouping header or a data row.
type RowViewModel struct {
	IsGroupingRow bool
	Height        int

	// Header fields
	Template   string
	Label      string
	Column     string
	Depth      int
	Indent     []int // One entry per enclosing level, for spacer cells
	Count      int
	Collapsed  bool
	ArrowClass string
	ToggleURL  safehtml.URL

	// Data row fields
	Cells []string
}

// NewGridViewModel builds the view model of a grid as the query displays it.
// The grid's visible rows are read in one locked pass, so the view is
// consistent with a single refresh and toggle state.
func NewGridViewModel(title string, g *grid.Grid, q *query.Query) GridViewModel {
	q = q.WithGrid(g.ID())
	vm := GridViewModel{
		Title:        title,
		GridID:       g.ID(),
		CurrentURL:   q.ToSafeURL(),
		CurrentLimit: q.Limit,
		TotalRows:    len(g.Rows()),
		ShowAllURL:   q.WithLimit(0),
		ExpandAll:    q.WithPath(GridPath(g.ID(), "expand")),
		CollapseAll:  q.WithPath(GridPath(g.ID(), "collapse")),
	}

	var groupings []*grid.Column
	if controller, ok := grouping.FromGrid(g); ok {
		groupings = controller.Groupings()
	}
	vm.IsGrouped = len(groupings) > 0

	visible := visibleColumns(g, q, groupings)
	for _, col := range visible {
		vm.Columns = append(vm.Columns, newColumnViewModel(col, q, groupings))
	}

	// Header state is copied under the grid lock.
	names := make([]string, len(visible))
	for i, col := range visible {
		names[i] = col.Name()
	}
	rowHeight := g.Options().RowHeight
	g.VisitVisibleRows(func(r grid.Renderable) bool {
		if q.Limit > 0 && len(vm.Rows) >= q.Limit {
			vm.HasMoreRows = true
			return false
		}
		switch row := r.(type) {
		case *grouping.GroupingRow:
			vm.Rows = append(vm.Rows, newHeaderViewModel(row, vm.GridID, q))
		case *grid.Row:
			cells := make([]string, len(names))
			for i, name := range names {
				cells[i] = row.GetString(name)
			}
			vm.Rows = append(vm.Rows, RowViewModel{
				Height: rowHeight,
				Cells:  cells,
			})
		}
		return true
	})
	vm.DisplayedRows = len(vm.Rows)
	return vm
}

// visibleColumns resolves the query's column list against the grid. With no
// explicit list every column is shown. Grouped columns always come first, in
// grouping order.
func visibleColumns(g *grid.Grid, q *query.Query, groupings []*grid.Column) []*grid.Column {
	var result []*grid.Column
	seen := make(map[string]bool)
	for _, col := range groupings {
		if len(q.Columns) == 0 || q.IsColumnVisible(col.Name()) {
			result = append(result, col)
			seen[col.Name()] = true
		}
	}
	if len(q.Columns) == 0 {
		for _, col := range g.Columns() {
			if !seen[col.Name()] {
				result = append(result, col)
			}
		}
		return result
	}
	for _, name := range q.Columns {
		if col := g.Column(name); col != nil && !seen[name] {
			result = append(result, col)
			seen[name] = true
		}
	}
	return result
}

func newColumnViewModel(col *grid.Column, q *query.Query, groupings []*grid.Column) ColumnViewModel {
	cvm := ColumnViewModel{
		Name:            col.Name(),
		DisplayName:     col.DisplayName(),
		ToggleColumnURL: q.WithColumnToggled(col.Name()),
	}
	for i, grouped := range groupings {
		if grouped == col {
			cvm.GroupingLevel = i + 1
		}
	}
	cvm.IsGrouped = cvm.GroupingLevel > 0
	// Menu item URLs index into the full item list so that they stay stable
	// while the set of shown items changes.
	for i, item := range col.MenuItems {
		if !item.Shown(col) {
			continue
		}
		cvm.MenuItems = append(cvm.MenuItems, MenuItemViewModel{
			Title: item.Title(),
			Icon:  item.Icon(),
			URL:   q.WithPath(GridPath(col.Grid().ID(), "columns", url.PathEscape(col.Name()), "menu", fmt.Sprint(i))),
		})
	}
	return cvm
}

func newHeaderViewModel(row *grouping.GroupingRow, gridID string, q *query.Query) RowViewModel {
	return RowViewModel{
		IsGroupingRow: true,
		Height:        row.Height,
		Template:      row.RowTemplate,
		Label:         row.Label,
		Column:        row.Name,
		Depth:         row.Depth,
		Indent:        make([]int, row.Depth),
		Count:         row.Length(),
		Collapsed:     row.Collapsed,
		ArrowClass:    row.GroupingClass(),
		ToggleURL:     q.WithPath(GridPath(gridID, "toggle", fmt.Sprint(row.GroupingIndex))),
	}
}

// GridPath builds the path of a grid endpoint, e.g. GridPath(id, "toggle", "3").
func GridPath(id string, elems ...string) string {
	return "/grids/" + strings.Join(append([]string{id}, elems...), "/")
}
