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

import "github.com/google/gridgroup/core/grid"

// GroupingRow is the synthetic header row for one distinct value at one depth.
// Instances are cached by GroupingIndex and reused across rebuilds, which is
// what carries Collapsed from one pass to the next.
type GroupingRow struct {
	Label         string
	Name          string
	Depth         int
	GroupingIndex int
	RowIndex      int

	// Parent is the enclosing header at Depth-1, nil at depth 0. Lookup only.
	Parent        *GroupingRow
	RowChildren   []*grid.Row
	GroupChildren []*GroupingRow

	Collapsed bool
	Visible   bool

	Height      int
	RowTemplate string
	Grouping    grid.RowGrouping
}

type groupingEntity struct {
	label         string
	name          string
	depth         int
	groupingIndex int
}

func newGroupingRow(entity groupingEntity, rowIndex int, options grid.Options) *GroupingRow {
	return &GroupingRow{
		Label:         entity.label,
		Name:          entity.name,
		Depth:         entity.depth,
		GroupingIndex: entity.groupingIndex,
		RowIndex:      rowIndex,
		Collapsed:     !options.GroupExpandByDefault,
		Visible:       true,
		Height:        options.RowHeight,
		RowTemplate:   options.GroupingRowTemplate,
		Grouping:      grid.RowGrouping{IsGroupingRow: true},
	}
}

// describes reports whether the row was built for the same group node.
func (g *GroupingRow) describes(entity groupingEntity) bool {
	return g.Depth == entity.depth && g.Name == entity.name && g.Label == entity.label
}

// ToggleExpand flips the collapsed state without touching descendants.
func (g *GroupingRow) ToggleExpand() {
	g.Collapsed = !g.Collapsed
}

// Toggle flips the collapsed state and updates the visibility of the subtree.
func (g *GroupingRow) Toggle() {
	g.ToggleExpand()
	g.PropagateVisibility()
}

// IsGroupingRow reports true for headers.
func (g *GroupingRow) IsGroupingRow() bool {
	return g.Grouping.IsGroupingRow
}

// IsVisible reports whether every enclosing header is expanded.
func (g *GroupingRow) IsVisible() bool {
	return g.Visible
}

// GroupingClass returns the CSS class of the expand/collapse arrow.
func (g *GroupingRow) GroupingClass() string {
	if g.Collapsed {
		return "uiGroupingArrowCollapsed"
	}
	return "uiGroupingArrowExpanded"
}

// Path returns the labels from the outermost header down to this one.
func (g *GroupingRow) Path() []string {
	path := make([]string, g.Depth+1)
	for p := g; p != nil; p = p.Parent {
		path[p.Depth] = p.Label
	}
	return path
}

// Length returns the number of data rows below the header.
func (g *GroupingRow) Length() int {
	length := len(g.RowChildren)
	for _, child := range g.GroupChildren {
		length += child.Length()
	}
	return length
}
