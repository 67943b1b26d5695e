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
	"fmt"

	"github.com/google/gridgroup/core/grid"
)

// ActionKind identifies a grouping column menu action.
type ActionKind int

const (
	ActionGroupBy ActionKind = iota
	ActionUngroup
)

func (k ActionKind) String() string {
	switch k {
	case ActionGroupBy:
		return "groupBy"
	case ActionUngroup:
		return "ungroup"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is a column menu entry added by the grouping feature. It carries no
// column or grid state; visibility and effect are resolved against the column
// it is invoked on.
type Action struct {
	Kind ActionKind
}

var (
	GroupByAction = Action{Kind: ActionGroupBy}
	UngroupAction = Action{Kind: ActionUngroup}
)

var _ grid.MenuItem = Action{}

func (a Action) Title() string {
	switch a.Kind {
	case ActionGroupBy:
		return "Group By"
	case ActionUngroup:
		return "Ungroup"
	}
	return a.Kind.String()
}

func (a Action) Icon() string {
	return "ui-grid-icon-cancel"
}

// Shown reports whether the action applies to col: grouping must be enabled
// on the grid, and "Group By" is offered only for ungrouped columns while
// "Ungroup" is offered only for grouped ones.
func (a Action) Shown(col *grid.Column) bool {
	if col == nil || col.Grid() == nil || !col.Grid().Options().EnableGrouping {
		return false
	}
	c, ok := FromGrid(col.Grid())
	if !ok {
		return false
	}
	grouped := c.IsGrouped(col)
	switch a.Kind {
	case ActionGroupBy:
		return !grouped
	case ActionUngroup:
		return grouped
	}
	return false
}

// Run applies the action to col.
func (a Action) Run(col *grid.Column) error {
	if col == nil {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnName(col))
	}
	c, ok := FromGrid(col.Grid())
	if !ok {
		return ErrNotInitialized
	}
	return c.Execute(a, col)
}

// Execute applies a grouping menu action to col.
func (c *Controller) Execute(a Action, col *grid.Column) error {
	switch a.Kind {
	case ActionGroupBy:
		return c.SetGroupColumn(col, true)
	case ActionUngroup:
		return c.SetGroupColumn(col, false)
	}
	return fmt.Errorf("unknown grouping action %v", a.Kind)
}
