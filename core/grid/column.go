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

package grid

import "github.com/google/gridgroup/core/columns"

// MenuItem is a column menu entry. Items are evaluated against the column's
// current state each time the menu is shown, so they must not cache it.
type MenuItem interface {
	Title() string
	Icon() string
	Shown(col *Column) bool
	Run(col *Column) error
}

// Column is a grid column. The grid owns its columns; features keep
// non-owning references.
type Column struct {
	Def       *columns.ColumnDef
	IsGroupBy bool
	MenuItems []MenuItem

	grid *Grid
}

func (c *Column) Name() string {
	return c.Def.Name()
}

func (c *Column) DisplayName() string {
	return c.Def.DisplayName()
}

// Grid returns the grid the column belongs to.
func (c *Column) Grid() *Grid {
	return c.grid
}

// ShownMenuItems returns the menu items to display for the column right now.
func (c *Column) ShownMenuItems() []MenuItem {
	var shown []MenuItem
	for _, item := range c.MenuItems {
		if item.Shown(c) {
			shown = append(shown, item)
		}
	}
	return shown
}
