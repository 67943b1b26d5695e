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

import "fmt"

// Entity is a user record. Fields are addressed by column name.
type Entity map[string]any

// Renderable is an element of the renderable row sequence: a data row or a
// synthetic row added by a rows processor.
type Renderable interface {
	IsGroupingRow() bool
	IsVisible() bool
}

// RowGrouping is the per-row state attached by the grouping row builder.
type RowGrouping struct {
	Expanded      bool
	IsGroupingRow bool
}

// Row wraps an entity with grid-assigned state.
type Row struct {
	Entity   Entity
	Visible  bool
	Index    int
	Grouping RowGrouping

	// back-reference only, the grid owns the row
	grid *Grid
}

// NewRow creates a row that is not attached to any grid.
func NewRow(entity Entity) *Row {
	return &Row{Entity: entity, Visible: true}
}

// Grid returns the grid the row belongs to, or nil for a detached row.
func (r *Row) Grid() *Grid {
	return r.grid
}

// IsGroupingRow reports whether the row is a synthetic group header.
func (r *Row) IsGroupingRow() bool {
	return r.Grouping.IsGroupingRow
}

func (r *Row) IsVisible() bool {
	return r.Visible
}

// Value returns the entity field for column.
func (r *Row) Value(column string) (any, bool) {
	v, ok := r.Entity[column]
	return v, ok
}

// GetString returns the entity field for column formatted for display.
// Missing and nil fields render as an empty string.
func (r *Row) GetString(column string) string {
	v, ok := r.Entity[column]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
