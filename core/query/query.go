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

package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// DefaultLimit is the number of visible rows shown when no limit is given.
const DefaultLimit = 100

// Query represents the parsed state of a grid view URL
type Query struct {
	// Base path (e.g., "/grid")
	Path string

	// Core parameters
	Table          string   // The table the grid is populated from
	Grid           string   // Id of the server-side grid holding the collapse state
	Columns        []string // Ordered list of visible columns (grouped columns first)
	GroupedColumns []string // Ordered list of columns to group by, outermost first
	Limit          int      // Number of visible rows to display (0 = show all)
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:  u.Path,
		Limit: DefaultLimit,
	}

	q := u.Query()

	state.Table = q.Get("table")
	state.Grid = q.Get("grid")
	state.Columns = splitList(q.Get("columns"))
	state.GroupedColumns = splitList(q.Get("grouped"))

	// Extract limit parameter
	limitStr := q.Get("limit")
	if limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	state.reorderColumns()

	return state
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(result, part) {
			result = append(result, part)
		}
	}
	if result == nil {
		return []string{}
	}
	return result
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	return &Query{
		Path:           s.Path,
		Table:          s.Table,
		Grid:           s.Grid,
		Columns:        slices.Clone(s.Columns),
		GroupedColumns: slices.Clone(s.GroupedColumns),
		Limit:          s.Limit,
	}
}

// reorderColumns reorders the Columns slice so that visible grouped columns
// come first, in grouping order, followed by the other columns.
func (s *Query) reorderColumns() {
	if len(s.Columns) == 0 {
		return
	}

	groupedCols := make(map[string]bool)
	for _, colName := range s.GroupedColumns {
		groupedCols[colName] = true
	}

	visibleCols := make(map[string]bool)
	for _, colName := range s.Columns {
		visibleCols[colName] = true
	}

	var others []string
	for _, colName := range s.Columns {
		if !groupedCols[colName] {
			others = append(others, colName)
		}
	}

	var grouped []string
	for _, colName := range s.GroupedColumns {
		if visibleCols[colName] {
			grouped = append(grouped, colName)
		}
	}

	s.Columns = make([]string, 0, len(grouped)+len(others))
	s.Columns = append(s.Columns, grouped...)
	s.Columns = append(s.Columns, others...)
}

// WithColumnToggled returns a URL with the column toggled (added if not present, removed if present)
func (s *Query) WithColumnToggled(column string) safehtml.URL {
	newState := s.Clone()
	if i := slices.Index(newState.Columns, column); i >= 0 {
		newState.Columns = slices.Delete(newState.Columns, i, i+1)
	} else {
		newState.Columns = append(newState.Columns, column)
	}
	newState.reorderColumns()
	return newState.ToSafeURL()
}

// WithGroupedColumnToggled returns a URL with the grouped column toggled
// If the column is already grouped, it's removed from grouping
// If the column is not grouped, it's added to the end of the grouping order
func (s *Query) WithGroupedColumnToggled(column string) safehtml.URL {
	newState := s.Clone()
	if i := slices.Index(newState.GroupedColumns, column); i >= 0 {
		newState.GroupedColumns = slices.Delete(newState.GroupedColumns, i, i+1)
	} else {
		newState.GroupedColumns = append(newState.GroupedColumns, column)
	}
	newState.reorderColumns()
	return newState.ToSafeURL()
}

// WithGroupedColumns returns the Query with the grouping replaced.
func (s *Query) WithGroupedColumns(columns []string) *Query {
	newState := s.Clone()
	newState.GroupedColumns = slices.Clone(columns)
	newState.reorderColumns()
	return newState
}

// WithGrid returns the Query bound to a server-side grid.
func (s *Query) WithGrid(id string) *Query {
	newState := s.Clone()
	newState.Grid = id
	return newState
}

// WithLimit returns a URL with the limit changed
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}

// WithPath returns a URL for another endpoint carrying the same view state,
// so that the endpoint can redirect back to the view afterwards.
func (s *Query) WithPath(path string) safehtml.URL {
	newState := s.Clone()
	newState.Path = path
	return newState.ToSafeURL()
}

// IsColumnGrouped checks if a column is in the grouped columns list
func (s *Query) IsColumnGrouped(column string) bool {
	return slices.Contains(s.GroupedColumns, column)
}

// IsColumnVisible checks if a column is in the visible columns list
func (s *Query) IsColumnVisible(column string) bool {
	return slices.Contains(s.Columns, column)
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if s.Grid != "" {
		q.Set("grid", s.Grid)
	}
	if len(s.Columns) > 0 {
		q.Set("columns", strings.Join(s.Columns, ","))
	}
	if len(s.GroupedColumns) > 0 {
		q.Set("grouped", strings.Join(s.GroupedColumns, ","))
	}

	// Add limit parameter (always included in URL)
	q.Set("limit", strconv.Itoa(s.Limit))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
