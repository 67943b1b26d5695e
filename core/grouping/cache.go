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

// GroupCache holds the grid's GroupingRows indexed by grouping index.
type GroupCache struct {
	rows []*GroupingRow
}

func NewGroupCache() *GroupCache {
	return &GroupCache{}
}

// Get returns the header with the given grouping index, or nil.
func (c *GroupCache) Get(index int) *GroupingRow {
	if index < 0 || index >= len(c.rows) {
		return nil
	}
	return c.rows[index]
}

func (c *GroupCache) Len() int {
	return len(c.rows)
}

// Clear drops every cached header; the next pass creates fresh ones.
func (c *GroupCache) Clear() {
	c.rows = nil
}

// truncate drops the headers at index n and above.
func (c *GroupCache) truncate(n int) {
	if n < len(c.rows) {
		clear(c.rows[n:])
		c.rows = c.rows[:n]
	}
}

// acquire returns the cached header for entity.groupingIndex, reset for a new
// pass, or creates one. A cached header that was built for a different node is
// replaced.
func (c *GroupCache) acquire(entity groupingEntity, rowIndex int, options grid.Options) *GroupingRow {
	if g := c.Get(entity.groupingIndex); g != nil && g.describes(entity) {
		g.RowIndex = rowIndex
		g.Parent = nil
		g.RowChildren = nil
		g.GroupChildren = nil
		return g
	}
	g := newGroupingRow(entity, rowIndex, options)
	for len(c.rows) <= entity.groupingIndex {
		c.rows = append(c.rows, nil)
	}
	c.rows[entity.groupingIndex] = g
	return g
}
