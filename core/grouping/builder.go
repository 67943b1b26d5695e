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

// Build partitions rows into a grouping tree, one level per grouping column,
// in the order of groupColumns. Each row's Visible flag is primed with
// expandByDefault before it is classified.
//
// With no grouping columns the root is a leaf holding every row; callers are
// expected to skip grouping entirely in that case.
func Build(rows []*grid.Row, groupColumns []*grid.Column, expandByDefault bool) *GroupNode {
	root := newNode(0, groupColumns)
	for _, row := range rows {
		row.Visible = expandByDefault

		node := root
		for depth, column := range groupColumns {
			key := KeyOf(row.Value(column.Name()))
			node = node.Values.GetOrCreate(key, func() *GroupNode {
				return newNode(depth+1, groupColumns)
			})
		}
		node.Rows = append(node.Rows, row)
	}
	return root
}

func newNode(depth int, groupColumns []*grid.Column) *GroupNode {
	if depth == len(groupColumns) {
		return &GroupNode{Depth: depth}
	}
	return &GroupNode{
		Depth:  depth,
		Column: groupColumns[depth],
		Values: NewOrderedMap[string, *GroupNode](),
	}
}
