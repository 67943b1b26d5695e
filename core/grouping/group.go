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

// NullKey is the group key of rows whose value is missing, nil or empty.
// The three cases are not distinguished from each other or from the string "null".
const NullKey = "null"

// GroupNode is a node of the grouping tree built for one grouping pass.
//
// An interior node splits its rows by the value of Column; Values maps each
// distinct key, in the order it was first seen, to the child node. A leaf node
// sits at depth len(groupings) and holds the rows sharing the full key path.
// All nodes at depth d belong to the d-th grouping column.
type GroupNode struct {
	Depth  int
	Column *grid.Column
	Values *OrderedMap[string, *GroupNode]
	Rows   []*grid.Row
}

// IsLeaf reports whether the node holds rows rather than child groups.
func (n *GroupNode) IsLeaf() bool {
	return n.Values == nil
}

// Length returns the number of rows below the node.
func (n *GroupNode) Length() int {
	if n.IsLeaf() {
		return len(n.Rows)
	}
	length := 0
	n.Values.Range(func(_ string, child *GroupNode) bool {
		length += child.Length()
		return true
	})
	return length
}

// Height returns the number of leaves below the node.
func (n *GroupNode) Height() int {
	if n.IsLeaf() {
		return 1
	}
	height := 0
	n.Values.Range(func(_ string, child *GroupNode) bool {
		height += child.Height()
		return true
	})
	return height
}

// KeyOf returns the group key for a field value.
func KeyOf(value any, present bool) string {
	if !present || value == nil {
		return NullKey
	}
	s := fmt.Sprint(value)
	if s == "" {
		return NullKey
	}
	return s
}
