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

// flattener walks a grouping tree depth first and assigns grouping indices in
// traversal order.
type flattener struct {
	cache   *GroupCache
	options grid.Options

	// next grouping index to assign
	next int
	// ancestors[d] is the most recent header created at depth d
	ancestors []*GroupingRow
	headers   []*GroupingRow
}

// Flatten turns the grouping tree into the ordered sequence of group headers,
// reusing headers from cache by grouping index. Values are visited in the order
// they were first seen. Data rows are not part of the result; each leaf
// header's RowChildren holds them in their original order.
//
// Cache entries past the last assigned index are dropped.
func Flatten(root *GroupNode, cache *GroupCache, options grid.Options) []*GroupingRow {
	f := &flattener{
		cache:   cache,
		options: options,
	}
	f.walk(root)
	cache.truncate(f.next)
	return f.headers
}

func (f *flattener) walk(node *GroupNode) {
	if node.IsLeaf() {
		if len(f.ancestors) == 0 {
			return
		}
		innermost := f.ancestors[len(f.ancestors)-1]
		innermost.RowChildren = append(innermost.RowChildren, node.Rows...)
		return
	}

	node.Values.Range(func(label string, child *GroupNode) bool {
		header := f.cache.acquire(groupingEntity{
			label:         label,
			name:          node.Column.Name(),
			depth:         node.Depth,
			groupingIndex: f.next,
		}, 0, f.options)
		f.next++

		if node.Depth > 0 {
			parent := f.ancestors[node.Depth-1]
			header.Parent = parent
			parent.Collapsed = false
			parent.GroupChildren = append(parent.GroupChildren, header)
		}

		f.headers = append(f.headers, header)
		f.ancestors = append(f.ancestors[:node.Depth], header)

		f.walk(child)
		return true
	})
}

// Interleave produces the linear renderable sequence: every header in order,
// each immediately followed by its data rows. RowIndex of each header is set
// to its position in the result.
func Interleave(headers []*GroupingRow) []grid.Renderable {
	size := len(headers)
	for _, header := range headers {
		size += len(header.RowChildren)
	}
	result := make([]grid.Renderable, 0, size)
	for _, header := range headers {
		header.RowIndex = len(result)
		result = append(result, header)
		for _, row := range header.RowChildren {
			result = append(result, row)
		}
	}
	return result
}
