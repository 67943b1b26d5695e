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

// PropagateVisibility makes the direct children of the header visible if and
// only if the header itself is visible and expanded, and recurses into child
// headers. A data row therefore ends up visible exactly when every header
// above it is expanded.
func (g *GroupingRow) PropagateVisibility() {
	show := g.Visible && !g.Collapsed
	for _, child := range g.GroupChildren {
		child.Visible = show
		child.PropagateVisibility()
	}
	for _, row := range g.RowChildren {
		row.Visible = show
	}
}

// ApplyVisibility shows every top-level header and propagates collapsed state
// through the whole forest.
func ApplyVisibility(headers []*GroupingRow) {
	for _, header := range headers {
		if header.Depth != 0 {
			continue
		}
		header.Visible = true
		header.PropagateVisibility()
	}
}
