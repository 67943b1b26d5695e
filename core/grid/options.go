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

// DefaultGroupingRowTemplate identifies the built-in group header template.
const DefaultGroupingRowTemplate = "ui-grid/groupingRow"

// DefaultRowHeight is the row height in pixels used when none is configured.
const DefaultRowHeight = 30

// Options are the grid-level options recognized by the grid and its features.
type Options struct {
	// EnableGrouping is the master switch for the grouping feature.
	EnableGrouping bool `koanf:"enableGrouping"`
	// GroupExpandByDefault sets the initial state of newly created group headers.
	GroupExpandByDefault bool `koanf:"groupExpandByDefault"`
	// GroupingRowTemplate identifies the template used to present group headers.
	GroupingRowTemplate string `koanf:"groupingRowTemplate"`
	RowHeight           int    `koanf:"rowHeight"`
}

// DefaultOptions returns the options of a grid with nothing configured.
func DefaultOptions() Options {
	return Options{
		EnableGrouping:       true,
		GroupExpandByDefault: true,
		GroupingRowTemplate:  DefaultGroupingRowTemplate,
		RowHeight:            DefaultRowHeight,
	}
}

// ApplyDefaults fills in the options left at their zero value that have a
// non-zero default. Booleans are taken as given.
func (o *Options) ApplyDefaults() {
	if o.GroupingRowTemplate == "" {
		o.GroupingRowTemplate = DefaultGroupingRowTemplate
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
}
