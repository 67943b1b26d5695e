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

package views

import (
	"sort"

	"github.com/google/gridgroup/core/query"
	"github.com/google/gridgroup/core/tables"
	"github.com/google/safehtml"
)

// LandingViewModel lists the tables that can be opened as a grid.
type LandingViewModel struct {
	Title  string
	Tables []TableLink
}

// TableLink points at a new grid view of one table.
type TableLink struct {
	Name    string
	Rows    int
	Columns int
	URL     safehtml.URL
}

// NewLandingViewModel builds the landing page model, tables sorted by name.
func NewLandingViewModel(title string, all map[string]*tables.DataTable) LandingViewModel {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	vm := LandingViewModel{Title: title}
	for _, name := range names {
		table := all[name]
		q := &query.Query{Path: "/grid", Table: name, Limit: query.DefaultLimit}
		vm.Tables = append(vm.Tables, TableLink{
			Name:    name,
			Rows:    table.Length(),
			Columns: len(table.GetColumnNames()),
			URL:     q.ToSafeURL(),
		})
	}
	return vm
}
