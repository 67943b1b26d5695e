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

package models

import (
	"sort"

	"github.com/google/gridgroup/core/tables"
)

// DataModel is the registry of tables that grids can be opened on.
type DataModel struct {
	tables map[string]*tables.DataTable
}

// NewDataModel creates a new DataModel instance
func NewDataModel() *DataModel {
	return &DataModel{
		tables: make(map[string]*tables.DataTable),
	}
}

// AddTable adds a table to the data model, replacing any table with the same name
func (dm *DataModel) AddTable(name string, table *tables.DataTable) {
	dm.tables[name] = table
}

// GetTable returns a table by name
func (dm *DataModel) GetTable(name string) *tables.DataTable {
	return dm.tables[name]
}

// GetAllTables returns all tables in the data model
func (dm *DataModel) GetAllTables() map[string]*tables.DataTable {
	return dm.tables
}

// TableNames returns the table names in sorted order
func (dm *DataModel) TableNames() []string {
	names := make([]string, 0, len(dm.tables))
	for name := range dm.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
