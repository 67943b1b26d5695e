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

// Package tables holds in-memory row sources that grids are populated from.
package tables

import (
	"fmt"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
)

// DataTable is an ordered set of column definitions plus the rows, each row
// an entity keyed by column name.
type DataTable struct {
	columns     []*columns.ColumnDef
	columnIndex map[string]int
	rows        []grid.Entity
}

func NewDataTable() *DataTable {
	return &DataTable{
		columnIndex: make(map[string]int),
	}
}

func (dt *DataTable) AddColumn(def *columns.ColumnDef) {
	if i, exists := dt.columnIndex[def.Name()]; exists {
		dt.columns[i] = def
		return
	}
	dt.columnIndex[def.Name()] = len(dt.columns)
	dt.columns = append(dt.columns, def)
}

func (dt *DataTable) GetColumn(name string) *columns.ColumnDef {
	if i, exists := dt.columnIndex[name]; exists {
		return dt.columns[i]
	}
	return nil
}

// GetColumnNames returns the column names in the order they were added.
func (dt *DataTable) GetColumnNames() []string {
	names := make([]string, len(dt.columns))
	for i, def := range dt.columns {
		names[i] = def.Name()
	}
	return names
}

// AppendRow adds a row. Fields that do not name a column are rejected.
func (dt *DataTable) AppendRow(entity grid.Entity) error {
	for field := range entity {
		if _, exists := dt.columnIndex[field]; !exists {
			return fmt.Errorf("field %q is not a column of the table", field)
		}
	}
	dt.rows = append(dt.rows, entity)
	return nil
}

func (dt *DataTable) Length() int {
	return len(dt.rows)
}

// Entities returns the rows in insertion order.
func (dt *DataTable) Entities() []grid.Entity {
	result := make([]grid.Entity, len(dt.rows))
	copy(result, dt.rows)
	return result
}

// Populate adds the table's columns to g and replaces g's rows with the table's.
func (dt *DataTable) Populate(g *grid.Grid) error {
	for _, def := range dt.columns {
		if g.Column(def.Name()) != nil {
			continue
		}
		if _, err := g.AddColumn(def); err != nil {
			return fmt.Errorf("failed to add column %s: %w", def.Name(), err)
		}
	}
	g.SetRows(dt.Entities())
	return nil
}
