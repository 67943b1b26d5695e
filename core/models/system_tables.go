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
	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/tables"
)

// System table name constants
const (
	ColumnsTableName = "_columns"
)

// BuildColumnsTable creates a system table containing metadata about all columns
// in the DataModel. Each row represents one column from any table.
//
// Schema:
//   - table_name: string - The table this column belongs to
//   - column_name: string - The column's internal name
//   - display_name: string - The column's display name
//   - position: int - Column index within the table
//   - row_count: int - Number of rows in the table
//   - null_count: int - Number of rows with no value for the column
func BuildColumnsTable(dm *DataModel) *tables.DataTable {
	columnsTable := tables.NewDataTable()
	columnsTable.AddColumn(columns.NewColumnDef("table_name", "Table"))
	columnsTable.AddColumn(columns.NewColumnDef("column_name", "Column"))
	columnsTable.AddColumn(columns.NewColumnDef("display_name", "Display Name"))
	columnsTable.AddColumn(columns.NewColumnDef("position", "Position"))
	columnsTable.AddColumn(columns.NewColumnDef("row_count", "Row Count"))
	columnsTable.AddColumn(columns.NewColumnDef("null_count", "Null Count"))

	for _, tableName := range dm.TableNames() {
		// Skip system tables
		if isSystemTable(tableName) {
			continue
		}
		table := dm.GetTable(tableName)
		entities := table.Entities()

		for position, colName := range table.GetColumnNames() {
			nulls := 0
			for _, entity := range entities {
				if v, ok := entity[colName]; !ok || v == nil {
					nulls++
				}
			}
			// Every field is a known column, so AppendRow cannot fail
			_ = columnsTable.AppendRow(grid.Entity{
				"table_name":   tableName,
				"column_name":  colName,
				"display_name": table.GetColumn(colName).DisplayName(),
				"position":     position,
				"row_count":    len(entities),
				"null_count":   nulls,
			})
		}
	}

	return columnsTable
}

// isSystemTable returns true if the table name is a system table
func isSystemTable(name string) bool {
	return name == ColumnsTableName
}

// AddSystemTables creates and adds all system tables to the DataModel.
// This should be called after all user tables have been added.
func AddSystemTables(dm *DataModel) {
	columnsTable := BuildColumnsTable(dm)
	dm.AddTable(ColumnsTableName, columnsTable)
}
