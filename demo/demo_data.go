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

// Package demo provides sample tables for the grid server and the CLI.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/gridgroup/core/csvimport"
	"github.com/google/gridgroup/core/models"
	"github.com/google/gridgroup/core/tables"
)

//go:embed data/orders.csv
var ordersCSV string

//go:embed data/regions.csv
var regionsCSV string

//go:embed data/items.csv
var itemsCSV string

// tableOptions holds the import options of each demo table
var tableOptions = map[string]csvimport.ImportOptions{
	"orders": withSources(
		csvimport.CsvColumnSource{Name: "order_id", DisplayName: "Order", Type: csvimport.CsvColumnTypeString},
		csvimport.CsvColumnSource{Name: "status", DisplayName: "Status"},
		csvimport.CsvColumnSource{Name: "region", DisplayName: "Region"},
		csvimport.CsvColumnSource{Name: "category", DisplayName: "Category"},
		csvimport.CsvColumnSource{Name: "amount", DisplayName: "Amount", Type: csvimport.CsvColumnTypeFloat64},
	),
	"regions": withSources(
		csvimport.CsvColumnSource{Name: "population_millions", DisplayName: "Population (M)"},
	),
	"items": withSources(
		csvimport.CsvColumnSource{Name: "sku", DisplayName: "SKU"},
		csvimport.CsvColumnSource{Name: "in_stock", DisplayName: "In Stock", Type: csvimport.CsvColumnTypeBool},
	),
}

// withSources returns the default options with sources keyed by header,
// each source naming the header it applies to.
func withSources(sources ...csvimport.CsvColumnSource) csvimport.ImportOptions {
	options := csvimport.DefaultOptions()
	for _, source := range sources {
		options.ColumnSources[source.Name] = source
	}
	return options
}

// importTable is a helper function to import an embedded CSV table
func importTable(name, csv string) (*tables.DataTable, error) {
	options, ok := tableOptions[name]
	if !ok {
		return nil, fmt.Errorf("no import options for table %s", name)
	}

	table, err := csvimport.ImportFromReader(strings.NewReader(csv), options)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s CSV: %w", name, err)
	}
	return table, nil
}

// CreateOrdersTable creates a table with sample order data
func CreateOrdersTable() (*tables.DataTable, error) {
	return importTable("orders", ordersCSV)
}

// CreateRegionsTable creates a table with region information
func CreateRegionsTable() (*tables.DataTable, error) {
	return importTable("regions", regionsCSV)
}

// CreateItemsTable creates a table with an item catalog whose department,
// category and subcategory columns nest
func CreateItemsTable() (*tables.DataTable, error) {
	return importTable("items", itemsCSV)
}

// NewDataModel registers the demo tables, perfRows generated transactions
// when perfRows is positive, and the system tables.
func NewDataModel(perfRows int) (*models.DataModel, error) {
	dataModel := models.NewDataModel()

	for name, create := range map[string]func() (*tables.DataTable, error){
		"orders":  CreateOrdersTable,
		"regions": CreateRegionsTable,
		"items":   CreateItemsTable,
	} {
		table, err := create()
		if err != nil {
			return nil, err
		}
		dataModel.AddTable(name, table)
	}

	if perfRows > 0 {
		dataModel.AddTable(PerfTransactionsTableName, CreatePerfTransactionsTable(perfRows))
	}

	// Add system tables (must be after all user tables are added)
	models.AddSystemTables(dataModel)
	return dataModel, nil
}
