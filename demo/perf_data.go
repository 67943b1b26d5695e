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

package demo

import (
	"fmt"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/tables"
)

// PerfTransactionsTableName is the name of the generated transactions table.
const PerfTransactionsTableName = "transactions_perf"

// Cardinality of the generated grouping columns
const (
	PERF_NUM_CATEGORIES = 200 // Low cardinality
	PERF_NUM_COUNTRIES  = 10
	PERF_NUM_STATUSES   = 4
)

// CreatePerfTransactionsTable creates a large transaction table for grouping
// performance testing. Rows are deterministic for a given count.
func CreatePerfTransactionsTable(numTransactions int) *tables.DataTable {
	t := tables.NewDataTable()

	t.AddColumn(columns.NewColumnDef("txn_id", "Transaction ID"))
	t.AddColumn(columns.NewColumnDef("country", "Country"))
	t.AddColumn(columns.NewColumnDef("status", "Status"))
	t.AddColumn(columns.NewColumnDef("category", "Category"))
	t.AddColumn(columns.NewColumnDef("amount", "Amount"))

	// Values for cycling
	countries := []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "CN", "IN", "BR"}
	statuses := []string{"pending", "completed", "cancelled", "processing"}

	for i := 0; i < numTransactions; i++ {
		// Category: heavy reuse, category 0 more common
		category := i % PERF_NUM_CATEGORIES
		if i%7 == 0 {
			category = 0
		}

		var status any = statuses[i%PERF_NUM_STATUSES]
		if i%97 == 0 { // Some rows have no status
			status = nil
		}

		// Every field is a column of the table, so AppendRow cannot fail
		_ = t.AppendRow(grid.Entity{
			"txn_id":   i,
			"country":  countries[(i/3)%PERF_NUM_COUNTRIES],
			"status":   status,
			"category": fmt.Sprintf("Category_%d", category),
			"amount":   10 + (i % 1000),
		})
	}
	return t
}
