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

package tables

import (
	"testing"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTable(t *testing.T) {
	table := NewDataTable()
	table.AddColumn(columns.NewColumnDef("status", "Status"))
	table.AddColumn(columns.NewColumnDef("region", "Region"))
	table.AddColumn(columns.NewColumnDef("status", "State"))

	assert.Equal(t, []string{"status", "region"}, table.GetColumnNames())
	assert.Equal(t, "State", table.GetColumn("status").DisplayName())
	assert.Nil(t, table.GetColumn("missing"))

	require.NoError(t, table.AppendRow(grid.Entity{"status": "Active", "region": "North"}))
	require.NoError(t, table.AppendRow(grid.Entity{"status": "Inactive"}))
	assert.Error(t, table.AppendRow(grid.Entity{"amount": 3}))
	assert.Equal(t, 2, table.Length())
}

func TestPopulate(t *testing.T) {
	table := NewDataTable()
	table.AddColumn(columns.NewColumnDef("status", ""))
	require.NoError(t, table.AppendRow(grid.Entity{"status": "Active"}))
	require.NoError(t, table.AppendRow(grid.Entity{"status": "Pending"}))

	g := grid.New()
	require.NoError(t, table.Populate(g))
	require.NoError(t, table.Populate(g), "populating twice keeps existing columns")

	assert.Len(t, g.Columns(), 1)
	rows := g.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Pending", rows[1].GetString("status"))
}
