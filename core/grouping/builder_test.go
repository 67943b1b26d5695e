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

import (
	"testing"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newTestGrid creates a grid with the grouping feature and the named columns.
func newTestGrid(t *testing.T, options grid.Options, names ...string) (*grid.Grid, *Controller) {
	t.Helper()
	g := grid.New(grid.WithOptions(options), grid.WithLogger(zaptest.NewLogger(t)))
	c := Initialize(g)
	for _, name := range names {
		_, err := g.AddColumn(columns.NewColumnDef(name, ""))
		require.NoError(t, err)
	}
	return g, c
}

func testRows(entities ...grid.Entity) []*grid.Row {
	rows := make([]*grid.Row, len(entities))
	for i, e := range entities {
		rows[i] = grid.NewRow(e)
	}
	return rows
}

func testColumns(t *testing.T, names ...string) []*grid.Column {
	t.Helper()
	g := grid.New()
	cols := make([]*grid.Column, len(names))
	for i, name := range names {
		col, err := g.AddColumn(columns.NewColumnDef(name, ""))
		require.NoError(t, err)
		cols[i] = col
	}
	return cols
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		present bool
		want    string
	}{
		{"missing field", nil, false, NullKey},
		{"explicit nil", nil, true, NullKey},
		{"empty string", "", true, NullKey},
		{"literal null string", "null", true, NullKey},
		{"string", "A", true, "A"},
		{"integer", 42, true, "42"},
		{"zero", 0, true, "0"},
		{"false", false, true, "false"},
		{"float", 1.5, true, "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyOf(tt.value, tt.present))
		})
	}
}

func TestBuildSingleColumn(t *testing.T) {
	cols := testColumns(t, "dept")
	rows := testRows(
		grid.Entity{"dept": "A", "n": 1},
		grid.Entity{"dept": "A", "n": 2},
		grid.Entity{"dept": "B", "n": 3},
	)

	root := Build(rows, cols, true)

	require.False(t, root.IsLeaf())
	assert.Equal(t, 0, root.Depth)
	assert.Same(t, cols[0], root.Column)
	assert.Equal(t, []string{"A", "B"}, root.Values.Keys())

	a, _ := root.Values.Get("A")
	require.True(t, a.IsLeaf())
	assert.Equal(t, 1, a.Depth)
	assert.Equal(t, []*grid.Row{rows[0], rows[1]}, a.Rows)
	assert.Equal(t, 3, root.Length())
	assert.Equal(t, 2, root.Height())
}

func TestBuildNestedUniformDepth(t *testing.T) {
	cols := testColumns(t, "dept", "team")
	rows := testRows(
		grid.Entity{"dept": "A", "team": "X"},
		grid.Entity{"dept": "B"},
		grid.Entity{"dept": "A", "team": nil},
		grid.Entity{"dept": "A", "team": "X"},
	)

	root := Build(rows, cols, true)

	var check func(node *GroupNode)
	check = func(node *GroupNode) {
		if node.IsLeaf() {
			assert.Equal(t, len(cols), node.Depth)
			assert.NotEmpty(t, node.Rows)
			return
		}
		assert.Same(t, cols[node.Depth], node.Column)
		node.Values.Range(func(_ string, child *GroupNode) bool {
			check(child)
			return true
		})
	}
	check(root)

	a, _ := root.Values.Get("A")
	assert.Equal(t, []string{"X", NullKey}, a.Values.Keys())
	b, _ := root.Values.Get("B")
	assert.Equal(t, []string{NullKey}, b.Values.Keys())
	assert.Equal(t, 4, root.Length())
}

func TestBuildPrimesVisibility(t *testing.T) {
	cols := testColumns(t, "dept")
	rows := testRows(grid.Entity{"dept": "A"}, grid.Entity{"dept": "B"})

	Build(rows, cols, false)
	for _, row := range rows {
		assert.False(t, row.Visible)
	}

	Build(rows, cols, true)
	for _, row := range rows {
		assert.True(t, row.Visible)
	}
}

func TestBuildEmpty(t *testing.T) {
	cols := testColumns(t, "dept")
	root := Build(nil, cols, true)
	assert.Equal(t, 0, root.Values.Len())
	assert.Empty(t, Flatten(root, NewGroupCache(), grid.DefaultOptions()))
}
