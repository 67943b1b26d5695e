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

package rendering

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/query"
	"github.com/google/gridgroup/core/tables"
	"github.com/google/gridgroup/core/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func groupedViewModel(t *testing.T, options grid.Options, rawQuery string) views.GridViewModel {
	t.Helper()
	g := grid.New(grid.WithOptions(options), grid.WithLogger(zaptest.NewLogger(t)), grid.WithID("g1"))
	c := grouping.Initialize(g)
	for _, name := range []string{"region", "status"} {
		_, err := g.AddColumn(columns.NewColumnDef(name, strings.ToUpper(name)))
		require.NoError(t, err)
	}
	g.SetRows([]grid.Entity{
		{"region": "EU", "status": "open"},
		{"region": "EU", "status": "closed"},
		{"region": "US", "status": "open"},
	})
	require.NoError(t, c.SetGroupColumnsByName([]string{"region"}))
	require.NoError(t, c.ToggleGroup(1))

	u, err := url.Parse(rawQuery)
	require.NoError(t, err)
	return views.NewGridViewModel("orders", g, query.NewQuery(u))
}

func TestRenderGrid(t *testing.T) {
	r, err := NewGridRenderer()
	require.NoError(t, err)

	vm := groupedViewModel(t, grid.DefaultOptions(), "/grid?table=orders&grouped=region")
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, vm))

	html := buf.String()
	assert.Contains(t, html, "<title>orders</title>")
	assert.Contains(t, html, `class="uiGroupingArrowExpanded"`)
	assert.Contains(t, html, `class="uiGroupingArrowCollapsed"`)
	assert.Contains(t, html, "/grids/g1/toggle/0?")
	assert.Contains(t, html, "Ungroup")
	assert.Contains(t, html, "<td>closed</td>")
	assert.Contains(t, html, "(2)")
}

func TestRenderCompactRowTemplate(t *testing.T) {
	r, err := NewGridRenderer()
	require.NoError(t, err)

	options := grid.DefaultOptions()
	options.GroupingRowTemplate = CompactGroupingRowTemplate
	vm := groupedViewModel(t, options, "/grid")
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, vm))
	assert.NotContains(t, buf.String(), "ui-grid-count")
}

func TestRenderUnknownRowTemplate(t *testing.T) {
	r, err := NewGridRenderer()
	require.NoError(t, err)

	options := grid.DefaultOptions()
	options.GroupingRowTemplate = "custom/row"
	vm := groupedViewModel(t, options, "/grid")
	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, vm))
	assert.False(t, HasRowTemplate("custom/row"))
	assert.True(t, HasRowTemplate(grid.DefaultGroupingRowTemplate))
}

func TestRenderLanding(t *testing.T) {
	r, err := NewGridRenderer()
	require.NoError(t, err)

	vm := views.NewLandingViewModel("Tables", map[string]*tables.DataTable{"orders": tables.NewDataTable()})
	var buf bytes.Buffer
	require.NoError(t, r.RenderLanding(&buf, vm))
	assert.Contains(t, buf.String(), ">orders</a>")
}

func TestRenderText(t *testing.T) {
	vm := groupedViewModel(t, grid.DefaultOptions(), "/grid")

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, vm, FormatTable))
	out := buf.String()
	assert.Contains(t, out, "REGION")
	assert.Contains(t, out, "v EU (2)")
	assert.Contains(t, out, "> US (1)")
	assert.Contains(t, out, "closed")

	buf.Reset()
	require.NoError(t, RenderText(&buf, vm, FormatMarkdown))
	assert.Contains(t, buf.String(), "| REGION | STATUS |")

	buf.Reset()
	require.NoError(t, RenderText(&buf, vm, FormatCSV))
	assert.Contains(t, buf.String(), "EU,closed")

	assert.Error(t, RenderText(&buf, vm, "yaml"))
}

func TestRenderTextLimit(t *testing.T) {
	vm := groupedViewModel(t, grid.DefaultOptions(), "/grid?limit=2")

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, vm, FormatTable))
	assert.Contains(t, buf.String(), "(2 of 3 rows shown)")
}
