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
	"fmt"
	"io"
	"strings"

	"github.com/google/gridgroup/core/views"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Text output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// RenderText writes the visible rows of a grid view model as a text table.
// Grouping headers span the first column, indented by depth.
func RenderText(w io.Writer, vm views.GridViewModel, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(vm.Columns))
	for i, col := range vm.Columns {
		headerRow[i] = col.DisplayName
	}
	t.AppendHeader(headerRow)

	for _, row := range vm.Rows {
		r := make(table.Row, len(vm.Columns))
		if row.IsGroupingRow {
			if len(r) == 0 {
				r = table.Row{""}
			}
			r[0] = headerText(row)
			for i := 1; i < len(r); i++ {
				r[i] = ""
			}
		} else {
			for i, cell := range row.Cells {
				r[i] = cell
			}
		}
		t.AppendRow(r)
	}

	switch format {
	case FormatMarkdown, "md":
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	case FormatTable, "":
		t.Render()
		if vm.HasMoreRows {
			_, _ = fmt.Fprintf(w, "(%d of %d rows shown)\n", vm.DisplayedRows, vm.TotalRows)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func headerText(row views.RowViewModel) string {
	arrow := "v"
	if row.Collapsed {
		arrow = ">"
	}
	return fmt.Sprintf("%s%s %s (%d)", strings.Repeat("  ", row.Depth), arrow, row.Label, row.Count)
}
