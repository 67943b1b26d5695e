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

package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/grouping"
	"github.com/google/gridgroup/core/query"
	"github.com/google/gridgroup/core/rendering"
	"github.com/google/gridgroup/core/tables"
	"github.com/google/gridgroup/core/views"
	"github.com/google/gridgroup/datasources"
	"github.com/google/gridgroup/demo"
	"github.com/spf13/cobra"
)

// GroupOptions holds options for the group command.
type GroupOptions struct {
	Demo        string
	GroupBy     []string
	Columns     []string
	Collapse    []int
	CollapseAll bool
	Format      string
	Limit       int
	Delimiter   string
}

// NewGroupCommand creates the group command.
func NewGroupCommand() *cobra.Command {
	opts := &GroupOptions{}

	cmd := &cobra.Command{
		Use:   "group [file.csv]",
		Short: "Group the rows of a CSV file or demo table and print them",
		Example: `  # Group a CSV file by two columns
  gridgroup group orders.csv --group-by region,status

  # Collapse the second group header and print markdown
  gridgroup group --demo items --group-by department,category --collapse 1 -o markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Demo, "demo", "", "Use a demo table (orders|regions|items) instead of a file")
	cmd.Flags().StringSliceVarP(&opts.GroupBy, "group-by", "g", nil, "Columns to group by, outermost first")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "Columns to show (default: all)")
	cmd.Flags().IntSliceVar(&opts.Collapse, "collapse", nil, "Grouping indices of headers to collapse, or expand when collapsed")
	cmd.Flags().BoolVar(&opts.CollapseAll, "collapse-all", false, "Collapse every group header")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", rendering.FormatTable, "Output format (table|markdown|csv)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum number of rows to print (0 = all)")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", ",", "CSV field delimiter")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{rendering.FormatTable, rendering.FormatMarkdown, rendering.FormatCSV}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runGroup(cmd *cobra.Command, args []string, opts *GroupOptions) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	table, name, err := loadTable(args, opts)
	if err != nil {
		return err
	}

	g := grid.New(grid.WithOptions(cfg.Grid), grid.WithLogger(logger))
	controller := grouping.Initialize(g)
	if err := table.Populate(g); err != nil {
		return err
	}
	if err := controller.SetGroupColumnsByName(opts.GroupBy); err != nil {
		return fmt.Errorf("failed to group by %s: %w", strings.Join(opts.GroupBy, ","), err)
	}
	if opts.CollapseAll {
		controller.SetAllCollapsed(true)
	}
	for _, index := range opts.Collapse {
		if err := controller.ToggleGroup(index); err != nil {
			return err
		}
	}

	q := query.NewQuery(&url.URL{Path: "/grid"})
	q.Table = name
	q.Columns = opts.Columns
	q.Limit = opts.Limit
	q = q.WithGroupedColumns(opts.GroupBy)

	vm := views.NewGridViewModel(name, g, q)
	return rendering.RenderText(cmd.OutOrStdout(), vm, opts.Format)
}

// loadTable returns the table named by the arguments and its display name.
func loadTable(args []string, opts *GroupOptions) (*tables.DataTable, string, error) {
	switch {
	case opts.Demo != "" && len(args) > 0:
		return nil, "", fmt.Errorf("--demo and a file argument are mutually exclusive")
	case opts.Demo != "":
		dataModel, err := demo.NewDataModel(0)
		if err != nil {
			return nil, "", err
		}
		table := dataModel.GetTable(opts.Demo)
		if table == nil {
			return nil, "", fmt.Errorf("unknown demo table %q (available: %s)", opts.Demo, strings.Join(dataModel.TableNames(), ", "))
		}
		return table, opts.Demo, nil
	case len(args) == 1:
		table, err := importCSV(args[0], opts.Delimiter)
		if err != nil {
			return nil, "", err
		}
		return table, datasources.TableNameFromPath(args[0]), nil
	default:
		return nil, "", fmt.Errorf("a CSV file or --demo table is required")
	}
}

func importCSV(path, delimiter string) (*tables.DataTable, error) {
	source := datasources.Source{Path: path, Delimiter: delimiter}
	table, err := datasources.NewCsvLoader().Load(source, path)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return table, nil
}
