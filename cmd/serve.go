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
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gridgroup/core/models"
	"github.com/google/gridgroup/core/server"
	"github.com/google/gridgroup/datasources"
	"github.com/google/gridgroup/demo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	CSVFiles []string
	PerfRows int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo tables, and optional CSV files, as groupable grids",
		Example: `  # Serve the demo tables on the default address
  gridgroup serve

  # Add a CSV file and a generated table for performance testing
  gridgroup serve --addr :9000 --csv sales.csv --perf-rows 100000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on (default: :8097)")
	cmd.Flags().StringSliceVar(&opts.CSVFiles, "csv", nil, "CSV files to serve as additional tables")
	cmd.Flags().IntVar(&opts.PerfRows, "perf-rows", 0, "Rows of the generated transactions table (0 = none)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	dataModel, err := demo.NewDataModel(opts.PerfRows)
	if err != nil {
		return err
	}

	manager := datasources.NewManager(logger)
	manager.SetBaseDir(cfg.BaseDir)
	for _, source := range cfg.Sources {
		if err := manager.AddSource(source); err != nil {
			return err
		}
	}
	for _, path := range opts.CSVFiles {
		if err := manager.AddSource(datasources.Source{Path: path}); err != nil {
			return err
		}
	}
	if err := manager.LoadAll(cmd.Context(), dataModel); err != nil {
		return err
	}
	if names := manager.GetSourceNames(); len(names) > 0 {
		models.AddSystemTables(dataModel)
		logger.Info("sources loaded", zap.Strings("tables", names))
	}

	srv, err := server.NewServer(dataModel, cfg.Grid, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
}
