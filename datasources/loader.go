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

// Package datasources loads the tables that grids are opened on from
// configured sources, applying reusable column annotations.
package datasources

import (
	"fmt"

	"github.com/google/gridgroup/core/tables"
)

// ColumnType represents the data type of a column.
type ColumnType string

const (
	TypeAuto    ColumnType = ""
	TypeString  ColumnType = "string"
	TypeInt64   ColumnType = "int64"
	TypeFloat64 ColumnType = "float64"
	TypeBool    ColumnType = "bool"
)

// Validate reports whether t names a supported column type.
func (t ColumnType) Validate() error {
	switch t {
	case TypeAuto, TypeString, TypeInt64, TypeFloat64, TypeBool:
		return nil
	}
	return fmt.Errorf("unknown column type %q", string(t))
}

// ColumnAnnotation overrides how one source column is loaded.
type ColumnAnnotation struct {
	Name        string     `koanf:"name"`
	DisplayName string     `koanf:"displayName"`
	Type        ColumnType `koanf:"type"`
}

// Source describes one table to load.
type Source struct {
	// Name is the table name grids refer to
	Name string `koanf:"name"`
	// Type selects the loader (e.g., "csv")
	Type string `koanf:"type"`
	// Path of the source file, relative to the manager's base directory
	Path string `koanf:"path"`
	// Delimiter is the field delimiter of delimited files (default: ",")
	Delimiter string `koanf:"delimiter"`
	// Columns annotates source columns by name
	Columns []ColumnAnnotation `koanf:"columns"`
}

// DataSourceLoader is the interface that all data source loaders must implement.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g., "csv").
	SourceType() string

	// Load retrieves data and returns a DataTable. path is already resolved.
	Load(source Source, path string) (*tables.DataTable, error)
}
