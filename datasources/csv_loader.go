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

package datasources

import (
	"fmt"

	"github.com/google/gridgroup/core/csvimport"
	"github.com/google/gridgroup/core/tables"
)

// CsvLoader implements DataSourceLoader for CSV files with a header row.
// Column types are detected from the data unless annotated.
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load imports the CSV file at path.
func (l *CsvLoader) Load(source Source, path string) (*tables.DataTable, error) {
	options := csvimport.DefaultOptions()

	if source.Delimiter != "" {
		r := []rune(source.Delimiter)
		if len(r) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", source.Delimiter)
		}
		options.Delimiter = r[0]
	}

	for _, col := range source.Columns {
		if err := col.Type.Validate(); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		options.ColumnSources[col.Name] = csvimport.CsvColumnSource{
			Name:        col.Name,
			DisplayName: col.DisplayName,
			Type:        csvType(col.Type),
		}
	}

	return csvimport.ImportFromFile(path, options)
}

func csvType(t ColumnType) csvimport.CsvColumnType {
	switch t {
	case TypeString:
		return csvimport.CsvColumnTypeString
	case TypeInt64:
		return csvimport.CsvColumnTypeInt64
	case TypeFloat64:
		return csvimport.CsvColumnTypeFloat64
	case TypeBool:
		return csvimport.CsvColumnTypeBool
	default:
		return csvimport.CsvColumnTypeAuto
	}
}
