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

package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/gridgroup/core/columns"
	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/tables"
)

// CsvColumnType specifies the data type for a column
type CsvColumnType int

const (
	// CsvColumnTypeAuto auto-detects type from data (default)
	CsvColumnTypeAuto CsvColumnType = iota
	// CsvColumnTypeString forces string type
	CsvColumnTypeString
	// CsvColumnTypeInt64 forces int64 type
	CsvColumnTypeInt64
	// CsvColumnTypeFloat64 forces float64 type
	CsvColumnTypeFloat64
	// CsvColumnTypeBool forces bool type
	CsvColumnTypeBool
)

// CsvColumnSource defines source metadata for how a column is imported
type CsvColumnSource struct {
	// Name is the column name (defaults to header name if not specified)
	Name string
	// DisplayName is the display name for the column
	DisplayName string
	// Type specifies the data type for this column (default: auto-detect)
	Type CsvColumnType
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]CsvColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]CsvColumnSource),
		SampleSize:    100,
	}
}

// ImportFromFile imports a CSV file and returns a DataTable
func ImportFromFile(filepath string, options ImportOptions) (*tables.DataTable, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports CSV data from an io.Reader and returns a DataTable.
// Empty cells become nil fields, which group under the null key.
func ImportFromReader(reader io.Reader, options ImportOptions) (*tables.DataTable, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	// Read all records
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	// Extract headers
	var headers []string
	var dataRows [][]string

	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		// Generate column names if no header
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		dataRows = records
	}

	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	columnTypes := detectColumnTypes(headers, dataRows, sampleSize, options.ColumnSources)

	table := tables.NewDataTable()
	names := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		config := getColumnSource(header, options.ColumnSources)
		names[i] = header
		if config.Name != "" {
			names[i] = config.Name
		}
		colDef := columns.NewColumnDef(names[i], config.DisplayName)
		if err := colDef.Validate(); err != nil {
			return nil, fmt.Errorf("invalid header %d: %w", i+1, err)
		}
		table.AddColumn(colDef)
	}

	for line, record := range dataRows {
		entity := make(grid.Entity, len(headers))
		for i := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value == "" {
				entity[names[i]] = nil
				continue
			}
			entity[names[i]] = parseValue(value, columnTypes[i])
		}
		if err := table.AppendRow(entity); err != nil {
			return nil, fmt.Errorf("row %d: %w", line+1, err)
		}
	}

	return table, nil
}

// parseValue converts a cell to the column's type, keeping the raw string
// when it does not parse.
func parseValue(value string, columnType CsvColumnType) any {
	switch columnType {
	case CsvColumnTypeInt64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case CsvColumnTypeFloat64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case CsvColumnTypeBool:
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return value
}

// detectColumnTypes samples data to determine if columns are numeric or string
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, configs map[string]CsvColumnSource) []CsvColumnType {
	types := make([]CsvColumnType, len(headers))

	// Sample rows for type detection
	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i, header := range headers {
		// Check if type is explicitly set
		if config, ok := configs[strings.TrimSpace(header)]; ok && config.Type != CsvColumnTypeAuto {
			types[i] = config.Type
			continue
		}

		isInt, isFloat := true, true
		hasNonEmpty := false
		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}
			value := strings.TrimSpace(dataRows[j][i])
			if value == "" {
				continue
			}
			hasNonEmpty = true
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				isInt = false
			}
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				isFloat = false
				break
			}
		}

		switch {
		case !hasNonEmpty:
			types[i] = CsvColumnTypeString
		case isInt:
			types[i] = CsvColumnTypeInt64
		case isFloat:
			types[i] = CsvColumnTypeFloat64
		default:
			types[i] = CsvColumnTypeString
		}
	}

	return types
}

// getColumnSource returns the config for a column, or an empty config if not specified
func getColumnSource(header string, configs map[string]CsvColumnSource) CsvColumnSource {
	if configs == nil {
		return CsvColumnSource{}
	}
	if config, ok := configs[header]; ok {
		return config
	}
	return CsvColumnSource{}
}
