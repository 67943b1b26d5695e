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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportBasicCSV(t *testing.T) {
	csvData := `name,age,city
Alice,30,New York
Bob,25,Los Angeles
Charlie,35,`

	reader := strings.NewReader(csvData)
	table, err := ImportFromReader(reader, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}

	// Check table length
	if table.Length() != 3 {
		t.Errorf("expected 3 rows, got %d", table.Length())
	}

	// Check columns exist in header order
	names := table.GetColumnNames()
	if len(names) != 3 || names[0] != "name" || names[2] != "city" {
		t.Errorf("expected [name age city], got %v", names)
	}

	rows := table.Entities()
	if rows[0]["name"] != "Alice" {
		t.Errorf("expected 'Alice', got '%v'", rows[0]["name"])
	}

	// Check age column (should be int64)
	if age, ok := rows[0]["age"].(int64); !ok || age != 30 {
		t.Errorf("expected int64 30, got %#v", rows[0]["age"])
	}

	// Empty cells are nil
	if v, ok := rows[2]["city"]; !ok || v != nil {
		t.Errorf("expected nil city for Charlie, got %#v", v)
	}
}

func TestImportWithoutHeader(t *testing.T) {
	csvData := `Alice,30,New York
Bob,25,Los Angeles`

	reader := strings.NewReader(csvData)
	options := DefaultOptions()
	options.HasHeader = false

	table, err := ImportFromReader(reader, options)
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}

	if table.Length() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Length())
	}
	if table.GetColumn("column_1") == nil {
		t.Error("expected generated column_1")
	}
}

func TestImportColumnSources(t *testing.T) {
	csvData := `code;price;active
007;1.5;true
042;2;false`

	options := DefaultOptions()
	options.Delimiter = ';'
	options.ColumnSources["code"] = CsvColumnSource{Name: "sku", DisplayName: "SKU", Type: CsvColumnTypeString}
	options.ColumnSources["active"] = CsvColumnSource{Type: CsvColumnTypeBool}

	table, err := ImportFromReader(strings.NewReader(csvData), options)
	if err != nil {
		t.Fatalf("failed to import CSV: %v", err)
	}

	if col := table.GetColumn("sku"); col == nil || col.DisplayName() != "SKU" {
		t.Fatalf("expected renamed column sku with display name SKU")
	}
	rows := table.Entities()
	if rows[0]["sku"] != "007" {
		t.Errorf("expected string '007', got %#v", rows[0]["sku"])
	}
	if rows[1]["price"] != 2.0 {
		t.Errorf("expected float64 2, got %#v", rows[1]["price"])
	}
	if rows[1]["active"] != false {
		t.Errorf("expected false, got %#v", rows[1]["active"])
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := ImportFromReader(strings.NewReader(""), DefaultOptions()); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ImportFromReader(strings.NewReader("a,b=c\n1,2"), DefaultOptions()); err == nil {
		t.Error("expected error for header that cannot be a column name")
	}
	if _, err := ImportFromFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("status\nActive\nPending\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := ImportFromFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to import file: %v", err)
	}
	if table.Length() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Length())
	}
}
