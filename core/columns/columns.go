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

package columns

import (
	"fmt"
	"strings"
)

type IColumnDef interface {
	Name() string // must not contain any of the following characters: & = : ,
	DisplayName() string
}

type ColumnDef struct {
	name        string // must not contain any of the following characters: & = : ,
	displayName string
}

// NewColumnDef creates a new ColumnDef with the given name and display name.
// An empty display name defaults to the name.
func NewColumnDef(name, displayName string) *ColumnDef {
	if displayName == "" {
		displayName = name
	}
	return &ColumnDef{
		name:        name,
		displayName: displayName,
	}
}

func (cd *ColumnDef) Name() string {
	return cd.name
}

func (cd *ColumnDef) DisplayName() string {
	return cd.displayName
}

// Validate checks that the name can be carried in a URL query parameter.
func (cd *ColumnDef) Validate() error {
	if cd.name == "" {
		return fmt.Errorf("column name is required")
	}
	if strings.ContainsAny(cd.name, "&=:,") {
		return fmt.Errorf("column name %q must not contain any of & = : ,", cd.name)
	}
	return nil
}
