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
	"embed"
	"fmt"
	"io"

	"github.com/google/gridgroup/core/grid"
	"github.com/google/gridgroup/core/views"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// CompactGroupingRowTemplate renders grouping headers without the row count.
const CompactGroupingRowTemplate = "ui-grid/groupingRowCompact"

// rowTemplates are the grouping row templates a grid may name in its options.
var rowTemplates = []string{grid.DefaultGroupingRowTemplate, CompactGroupingRowTemplate}

// GridRenderer handles rendering of grid view models to HTML
type GridRenderer struct {
	gridTemplate    *template.Template
	landingTemplate *template.Template
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer() (*GridRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// Parse the grid template together with the grouping row templates
	gridTemplate, err := template.New("grid.html").ParseFS(trustedFS, "templates/grid.html", "templates/rows.html")
	if err != nil {
		return nil, err
	}

	// Parse the landing page template
	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	return &GridRenderer{
		gridTemplate:    gridTemplate,
		landingTemplate: landingTemplate,
	}, nil
}

// HasRowTemplate reports whether name is a known grouping row template.
func HasRowTemplate(name string) bool {
	for _, known := range rowTemplates {
		if known == name {
			return true
		}
	}
	return false
}

// Render renders a GridViewModel to the provided writer
func (r *GridRenderer) Render(w io.Writer, vm views.GridViewModel) error {
	for _, row := range vm.Rows {
		if row.IsGroupingRow && !HasRowTemplate(row.Template) {
			return fmt.Errorf("unknown grouping row template %q", row.Template)
		}
	}
	return r.gridTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *GridRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}
