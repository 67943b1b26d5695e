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
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/gridgroup/core/models"
	"github.com/google/gridgroup/core/tables"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manager owns the configured sources and the tables loaded from them.
// Tables are loaded on first use and cached until invalidated.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name
	sources map[string]Source

	// Loaded tables by source name
	tables map[string]*tables.DataTable

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Relative source paths resolve against baseDir
	baseDir string

	logger *zap.Logger
}

// NewManager creates a new data source manager with the CSV loader registered.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		sources: make(map[string]Source),
		tables:  make(map[string]*tables.DataTable),
		loaders: make(map[string]DataSourceLoader),
		logger:  logger,
	}
	m.RegisterLoader(NewCsvLoader())
	return m
}

// RegisterLoader installs loader for its source type, replacing any previous one.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the base directory for resolving relative paths.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source. A source without a type is a CSV file, and a
// source without a name is named after its file.
func (m *Manager) AddSource(source Source) error {
	if source.Type == "" {
		source.Type = "csv"
	}
	if source.Name == "" {
		source.Name = TableNameFromPath(source.Path)
	}
	if source.Name == "" {
		return fmt.Errorf("source has neither a name nor a path")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sources[source.Name]; exists {
		return fmt.Errorf("duplicate source %q", source.Name)
	}
	m.sources[source.Name] = source
	return nil
}

// GetSourceNames returns all registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadData returns the table of the named source, loading it on first use.
func (m *Manager) LoadData(sourceName string) (*tables.DataTable, error) {
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.Type]
	path := m.resolvePath(source.Path)
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", source.Type)
	}

	table, err := loader.Load(source, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}
	m.logger.Info("source loaded",
		zap.String("source", sourceName),
		zap.String("path", path),
		zap.Int("rows", table.Length()))

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent load of the same source may have finished first.
	if cached, ok := m.tables[sourceName]; ok {
		return cached, nil
	}
	m.tables[sourceName] = table
	return table, nil
}

// LoadAll loads every registered source concurrently and adds the tables to
// dataModel. It fails if any source fails or a table name is already taken.
func (m *Manager) LoadAll(ctx context.Context, dataModel *models.DataModel) error {
	names := m.GetSourceNames()
	for _, name := range names {
		if dataModel.GetTable(name) != nil {
			return fmt.Errorf("table %q already exists", name)
		}
	}

	loaded := make([]*tables.DataTable, len(names))
	eg, egctx := errgroup.WithContext(ctx)
	for i, name := range names {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			table, err := m.LoadData(name)
			if err != nil {
				return err
			}
			loaded[i] = table
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, name := range names {
		dataModel.AddTable(name, loaded[i])
	}
	return nil
}

// resolvePath resolves a relative file path against the base directory.
func (m *Manager) resolvePath(path string) string {
	if m.baseDir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// InvalidateCache drops the cached table so the next LoadData reloads it.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// IsLoaded reports whether the named source has a cached table.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}

// TableNameFromPath derives a table name from a file path, e.g. data/orders.csv -> orders.
func TableNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
