/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package selector provides reusable, named query selectors built on top of
// the Bun query builder. A Selector wraps one select query for one entity
// type and exposes chainable filtering, ordering, pagination, eager-loading,
// and field-formatting configuration; terminal methods materialize the
// result. SQL generation, execution, relation loading, and soft-delete
// semantics are Bun's.
package selector

import (
	"context"

	"github.com/tomoncle/selector/types"

	"github.com/uptrace/bun"
)

// Default column names for the creation and modification timestamps used by
// the ordering conveniences.
const (
	DefaultCreatedColumn = "created_at"
	DefaultUpdatedColumn = "updated_at"
)

// Config controls how a Selector is constructed. The zero value is usable:
// wildcard column selection, live rows only, default timestamp columns, and
// the package default registry.
type Config struct {
	// Columns is the explicit column selection. It wins over DefaultColumns.
	Columns []string
	// DefaultColumns is the selection used when no explicit columns were
	// given; empty means all columns.
	DefaultColumns []string
	// IncludeTrashed returns soft-deleted rows alongside live ones from the
	// start. The entity must carry a Bun soft-delete column.
	IncludeTrashed bool
	// CreatedColumn and UpdatedColumn override the timestamp column names
	// used by LatestFirst/OldestFirst and the modification orderings.
	CreatedColumn string
	UpdatedColumn string
	// Registry supplies named queries and named formatters; nil selects the
	// package default registry.
	Registry *Registry
}

// Selector is a fluent, single-use query facade for one entity type. Chain
// zero or more configuration calls, then call Get to materialize. A Selector
// materializes at most once: Get caches its collection and later calls
// return it unchanged.
type Selector[T any] struct {
	db *bun.DB
	b  *Builder

	items  []*T
	page   *types.PageRequest
	result *Collection[T]
}

// New returns a Selector over the entity type T with default configuration.
func New[T any](db *bun.DB) *Selector[T] {
	return NewWithConfig[T](db, nil)
}

// NewWithConfig returns a Selector over the entity type T using the given
// configuration.
func NewWithConfig[T any](db *bun.DB, cfg *Config) *Selector[T] {
	if cfg == nil {
		cfg = &Config{}
	}
	registry := cfg.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	createdColumn := cfg.CreatedColumn
	if createdColumn == "" {
		createdColumn = DefaultCreatedColumn
	}
	updatedColumn := cfg.UpdatedColumn
	if updatedColumn == "" {
		updatedColumn = DefaultUpdatedColumn
	}

	s := &Selector[T]{db: db}
	s.b = newBuilder(db.NewSelect().Model(&s.items), registry, createdColumn, updatedColumn)
	if len(cfg.Columns) > 0 {
		s.b.Select(cfg.Columns...)
	}
	s.b.defaultColumns = cfg.DefaultColumns
	if cfg.IncludeTrashed {
		s.b.IncludeTrashed()
	}
	return s
}

// Builder returns the untyped chaining core, the surface named queries
// operate on.
func (s *Selector[T]) Builder() *Builder { return s.b }

// Select appends columns to the current selection.
func (s *Selector[T]) Select(columns ...string) *Selector[T] {
	s.b.Select(columns...)
	return s
}

// SelectOnly discards any previously selected columns before selecting the
// given ones.
func (s *Selector[T]) SelectOnly(columns ...string) *Selector[T] {
	s.b.SelectOnly(columns...)
	return s
}

// SelectExpr appends a raw column expression to the selection.
func (s *Selector[T]) SelectExpr(expr string, args ...interface{}) *Selector[T] {
	s.b.SelectExpr(expr, args...)
	return s
}

// IncludeTrashed makes the query return soft-deleted rows alongside live
// ones.
func (s *Selector[T]) IncludeTrashed() *Selector[T] {
	s.b.IncludeTrashed()
	return s
}

// OnlyTrashed restricts the query to soft-deleted rows.
func (s *Selector[T]) OnlyTrashed() *Selector[T] {
	s.b.OnlyTrashed()
	return s
}

// Where adds a filter condition.
func (s *Selector[T]) Where(filter types.Filter) *Selector[T] {
	s.b.Where(filter)
	return s
}

// WhereRaw adds a raw WHERE clause with positional arguments.
func (s *Selector[T]) WhereRaw(schema string, args ...interface{}) *Selector[T] {
	s.b.WhereRaw(schema, args...)
	return s
}

// WhereIn adds a set-membership condition on the given column.
func (s *Selector[T]) WhereIn(column string, values ...interface{}) *Selector[T] {
	s.b.WhereIn(column, values...)
	return s
}

// OfIDs restricts the query to rows whose id is in the given values.
func (s *Selector[T]) OfIDs(values ...interface{}) *Selector[T] {
	s.b.OfIDs(values...)
	return s
}

// OrderBy appends an ordering clause; asc=false orders descending.
func (s *Selector[T]) OrderBy(column string, asc bool) *Selector[T] {
	s.b.OrderBy(column, asc)
	return s
}

// LatestFirst orders by the creation-time column, newest rows first.
func (s *Selector[T]) LatestFirst() *Selector[T] {
	s.b.LatestFirst()
	return s
}

// OldestFirst orders by the creation-time column, oldest rows first.
func (s *Selector[T]) OldestFirst() *Selector[T] {
	s.b.OldestFirst()
	return s
}

// LastModifiedFirst orders by the modification-time column, most recently
// modified rows first.
func (s *Selector[T]) LastModifiedFirst() *Selector[T] {
	s.b.LastModifiedFirst()
	return s
}

// LastModifiedLast orders by the modification-time column, most recently
// modified rows last.
func (s *Selector[T]) LastModifiedLast() *Selector[T] {
	s.b.LastModifiedLast()
	return s
}

// Cancel marks the selector as canceled: Get returns an empty collection
// without executing the query, skipping eager loading and formatting. Count
// is unaffected.
func (s *Selector[T]) Cancel() *Selector[T] {
	s.b.Cancel()
	return s
}

// Scope invokes a named query registered under the given name.
func (s *Selector[T]) Scope(name string, args ...interface{}) *Selector[T] {
	s.b.Scope(name, args...)
	return s
}

// Paginate requests a paginated fetch of the first page with the given page
// size.
func (s *Selector[T]) Paginate(pageSize int) *Selector[T] {
	s.page = types.NewPageRequest(1, pageSize)
	return s
}

// PaginateAt requests a paginated fetch of the given page.
func (s *Selector[T]) PaginateAt(page, pageSize int) *Selector[T] {
	s.page = types.NewPageRequest(page, pageSize)
	return s
}

// PaginateWithParams requests a paginated fetch whose generated page links
// carry the given extra query parameters.
func (s *Selector[T]) PaginateWithParams(page, pageSize int, params map[string]string) *Selector[T] {
	s.page = types.NewPageRequestWithParams(page, pageSize, params)
	return s
}

// With eager-loads a relation, optionally restricted to the given columns.
func (s *Selector[T]) With(relation string, columns ...string) *Selector[T] {
	s.b.Eager().AddName(relation, columns...)
	return s
}

// WithRelation eager-loads a relation with full control over columns,
// filter, and trashed inclusion.
func (s *Selector[T]) WithRelation(rel Relation) *Selector[T] {
	s.b.Eager().Add(rel)
	return s
}

// Format registers an inline formatter for the given column path.
func (s *Selector[T]) Format(column string, fn FormatFunc) *Selector[T] {
	s.b.Formatters().Add(column, fn)
	return s
}

// FormatNamed registers a formatter resolved by name from the registry when
// the fetch runs.
func (s *Selector[T]) FormatNamed(column string, name string) *Selector[T] {
	s.b.Formatters().AddNamed(column, name)
	return s
}

// Get materializes the selector. A canceled selector yields an empty
// collection without touching the database. A paginated selector counts
// first, then fetches the requested page; otherwise all matching rows are
// fetched. Eager-loaded relations are attached by Bun during the fetch, and
// the formatting pass runs afterwards so nested formatter paths resolve
// against attached rows. The materialized collection is cached; later calls
// return it as is.
func (s *Selector[T]) Get(ctx context.Context) (*Collection[T], error) {
	if s.result != nil {
		return s.result, nil
	}
	if err := s.b.Err(); err != nil {
		return nil, err
	}
	if s.b.Canceled() {
		s.result = &Collection[T]{Items: make([]*T, 0)}
		return s.result, nil
	}

	query := s.b.applyColumns()
	if s.b.eager != nil {
		query = s.b.eager.apply(query)
	}

	var meta *types.PageMeta
	if s.page != nil {
		total, err := query.Count(ctx)
		if err != nil {
			return nil, err
		}
		meta = types.NewPageMeta(s.page, total)
		if total > 0 {
			err = query.
				Offset(s.page.GetOffset()).
				Limit(s.page.GetPageSize()).
				Scan(ctx)
			if err != nil {
				return nil, err
			}
		}
	} else {
		if err := query.Scan(ctx); err != nil {
			return nil, err
		}
	}

	collection := &Collection[T]{Items: s.items, Meta: meta}
	if collection.Items == nil {
		collection.Items = make([]*T, 0)
	}
	if s.b.formatters != nil && s.b.formatters.Len() > 0 {
		rows, err := shapeRows(collection.Items)
		if err != nil {
			return nil, err
		}
		if err := s.b.formatters.apply(rows); err != nil {
			return nil, err
		}
		collection.rows = rows
	}

	s.result = collection
	return collection, nil
}

// Count executes a count-only query for the current builder state. It runs
// even when the selector was canceled, and ignores pagination.
func (s *Selector[T]) Count(ctx context.Context) (int, error) {
	if err := s.b.Err(); err != nil {
		return 0, err
	}
	return s.b.query.Count(ctx)
}

// IsEmpty reports whether no rows match the current builder state.
func (s *Selector[T]) IsEmpty(ctx context.Context) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// IsNotEmpty reports whether at least one row matches the current builder
// state.
func (s *Selector[T]) IsNotEmpty(ctx context.Context) (bool, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// ToSQL renders the SQL text for the current builder state without
// executing it. Eager-loaded relations are separate queries and do not
// appear.
func (s *Selector[T]) ToSQL() string {
	return s.b.applyColumns().String()
}
