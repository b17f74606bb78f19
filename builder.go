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

package selector

import (
	"fmt"

	"github.com/tomoncle/selector/types"

	"github.com/uptrace/bun"
)

// Builder is the untyped chaining surface shared by every Selector. It wraps
// a single Bun select query and records column selection separately so that
// an overwriting select can discard prior columns before anything reaches
// the query builder. Registered named queries receive the Builder, so they
// can use exactly the methods callers chain directly.
//
// Builder methods never return errors; failures raised while chaining (an
// unknown named query, for example) are kept and surfaced by the terminal
// operations.
type Builder struct {
	query    *bun.SelectQuery
	registry *Registry

	columns        []string
	defaultColumns []string
	exprs          []columnExpr
	colsApplied    bool

	canceled bool
	err      error

	createdColumn string
	updatedColumn string

	eager      *EagerLoading
	formatters *Formatters
}

type columnExpr struct {
	expr string
	args []interface{}
}

func newBuilder(query *bun.SelectQuery, registry *Registry, createdColumn, updatedColumn string) *Builder {
	return &Builder{
		query:         query,
		registry:      registry,
		createdColumn: createdColumn,
		updatedColumn: updatedColumn,
	}
}

// Select appends columns to the current selection.
func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append(b.columns, columns...)
	return b
}

// SelectOnly discards any previously selected columns and expressions before
// selecting the given columns.
func (b *Builder) SelectOnly(columns ...string) *Builder {
	b.columns = b.columns[:0]
	b.exprs = b.exprs[:0]
	b.columns = append(b.columns, columns...)
	return b
}

// SelectExpr appends a raw column expression to the current selection.
func (b *Builder) SelectExpr(expr string, args ...interface{}) *Builder {
	b.exprs = append(b.exprs, columnExpr{expr: expr, args: args})
	return b
}

// IncludeTrashed makes the query return soft-deleted rows alongside live
// ones. The model must carry a Bun soft-delete column; Bun reports the
// failure otherwise.
func (b *Builder) IncludeTrashed() *Builder {
	b.query = b.query.WhereAllWithDeleted()
	return b
}

// OnlyTrashed restricts the query to soft-deleted rows.
func (b *Builder) OnlyTrashed() *Builder {
	b.query = b.query.WhereDeleted()
	return b
}

// Where adds a filter condition. See the types package for the available
// filter variants.
func (b *Builder) Where(filter types.Filter) *Builder {
	b.query = applyFilter(b.query, filter)
	return b
}

// WhereRaw adds a raw WHERE clause with positional arguments.
func (b *Builder) WhereRaw(schema string, args ...interface{}) *Builder {
	return b.Where(types.NewQueryFilter(schema, args...))
}

// WhereIn adds a set-membership condition on the given column.
func (b *Builder) WhereIn(column string, values ...interface{}) *Builder {
	return b.Where(types.In(column, values...))
}

// OfIDs restricts the query to rows whose id column is in the given values.
func (b *Builder) OfIDs(values ...interface{}) *Builder {
	return b.WhereIn("id", values...)
}

// OrderBy appends an ordering clause on the given column; asc=false orders
// descending.
func (b *Builder) OrderBy(column string, asc bool) *Builder {
	if asc {
		b.query = b.query.OrderExpr("? ASC", bun.Ident(column))
	} else {
		b.query = b.query.OrderExpr("? DESC", bun.Ident(column))
	}
	return b
}

// LatestFirst orders by the creation-time column, newest rows first.
func (b *Builder) LatestFirst() *Builder {
	return b.OrderBy(b.createdColumn, false)
}

// OldestFirst orders by the creation-time column, oldest rows first.
func (b *Builder) OldestFirst() *Builder {
	return b.OrderBy(b.createdColumn, true)
}

// LastModifiedFirst orders by the modification-time column, most recently
// modified rows first.
func (b *Builder) LastModifiedFirst() *Builder {
	return b.OrderBy(b.updatedColumn, false)
}

// LastModifiedLast orders by the modification-time column, most recently
// modified rows last.
func (b *Builder) LastModifiedLast() *Builder {
	return b.OrderBy(b.updatedColumn, true)
}

// Cancel marks the selector as canceled. Previously chained conditions are
// kept but become moot: a canceled fetch returns an empty collection without
// touching the database.
func (b *Builder) Cancel() *Builder {
	b.canceled = true
	return b
}

// Scope invokes a named query registered under the given name, binding this
// Builder. Unknown names are recorded and surfaced at fetch time.
func (b *Builder) Scope(name string, args ...interface{}) *Builder {
	fn, ok := b.registry.NamedQuery(name)
	if !ok {
		b.setErr(fmt.Errorf("%w: %s", ErrNamedQueryNotFound, name))
		return b
	}
	fn(b, args...)
	return b
}

// Eager returns the eager-loading helper, creating it on first access.
func (b *Builder) Eager() *EagerLoading {
	if b.eager == nil {
		b.eager = &EagerLoading{}
	}
	return b.eager
}

// Formatters returns the formatting helper, creating it on first access.
func (b *Builder) Formatters() *Formatters {
	if b.formatters == nil {
		b.formatters = &Formatters{registry: b.registry}
	}
	return b.formatters
}

// Canceled reports whether Cancel was called.
func (b *Builder) Canceled() bool { return b.canceled }

// Err returns the first error recorded while chaining, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// applyColumns resolves the recorded column selection onto the wrapped query
// exactly once: explicit columns win, the configured default list fills in
// when nothing was selected, and an empty resolution keeps the wildcard.
func (b *Builder) applyColumns() *bun.SelectQuery {
	if b.colsApplied {
		return b.query
	}
	b.colsApplied = true

	columns := b.columns
	if len(columns) == 0 && len(b.exprs) == 0 {
		columns = b.defaultColumns
	}
	if len(columns) > 0 {
		b.query = b.query.Column(columns...)
	}
	for _, e := range b.exprs {
		b.query = b.query.ColumnExpr(e.expr, e.args...)
	}
	return b.query
}

// applyFilter maps a filter variant onto the Bun query builder. Column names
// go through bun.Ident; values stay placeholder-bound. Raw filters pass
// through untouched.
func applyFilter(q *bun.SelectQuery, filter types.Filter) *bun.SelectQuery {
	switch f := filter.(type) {
	case types.Equality:
		return q.Where("? = ?", bun.Ident(f.Column), f.Value)
	case types.Comparison:
		return q.Where(fmt.Sprintf("? %s ?", f.Operator), bun.Ident(f.Column), f.Value)
	case types.Membership:
		return q.Where("? IN (?)", bun.Ident(f.Column), bun.In(f.Values))
	case *types.QueryFilter:
		return q.Where(f.Schema, f.Args...)
	default:
		return q
	}
}
