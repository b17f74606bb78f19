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

package types

// Filter describes a single WHERE condition without committing to any SQL
// rendering. The concrete variants are Equality, Comparison, Membership,
// and QueryFilter; how each variant maps onto the query builder is the
// caller's concern.
type Filter interface {
	filterVariant()
}

// Equality matches rows whose column equals the given value.
type Equality struct {
	Column string
	Value  interface{}
}

// Comparison matches rows using an explicit operator, e.g. ">=", "<>", "LIKE".
// The operator is forwarded as-is; no validation happens here.
type Comparison struct {
	Column   string
	Operator string
	Value    interface{}
}

// Membership matches rows whose column value is contained in Values.
type Membership struct {
	Column string
	Values []interface{}
}

// QueryFilter describes a raw WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

func (Equality) filterVariant()     {}
func (Comparison) filterVariant()   {}
func (Membership) filterVariant()   {}
func (*QueryFilter) filterVariant() {}

// Eq creates an equality filter on the given column.
func Eq(column string, value interface{}) Equality {
	return Equality{Column: column, Value: value}
}

// Op creates a comparison filter with an explicit operator.
func Op(column string, operator string, value interface{}) Comparison {
	return Comparison{Column: column, Operator: operator, Value: value}
}

// In creates a set-membership filter on the given column.
func In(column string, values ...interface{}) Membership {
	return Membership{Column: column, Values: values}
}

// NewQueryFilter creates a raw query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}
