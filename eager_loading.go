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
	"github.com/tomoncle/selector/types"

	"github.com/uptrace/bun"
)

// Relation describes one eager-loaded relation: the Bun relation field name,
// an optional column restriction (all columns when empty), an optional
// filter on the related rows, and whether soft-deleted related rows are
// included.
type Relation struct {
	Name        string
	Columns     []string
	Filter      types.Filter
	WithTrashed bool
}

// EagerLoading collects the relations a selector loads alongside its primary
// rows. Entries are keyed by relation name; re-adding a name replaces the
// prior entry. Bun issues the relation fetches as follow-up queries after
// the primary fetch and attaches the rows to the parent models.
type EagerLoading struct {
	entries []Relation
}

// Add upserts a relation entry.
func (e *EagerLoading) Add(rel Relation) *EagerLoading {
	for i := range e.entries {
		if e.entries[i].Name == rel.Name {
			e.entries[i] = rel
			return e
		}
	}
	e.entries = append(e.entries, rel)
	return e
}

// AddName upserts a relation by name with an optional column restriction.
func (e *EagerLoading) AddName(name string, columns ...string) *EagerLoading {
	return e.Add(Relation{Name: name, Columns: columns})
}

// Len returns the number of configured relations.
func (e *EagerLoading) Len() int {
	return len(e.entries)
}

// apply wires every entry into the query as a Bun relation with a
// customization callback constraining columns, filter, and trashed
// inclusion.
func (e *EagerLoading) apply(q *bun.SelectQuery) *bun.SelectQuery {
	for _, entry := range e.entries {
		rel := entry
		q = q.Relation(rel.Name, func(sq *bun.SelectQuery) *bun.SelectQuery {
			if len(rel.Columns) > 0 {
				sq = sq.Column(rel.Columns...)
			}
			if rel.Filter != nil {
				sq = applyFilter(sq, rel.Filter)
			}
			if rel.WithTrashed {
				sq = sq.WhereAllWithDeleted()
			}
			return sq
		})
	}
	return q
}
