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
	"encoding/json"

	"github.com/tomoncle/selector/types"
)

// Collection holds the materialized result of a fetch: the typed entities,
// pagination metadata when the fetch was paginated, and the shaped row view
// carrying formatted fields.
type Collection[T any] struct {
	Items []*T
	Meta  *types.PageMeta

	rows []types.JsonObject
}

// Len returns the number of fetched entities.
func (c *Collection[T]) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether the collection holds no entities.
func (c *Collection[T]) IsEmpty() bool {
	return len(c.Items) == 0
}

// Rows returns the shaped row view of the collection: one JsonObject per
// entity, with field names taken from the entities' JSON tags and
// eager-loaded relations nested under their JSON keys. The formatting pass
// builds this view eagerly; otherwise it is shaped on first access.
func (c *Collection[T]) Rows() ([]types.JsonObject, error) {
	if c.rows == nil {
		rows, err := shapeRows(c.Items)
		if err != nil {
			return nil, err
		}
		c.rows = rows
	}
	return c.rows, nil
}

// shapeRows converts typed entities into generic field maps through a JSON
// round-trip, so relation structs become nested maps and slices.
func shapeRows[T any](items []*T) ([]types.JsonObject, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	rows := make([]types.JsonObject, 0, len(items))
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
