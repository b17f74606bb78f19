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
	"errors"
	"fmt"
	"strings"

	"github.com/tomoncle/selector/types"
)

var (
	// ErrFormatterNotFound is returned when a formatter registered by name
	// is missing from the registry at apply time.
	ErrFormatterNotFound = errors.New("formatter not found")

	// ErrFormatterPathTooDeep is returned for formatter columns nested more
	// than one relation deep. Only "field" and "relation.field" paths are
	// supported.
	ErrFormatterPathTooDeep = errors.New("formatter path supports at most one level of nesting")
)

// Formatters collects per-selector field formatting rules applied to shaped
// rows after the fetch. Each rule writes "<field>_formatted" beside the
// original field; originals are never overwritten. Entries are keyed by
// column path; re-adding a path replaces the prior entry.
//
// A column path is the field's JSON name, optionally prefixed with the JSON
// name of an eager-loaded relation ("orders.date"). Nested paths format
// every element of a relation slice, or the single object of a has-one
// relation. Formatting runs strictly after eager loading, so nested paths
// resolve against already-attached rows.
type Formatters struct {
	registry *Registry
	entries  []formatterEntry
}

type formatterEntry struct {
	column string
	fn     FormatFunc // inline formatter; nil when named
	name   string     // registry key; resolved at apply time
}

// Add upserts an inline formatter for the given column path.
func (f *Formatters) Add(column string, fn FormatFunc) *Formatters {
	return f.upsert(formatterEntry{column: column, fn: fn})
}

// AddNamed upserts a formatter for the given column path, resolved by name
// against the registry when applied. A missing name fails the fetch; it is
// not detected at registration time.
func (f *Formatters) AddNamed(column string, name string) *Formatters {
	return f.upsert(formatterEntry{column: column, name: name})
}

// Len returns the number of configured formatter entries.
func (f *Formatters) Len() int {
	return len(f.entries)
}

func (f *Formatters) upsert(entry formatterEntry) *Formatters {
	for i := range f.entries {
		if f.entries[i].column == entry.column {
			f.entries[i] = entry
			return f
		}
	}
	f.entries = append(f.entries, entry)
	return f
}

// apply runs every formatter entry against the shaped rows, mutating them in
// place.
func (f *Formatters) apply(rows []types.JsonObject) error {
	for _, entry := range f.entries {
		fn := entry.fn
		if fn == nil {
			var ok bool
			fn, ok = f.registry.Formatter(entry.name)
			if !ok {
				return fmt.Errorf("%w: %s", ErrFormatterNotFound, entry.name)
			}
		}

		segments := strings.Split(entry.column, ".")
		switch len(segments) {
		case 1:
			for _, row := range rows {
				formatField(row, segments[0], fn)
			}
		case 2:
			for _, row := range rows {
				switch nested := row[segments[0]].(type) {
				case []interface{}:
					for _, element := range nested {
						if m, ok := element.(map[string]interface{}); ok {
							formatField(m, segments[1], fn)
						}
					}
				case map[string]interface{}:
					formatField(nested, segments[1], fn)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrFormatterPathTooDeep, entry.column)
		}
	}
	return nil
}

// formatField writes the formatted sibling field. Rows lacking the source
// field are left untouched.
func formatField(row map[string]interface{}, field string, fn FormatFunc) {
	value, ok := row[field]
	if !ok {
		return
	}
	row[field+"_formatted"] = fn(value)
}
