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
	"sync"
	"unicode"
	"unicode/utf8"
)

// ErrNamedQueryNotFound is returned when a Scope call references a name with
// no registered named query.
var ErrNamedQueryNotFound = errors.New("named query not found")

// NamedQuery is a reusable query fragment invoked by name through
// Selector.Scope. It receives the selector's Builder and may chain any of
// its methods.
type NamedQuery func(b *Builder, args ...interface{})

// FormatFunc transforms a fetched field value into its formatted
// counterpart.
type FormatFunc func(value interface{}) interface{}

// Registry stores named queries and named formatters shared by selectors.
// Registration replaces silently; entries are never removed. The intended
// usage is register-at-startup, read-thereafter; concurrent reads are safe
// and writes are serialized, but registering while queries are in flight is
// the caller's responsibility to avoid.
type Registry struct {
	mu         sync.RWMutex
	queries    map[string]NamedQuery
	formatters map[string]FormatFunc
}

// NewRegistry returns an empty registry. Selectors use the package default
// registry unless configured with their own, which keeps tests free of
// cross-test leakage.
func NewRegistry() *Registry {
	return &Registry{
		queries:    make(map[string]NamedQuery),
		formatters: make(map[string]FormatFunc),
	}
}

// RegisterQuery registers a named query under the given name.
func (r *Registry) RegisterQuery(name string, fn NamedQuery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries[name] = fn
}

// RegisterWhere registers a named query under a "where"-prefixed name:
// RegisterWhere("active", fn) makes the query callable as
// Scope("whereActive").
func (r *Registry) RegisterWhere(name string, fn NamedQuery) {
	r.RegisterQuery(whereName(name), fn)
}

// NamedQuery looks up a registered named query.
func (r *Registry) NamedQuery(name string) (NamedQuery, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.queries[name]
	return fn, ok
}

// RegisterFormatter registers a named formatter under the given name.
func (r *Registry) RegisterFormatter(name string, fn FormatFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[name] = fn
}

// Formatter looks up a registered named formatter.
func (r *Registry) Formatter(name string) (FormatFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.formatters[name]
	return fn, ok
}

func whereName(name string) string {
	if name == "" {
		return "where"
	}
	first, size := utf8.DecodeRuneInString(name)
	return "where" + string(unicode.ToUpper(first)) + name[size:]
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by selectors that
// were not configured with their own.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterQuery registers a named query in the default registry.
func RegisterQuery(name string, fn NamedQuery) {
	defaultRegistry.RegisterQuery(name, fn)
}

// RegisterWhere registers a "where"-prefixed named query in the default
// registry.
func RegisterWhere(name string, fn NamedQuery) {
	defaultRegistry.RegisterWhere(name, fn)
}

// SetGlobalFormatter registers a named formatter in the default registry,
// replacing any prior entry under that name.
func SetGlobalFormatter(name string, fn FormatFunc) {
	defaultRegistry.RegisterFormatter(name, fn)
}
