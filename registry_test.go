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

package selector_test

import (
	"testing"

	"github.com/tomoncle/selector"
)

func TestRegisterWherePrefixesName(t *testing.T) {
	registry := selector.NewRegistry()
	registry.RegisterWhere("active", func(b *selector.Builder, args ...interface{}) {})

	if _, ok := registry.NamedQuery("whereActive"); !ok {
		t.Fatal("expected lookup under the prefixed name")
	}
	if _, ok := registry.NamedQuery("active"); ok {
		t.Fatal("expected no lookup under the bare name")
	}
}

func TestRegisterQueryReplaces(t *testing.T) {
	registry := selector.NewRegistry()
	calls := ""
	registry.RegisterQuery("mine", func(b *selector.Builder, args ...interface{}) { calls += "first" })
	registry.RegisterQuery("mine", func(b *selector.Builder, args ...interface{}) { calls += "second" })

	fn, ok := registry.NamedQuery("mine")
	if !ok {
		t.Fatal("expected named query registered")
	}
	fn(nil)
	if calls != "second" {
		t.Fatalf("expected re-registration to replace, got %q", calls)
	}
}

func TestFormatterLookup(t *testing.T) {
	registry := selector.NewRegistry()
	registry.RegisterFormatter("upper", upper)

	fn, ok := registry.Formatter("upper")
	if !ok {
		t.Fatal("expected formatter registered")
	}
	if fn("ok") != "OK" {
		t.Fatal("expected registered function returned")
	}
	if _, ok := registry.Formatter("missing"); ok {
		t.Fatal("expected miss for unknown formatter")
	}
}
