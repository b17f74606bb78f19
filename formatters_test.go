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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomoncle/selector"
	"github.com/tomoncle/selector/database"
	"github.com/tomoncle/selector/types"
)

func upper(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	return strings.ToUpper(s)
}

func TestInlineFormatter(t *testing.T) {
	setup(t)
	ctx := context.Background()

	c, err := selector.New[User](database.GetDB()).
		Where(types.Eq("name", "alice")).
		Format("name", upper).
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["name"] != "alice" {
		t.Fatalf("expected source field untouched, got %v", rows[0]["name"])
	}
	if rows[0]["name_formatted"] != "ALICE" {
		t.Fatalf("expected formatted sibling, got %v", rows[0]["name_formatted"])
	}
	// The typed items never carry derived fields.
	if c.Items[0].Name != "alice" {
		t.Fatalf("expected typed item untouched, got %q", c.Items[0].Name)
	}
}

func TestNamedFormatter(t *testing.T) {
	setup(t)
	ctx := context.Background()

	registry := selector.NewRegistry()
	registry.RegisterFormatter("upper", upper)

	c, err := selector.NewWithConfig[User](database.GetDB(), &selector.Config{Registry: registry}).
		Where(types.Eq("name", "bob")).
		FormatNamed("name", "upper").
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if rows[0]["name_formatted"] != "BOB" {
		t.Fatalf("expected named formatter applied, got %v", rows[0]["name_formatted"])
	}
}

func TestNamedFormatterMissing(t *testing.T) {
	setup(t)
	ctx := context.Background()

	_, err := selector.NewWithConfig[User](database.GetDB(), &selector.Config{
		Registry: selector.NewRegistry(),
	}).FormatNamed("name", "nope").Get(ctx)
	if !errors.Is(err, selector.ErrFormatterNotFound) {
		t.Fatalf("expected formatter not found, got %v", err)
	}
}

func TestNestedFormatter(t *testing.T) {
	setup(t)
	ctx := context.Background()

	c, err := selector.New[User](database.GetDB()).
		Where(types.Eq("id", 1)).
		With("Orders").
		Format("orders.date", upper).
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	nested, ok := rows[0]["orders"].([]interface{})
	if !ok {
		t.Fatalf("expected attached orders, got %T", rows[0]["orders"])
	}
	if len(nested) != 2 {
		t.Fatalf("expected 2 attached orders, got %d", len(nested))
	}
	for _, item := range nested {
		order, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("expected order object, got %T", item)
		}
		if order["date_formatted"] == nil || order["date_formatted"] == "" {
			t.Fatalf("expected formatted date on %v", order)
		}
	}
}

func TestFormatterPathTooDeep(t *testing.T) {
	setup(t)
	ctx := context.Background()

	_, err := selector.New[User](database.GetDB()).
		Format("orders.line.date", upper).
		Get(ctx)
	if !errors.Is(err, selector.ErrFormatterPathTooDeep) {
		t.Fatalf("expected path-too-deep error, got %v", err)
	}
}

func TestFormatterSkipsMissingField(t *testing.T) {
	setup(t)
	ctx := context.Background()

	c, err := selector.New[User](database.GetDB()).
		Where(types.Eq("name", "alice")).
		Format("nickname", upper).
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if _, exists := rows[0]["nickname_formatted"]; exists {
		t.Fatal("expected no derived field for a missing source field")
	}
}

func TestFormatterReplacedPerColumn(t *testing.T) {
	setup(t)
	ctx := context.Background()

	c, err := selector.New[User](database.GetDB()).
		Where(types.Eq("name", "carol")).
		Format("name", func(value interface{}) interface{} { return "first" }).
		Format("name", upper).
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if rows[0]["name_formatted"] != "CAROL" {
		t.Fatalf("expected the last registration to win, got %v", rows[0]["name_formatted"])
	}
}

func TestRowsWithoutFormatters(t *testing.T) {
	setup(t)
	ctx := context.Background()

	c, err := selector.New[User](database.GetDB()).
		Where(types.Eq("name", "alice")).
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "alice" {
		t.Fatalf("expected shaped rows without formatters, got %v", rows)
	}
}

func TestGlobalRegistryHelpers(t *testing.T) {
	setup(t)
	ctx := context.Background()

	selector.RegisterWhere("namedAlice", func(b *selector.Builder, args ...interface{}) {
		b.Where(types.Eq("name", "alice"))
	})
	selector.SetGlobalFormatter("globalUpper", upper)

	c, err := selector.New[User](database.GetDB()).
		Scope("whereNamedAlice").
		FormatNamed("name", "globalUpper").
		Get(ctx)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 row via global scope, got %d", c.Len())
	}
	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if rows[0]["name_formatted"] != "ALICE" {
		t.Fatalf("expected global formatter applied, got %v", rows[0]["name_formatted"])
	}
}
