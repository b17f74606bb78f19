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

package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	content := `
connection:
  type: sqlite
  dbname: ":memory:"
  max_open_conns: 5
  conn_max_lifetime: 1h
  connect_timeout: 30
  slow_query_time: 250ms
  enable_query_log: true
schema:
  create_tables_on_startup: true
`
	path := filepath.Join(t.TempDir(), "database.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config error: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config error: %v", err)
	}
	conn := cfg.ConnectionConfig
	if conn.Type != "sqlite" || conn.DBName != ":memory:" {
		t.Fatalf("unexpected connection config: %+v", conn)
	}
	if conn.MaxOpenConns != 5 || !conn.EnableQueryLog {
		t.Fatalf("unexpected pool config: %+v", conn)
	}
	if conn.ConnMaxLifetime.Std() != time.Hour {
		t.Fatalf("expected duration string parsed, got %v", conn.ConnMaxLifetime)
	}
	// Bare integers are seconds, matching the DB_* env override convention.
	if conn.ConnectTimeout.Std() != 30*time.Second {
		t.Fatalf("expected integer seconds parsed, got %v", conn.ConnectTimeout)
	}
	if conn.SlowQueryTime.Std() != 250*time.Millisecond {
		t.Fatalf("expected sub-second duration parsed, got %v", conn.SlowQueryTime)
	}
	if !cfg.SchemaConfig.CreateTablesOnStartup {
		t.Fatal("expected schema creation enabled")
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	content := `
connection:
  type: sqlite
  conn_max_lifetime: soon
`
	path := filepath.Join(t.TempDir(), "database.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config error: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestModelRegistryOrdersByPriority(t *testing.T) {
	registry := newModelRegistry()
	registry.Register(NewModelAdapter("second", 2))
	registry.Register(NewModelAdapter("first", 1))
	registry.Register(NewModelAdapter("third", 3))

	models := registry.Models()
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}
	for i, want := range []string{"first", "second", "third"} {
		if models[i].Instance() != want {
			t.Fatalf("position %d: expected %q, got %v", i, want, models[i].Instance())
		}
	}
}
