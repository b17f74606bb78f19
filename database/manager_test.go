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
	"context"
	"testing"
	"time"
)

func newTestManager(t *testing.T) AbstractDatabaseManager {
	t.Helper()
	manager := NewDatabaseManager(&ConnectionConfig{
		Type:           "sqlite",
		DBName:         ":memory:",
		ConnectTimeout: Duration(5 * time.Second),
	})
	if err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("connect error: %v", err)
	}
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager
}

func TestManagerConnectAndPing(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	if err := manager.Ping(ctx); err != nil {
		t.Fatalf("ping error: %v", err)
	}
	// Connecting an already-connected manager is a no-op.
	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("repeated connect error: %v", err)
	}
	if manager.GetDB() == nil || manager.GetSQLDB() == nil {
		t.Fatal("expected live handles after connect")
	}
}

func TestManagerHealthCheck(t *testing.T) {
	manager := newTestManager(t)

	status := manager.HealthCheck(context.Background())
	if !status.Healthy || !status.Connected {
		t.Fatalf("expected healthy status, got %+v", status)
	}
	if status.LastError != "" {
		t.Fatalf("expected no error recorded, got %q", status.LastError)
	}
	if status.MaxOpenConns != 1 {
		t.Fatalf("expected single-connection sqlite pool, got %d", status.MaxOpenConns)
	}
}

func TestManagerHealthCheckUnconnected(t *testing.T) {
	manager := NewDatabaseManager(nil)

	status := manager.HealthCheck(context.Background())
	if status.Healthy || status.Connected {
		t.Fatalf("expected unhealthy status, got %+v", status)
	}
	if status.LastError == "" {
		t.Fatal("expected an error recorded for an unconnected manager")
	}
	if err := manager.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail before connect")
	}
}

func TestManagerStats(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.Ping(context.Background()); err != nil {
		t.Fatalf("ping error: %v", err)
	}
	stats := manager.GetStats()
	if stats.MaxOpenConns != 1 {
		t.Fatalf("expected single-connection sqlite pool, got %+v", stats)
	}
	if stats.OpenConns < 1 {
		t.Fatalf("expected an open connection after ping, got %+v", stats)
	}
}

func TestManagerReconnect(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	if err := manager.Reconnect(ctx); err != nil {
		t.Fatalf("reconnect error: %v", err)
	}
	if err := manager.Ping(ctx); err != nil {
		t.Fatalf("ping after reconnect error: %v", err)
	}

	status := manager.HealthCheck(ctx)
	if !status.Healthy {
		t.Fatalf("expected healthy status after reconnect, got %+v", status)
	}
}

func TestManagerDisconnect(t *testing.T) {
	manager := newTestManager(t)

	if err := manager.Disconnect(); err != nil {
		t.Fatalf("disconnect error: %v", err)
	}
	if manager.GetDB() != nil {
		t.Fatal("expected nil handle after disconnect")
	}
	// Disconnecting twice is harmless.
	if err := manager.Disconnect(); err != nil {
		t.Fatalf("repeated disconnect error: %v", err)
	}
}

func TestManagerUnsupportedType(t *testing.T) {
	manager := NewDatabaseManager(&ConnectionConfig{Type: "oracle"})
	if err := manager.Connect(context.Background()); err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}
