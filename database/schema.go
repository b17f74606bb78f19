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
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates a table for every registered model, in priority
// order. Tables that already exist are left alone.
func CreateTables(ctx context.Context, db *bun.DB, logger Logger) error {
	for _, model := range GetRegisteredModels() {
		instance := model.Instance()
		_, err := db.NewCreateTable().
			Model(instance).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			if is, code := IsSqlError(err); is && code == ExistTableErr {
				continue
			}
			return fmt.Errorf("failed to create table for %T: %w", instance, err)
		}
		if logger != nil {
			logger.Debug("Table ensured", "model", fmt.Sprintf("%T", instance))
		}
	}
	return nil
}

// ResetTables drops and recreates the tables of every registered model, in
// priority order. Intended for tests and disposable environments.
func ResetTables(ctx context.Context, db *bun.DB, logger Logger) error {
	for _, model := range GetRegisteredModels() {
		instance := model.Instance()
		if err := db.ResetModel(ctx, instance); err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", instance, err)
		}
		if logger != nil {
			logger.Debug("Table reset", "model", fmt.Sprintf("%T", instance))
		}
	}
	return nil
}
