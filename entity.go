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
	"context"
	"sync"

	"github.com/tomoncle/selector/database"
	"github.com/tomoncle/selector/repository"
	"github.com/tomoncle/selector/types"

	"github.com/uptrace/bun"
)

// Entity is a per-entity convenience handle combining CRUD operations with
// selector creation, backed by the global database connection.
type Entity[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// All returns all entities.
	All(ctx context.Context) ([]*T, error)

	// List returns entities that match the provided raw filter.
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Delete removes an entity by its identifier, soft-deleting when the
	// entity supports it.
	Delete(ctx context.Context, id any) error

	// ForceDelete removes an entity permanently, bypassing soft deletion.
	ForceDelete(ctx context.Context, id any) error

	// Select returns a fresh Selector for the entity with default
	// configuration.
	Select() *Selector[T]

	// SelectWith returns a fresh Selector using the given configuration.
	SelectWith(cfg *Config) *Selector[T]

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery
}

type baseEntityImpl[T any] struct {
	repo repository.Repository[T]
	db   *bun.DB
	once sync.Once
}

// NewEntity returns a default Entity implementation using the generic
// repository backed by the global database connection.
func NewEntity[T any]() Entity[T] {
	return &baseEntityImpl[T]{}
}

func (e *baseEntityImpl[T]) baseRepo() repository.Repository[T] {
	e.once.Do(func() {
		e.db = database.GetDB()
		e.repo = repository.NewRepository[T](e.db)
	})
	return e.repo
}

func (e *baseEntityImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	return e.baseRepo().GetOne(ctx, id)
}

func (e *baseEntityImpl[T]) All(ctx context.Context) ([]*T, error) {
	return e.baseRepo().GetAll(ctx)
}

func (e *baseEntityImpl[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	return e.baseRepo().List(ctx, filter)
}

func (e *baseEntityImpl[T]) Save(ctx context.Context, model ...*T) error {
	return e.baseRepo().Create(ctx, model...)
}

func (e *baseEntityImpl[T]) Update(ctx context.Context, model *T) error {
	return e.baseRepo().Update(ctx, model)
}

func (e *baseEntityImpl[T]) Delete(ctx context.Context, id any) error {
	return e.baseRepo().Delete(ctx, id)
}

func (e *baseEntityImpl[T]) ForceDelete(ctx context.Context, id any) error {
	return e.baseRepo().ForceDelete(ctx, id)
}

func (e *baseEntityImpl[T]) Select() *Selector[T] {
	e.baseRepo()
	return New[T](e.db)
}

func (e *baseEntityImpl[T]) SelectWith(cfg *Config) *Selector[T] {
	e.baseRepo()
	return NewWithConfig[T](e.db, cfg)
}

func (e *baseEntityImpl[T]) SelectBuilder() *bun.SelectQuery {
	return e.baseRepo().NewSelect()
}
