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

package repository

import (
	"context"

	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"
)

// Repository defines basic CRUD operations for a generic entity type. The id
// arguments accept a raw string or a types.UniqueEntityID (see types.IDString).
type Repository[E entity.Entity] interface {
	Insert(ctx context.Context, e E) error

	FindByID(ctx context.Context, id any) (E, error)

	FindAll(ctx context.Context) ([]E, error)

	Update(ctx context.Context, e E) error

	Delete(ctx context.Context, id any) error
}

// SearchableRepository adds a parametrized search to Repository. In and Out
// let each entity type pick its own query and result shapes.
type SearchableRepository[E entity.Entity, In any, Out any] interface {
	Repository[E]
	Search(ctx context.Context, input In) (Out, error)
}

// Searchable is the common instantiation of SearchableRepository.
type Searchable[E entity.Entity] interface {
	SearchableRepository[E, types.SearchParams, *types.SearchResult[E]]
}
