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
	"slices"

	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"
)

// InMemoryRepository keeps entities in an ordered slice for the lifetime of
// the repository. Identity lookups are linear scans. It is not safe for
// concurrent mutation; callers that share an instance must serialize access.
type InMemoryRepository[E entity.Entity] struct {
	items []E
}

var _ Repository[entity.Entity] = (*InMemoryRepository[entity.Entity])(nil)

// NewInMemoryRepository returns an empty repository.
func NewInMemoryRepository[E entity.Entity]() *InMemoryRepository[E] {
	return &InMemoryRepository[E]{items: make([]E, 0)}
}

// Insert appends e. Identities are not checked for duplicates.
func (r *InMemoryRepository[E]) Insert(_ context.Context, e E) error {
	r.items = append(r.items, e)
	return nil
}

func (r *InMemoryRepository[E]) FindByID(_ context.Context, id any) (E, error) {
	i, err := r.indexOf(types.IDString(id))
	if err != nil {
		var zero E
		return zero, err
	}
	return r.items[i], nil
}

// FindAll returns a copy of the stored entities in insertion order.
func (r *InMemoryRepository[E]) FindAll(_ context.Context) ([]E, error) {
	return slices.Clone(r.items), nil
}

// Update replaces the stored entity sharing e's identity, keeping its position.
func (r *InMemoryRepository[E]) Update(_ context.Context, e E) error {
	i, err := r.indexOf(e.ID())
	if err != nil {
		return err
	}
	r.items[i] = e
	return nil
}

// Delete removes the first entity matching id.
func (r *InMemoryRepository[E]) Delete(_ context.Context, id any) error {
	i, err := r.indexOf(types.IDString(id))
	if err != nil {
		return err
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// Len returns the number of stored entities.
func (r *InMemoryRepository[E]) Len() int {
	return len(r.items)
}

func (r *InMemoryRepository[E]) snapshot() []E {
	return slices.Clone(r.items)
}

func (r *InMemoryRepository[E]) indexOf(key string) (int, error) {
	i := slices.IndexFunc(r.items, func(e E) bool { return e.ID() == key })
	if i < 0 {
		return -1, NewNotFoundError(key)
	}
	return i, nil
}
