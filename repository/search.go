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
	"strings"

	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"
)

// FilterFunc reports whether item matches a non-empty filter value.
type FilterFunc[E any] func(item E, filter string) bool

// CompareFunc orders two items ascending, returning a negative number when
// a < b, zero when equal and a positive number when a > b.
type CompareFunc[E any] func(a, b E) int

// SearchOption configures a SearchableInMemoryRepository.
type SearchOption[E any] func(*searchConfig[E])

type searchConfig[E any] struct {
	sortable    map[string]CompareFunc[E]
	defaultSort CompareFunc[E]
}

// WithSortableField allows sorting by name using cmp.
func WithSortableField[E any](name string, cmp CompareFunc[E]) SearchOption[E] {
	return func(c *searchConfig[E]) {
		if name != "" && cmp != nil {
			c.sortable[name] = cmp
		}
	}
}

// WithDefaultSort sets the ordering used when no sortable field is requested.
// cmp must already encode the desired direction.
func WithDefaultSort[E any](cmp CompareFunc[E]) SearchOption[E] {
	return func(c *searchConfig[E]) { c.defaultSort = cmp }
}

// SearchableInMemoryRepository extends InMemoryRepository with a search that
// filters, then sorts, then paginates the stored entities.
type SearchableInMemoryRepository[E entity.Entity] struct {
	*InMemoryRepository[E]
	filter FilterFunc[E]
	config searchConfig[E]
}

var _ Searchable[entity.Entity] = (*SearchableInMemoryRepository[entity.Entity])(nil)

// NewSearchableInMemoryRepository returns an empty searchable repository. A
// nil filter matches every item.
func NewSearchableInMemoryRepository[E entity.Entity](filter FilterFunc[E], opts ...SearchOption[E]) *SearchableInMemoryRepository[E] {
	cfg := searchConfig[E]{sortable: make(map[string]CompareFunc[E])}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &SearchableInMemoryRepository[E]{
		InMemoryRepository: NewInMemoryRepository[E](),
		filter:             filter,
		config:             cfg,
	}
}

// SortableFields lists the field names accepted by Search for sorting.
func (r *SearchableInMemoryRepository[E]) SortableFields() []string {
	names := make([]string, 0, len(r.config.sortable))
	for name := range r.config.sortable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Search runs the filter, sort and paginate stages in that order. A page past
// the end of the data yields an empty page.
func (r *SearchableInMemoryRepository[E]) Search(_ context.Context, params types.SearchParams) (*types.SearchResult[E], error) {
	filtered := r.applyFilter(r.snapshot(), params.Filter())
	sorted := r.applySort(filtered, params.Sort(), params.SortDir())
	page := applyPaginate(sorted, params.Offset(), params.PerPage())
	return types.NewSearchResult(page, len(filtered), params), nil
}

func (r *SearchableInMemoryRepository[E]) applyFilter(items []E, filter string) []E {
	if filter == "" || r.filter == nil {
		return items
	}
	out := make([]E, 0, len(items))
	for _, item := range items {
		if r.filter(item, filter) {
			out = append(out, item)
		}
	}
	return out
}

func (r *SearchableInMemoryRepository[E]) applySort(items []E, sort string, dir types.SortDirection) []E {
	cmp, ok := r.config.sortable[sort]
	if sort == "" || !ok {
		if r.config.defaultSort == nil {
			return items
		}
		out := slices.Clone(items)
		slices.SortStableFunc(out, r.config.defaultSort)
		return out
	}
	out := slices.Clone(items)
	if dir == types.SortDesc {
		slices.SortStableFunc(out, func(a, b E) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// applyPaginate slices one page starting at offset. Pages past the end are
// empty; offset and perPage may be arbitrarily large.
func applyPaginate[E any](items []E, offset, perPage int) []E {
	if offset < 0 || offset >= len(items) {
		return make([]E, 0)
	}
	end := offset + min(perPage, len(items)-offset)
	return slices.Clone(items[offset:end])
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
