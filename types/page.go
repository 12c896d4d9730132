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

package types

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

// SearchParams describes the page, ordering and filter of a search. Values are
// normalized when the params are built and never fail: a page or per-page
// below one falls back to its default, an empty sort clears the direction, and
// an unknown direction becomes ascending.
type SearchParams struct {
	page    int
	perPage int
	sort    string
	sortDir SortDirection
	filter  string
}

// SearchOption sets one raw field before normalization.
type SearchOption func(*searchInput)

type searchInput struct {
	page    int
	perPage int
	sort    string
	sortDir string
	filter  string
}

func WithPage(page int) SearchOption {
	return func(in *searchInput) { in.page = page }
}

func WithPerPage(perPage int) SearchOption {
	return func(in *searchInput) { in.perPage = perPage }
}

// WithSort sets the sort field and direction ("asc" or "desc").
func WithSort(field string, dir string) SearchOption {
	return func(in *searchInput) {
		in.sort = field
		in.sortDir = dir
	}
}

func WithFilter(filter string) SearchOption {
	return func(in *searchInput) { in.filter = filter }
}

// NewSearchParams builds normalized search params from the given options.
func NewSearchParams(opts ...SearchOption) SearchParams {
	in := searchInput{page: DefaultPage, perPage: DefaultPerPage}
	for _, opt := range opts {
		if opt != nil {
			opt(&in)
		}
	}
	return in.normalize()
}

func (in searchInput) normalize() SearchParams {
	p := SearchParams{
		page:    in.page,
		perPage: in.perPage,
		sort:    in.sort,
		filter:  in.filter,
	}
	if p.page < 1 {
		p.page = DefaultPage
	}
	if p.perPage < 1 {
		p.perPage = DefaultPerPage
	}
	if p.sort == "" {
		p.sortDir = SortNone
	} else if dir := ParseSortDirection(in.sortDir); dir.IsValid() {
		p.sortDir = dir
	} else {
		p.sortDir = SortAsc
	}
	return p
}

// Page returns the requested page, DefaultPage when it is below one.
func (p SearchParams) Page() int {
	if p.page < 1 {
		return DefaultPage
	}
	return p.page
}

// PerPage returns the page size, DefaultPerPage when it is below one.
func (p SearchParams) PerPage() int {
	if p.perPage < 1 {
		return DefaultPerPage
	}
	return p.perPage
}

// Sort returns the requested sort field, or "" when none was requested.
func (p SearchParams) Sort() string { return p.sort }

func (p SearchParams) SortDir() SortDirection { return p.sortDir }

// Filter returns the requested filter, or "" when none was requested.
func (p SearchParams) Filter() string { return p.filter }

func (p SearchParams) HasSort() bool { return p.sort != "" }

func (p SearchParams) HasFilter() bool { return p.filter != "" }

// Offset is the zero-based index of the first item on the requested page. It
// saturates at math.MaxInt instead of overflowing.
func (p SearchParams) Offset() int {
	page, perPage := p.Page(), p.PerPage()
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

// SearchResult holds one page of search results along with the metadata
// needed to rebuild pagination links.
type SearchResult[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
	LastPage    int
	Sort        string
	SortDir     SortDirection
	Filter      string
}

// NewSearchResult wraps a page of items. total is the item count after
// filtering and before pagination.
func NewSearchResult[E any](items []E, total int, params SearchParams) *SearchResult[E] {
	if items == nil {
		items = make([]E, 0)
	}
	lastPage := 1
	if perPage := params.PerPage(); total > 0 {
		lastPage = total / perPage
		if total%perPage != 0 {
			lastPage++
		}
	}
	return &SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: params.Page(),
		PerPage:     params.PerPage(),
		LastPage:    lastPage,
		Sort:        params.Sort(),
		SortDir:     params.SortDir(),
		Filter:      params.Filter(),
	}
}

type dictExporter interface {
	ToDict() JsonObject
}

// ToDict exports the envelope. Items that know how to export themselves are
// rendered as a JsonArray, otherwise they are passed through as-is.
func (r *SearchResult[E]) ToDict() JsonObject {
	var items interface{} = r.Items
	exported := make(JsonArray, 0, len(r.Items))
	for _, item := range r.Items {
		d, ok := any(item).(dictExporter)
		if !ok {
			exported = nil
			break
		}
		exported = append(exported, d.ToDict())
	}
	if exported != nil {
		items = exported
	}
	return JsonObject{
		"items":        items,
		"total":        r.Total,
		"current_page": r.CurrentPage,
		"per_page":     r.PerPage,
		"last_page":    r.LastPage,
		"sort":         r.Sort,
		"sort_dir":     r.SortDir.String(),
		"filter":       r.Filter,
	}
}
