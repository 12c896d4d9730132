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
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tomoncle/seedwork/database"
	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"

	"github.com/uptrace/bun"
)

// RowMapper converts between an entity and the Bun model row that stores it.
// R must be a struct type registered with Bun; its primary key column is "id".
type RowMapper[E any, R any] interface {
	ToRow(e E) *R
	FromRow(row *R) (E, error)
}

// BunOption configures a BunRepository.
type BunOption func(*bunConfig)

type bunConfig struct {
	searchColumn string
	sortable     map[string]string
	defaultOrder string
}

// WithSearchColumn names the column matched, case-insensitively, by filters.
func WithSearchColumn(column string) BunOption {
	return func(c *bunConfig) { c.searchColumn = column }
}

// WithSortableColumn maps a sort field name onto a column.
func WithSortableColumn(field, column string) BunOption {
	return func(c *bunConfig) {
		if field != "" && column != "" {
			c.sortable[field] = column
		}
	}
}

// WithDefaultOrder sets the ORDER BY expression used when no sortable field is
// requested, e.g. "created_at DESC".
func WithDefaultOrder(expr string) BunOption {
	return func(c *bunConfig) { c.defaultOrder = expr }
}

// BunRepository is a generic searchable repository backed by a Bun DB. Rows
// are returned in insertion order unless the search asks otherwise.
type BunRepository[E entity.Entity, R any] struct {
	db     *bun.DB
	mapper RowMapper[E, R]
	config bunConfig
}

var _ Searchable[entity.Entity] = (*BunRepository[entity.Entity, struct{}])(nil)

// NewBunRepository returns a repository storing entities through mapper.
func NewBunRepository[E entity.Entity, R any](db *bun.DB, mapper RowMapper[E, R], opts ...BunOption) *BunRepository[E, R] {
	cfg := bunConfig{sortable: make(map[string]string)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &BunRepository[E, R]{db: db, mapper: mapper, config: cfg}
}

func (r *BunRepository[E, R]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

// Insert stores e. Unlike the in-memory engine the primary key is enforced, so
// a second entity with the same identity fails with ErrDuplicateID.
func (r *BunRepository[E, R]) Insert(ctx context.Context, e E) error {
	row := r.mapper.ToRow(e)
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		if is, kind := database.IsSqlError(err); is && kind == database.DuplicateKeyErr {
			return fmt.Errorf("insert %s: %w", e.ID(), ErrDuplicateID)
		}
		return fmt.Errorf("insert %s: %w", e.ID(), err)
	}
	return nil
}

func (r *BunRepository[E, R]) FindByID(ctx context.Context, id any) (E, error) {
	var zero E
	key := types.IDString(id)
	var row R
	err := r.db.NewSelect().Model(&row).Where("id = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, NewNotFoundError(key)
		}
		return zero, fmt.Errorf("find %s: %w", key, err)
	}
	return r.mapper.FromRow(&row)
}

func (r *BunRepository[E, R]) FindAll(ctx context.Context) ([]E, error) {
	var rows []*R
	if err := r.db.NewSelect().Model(&rows).OrderExpr("rowid ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return r.fromRows(rows)
}

// Update replaces the stored row sharing e's identity.
func (r *BunRepository[E, R]) Update(ctx context.Context, e E) error {
	res, err := r.db.NewUpdate().Model(r.mapper.ToRow(e)).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.ID(), err)
	}
	return expectAffected(res, e.ID())
}

func (r *BunRepository[E, R]) Delete(ctx context.Context, id any) error {
	key := types.IDString(id)
	var row R
	res, err := r.db.NewDelete().Model(&row).Where("id = ?", key).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return expectAffected(res, key)
}

// Search filters, counts, orders and pages in SQL. Ties keep insertion order.
// SQLite lower() folds ASCII letters only, so filters on non-ASCII text are
// case-sensitive here, unlike ContainsFold.
func (r *BunRepository[E, R]) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult[E], error) {
	var rows []*R
	query := r.db.NewSelect().Model(&rows)
	if params.HasFilter() && r.config.searchColumn != "" {
		query = query.Where("instr(lower(?), lower(?)) > 0", bun.Ident(r.config.searchColumn), params.Filter())
	}
	total, err := query.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("search count: %w", err)
	}
	if total == 0 || params.Offset() >= total {
		return types.NewSearchResult(make([]E, 0), total, params), nil
	}

	if column, ok := r.config.sortable[params.Sort()]; ok && params.HasSort() {
		query = query.OrderExpr("? "+strings.ToUpper(params.SortDir().String()), bun.Ident(column))
	} else if r.config.defaultOrder != "" {
		query = query.OrderExpr(r.config.defaultOrder)
	}
	err = query.
		OrderExpr("rowid ASC").
		Offset(params.Offset()).
		Limit(min(params.PerPage(), total-params.Offset())).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	items, err := r.fromRows(rows)
	if err != nil {
		return nil, err
	}
	return types.NewSearchResult(items, total, params), nil
}

func (r *BunRepository[E, R]) fromRows(rows []*R) ([]E, error) {
	items := make([]E, 0, len(rows))
	for _, row := range rows {
		e, err := r.mapper.FromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func expectAffected(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NewNotFoundError(key)
	}
	return nil
}
