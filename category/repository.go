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

package category

import (
	"cmp"
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/seedwork/database"
	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/repository"
)

// Sortable field names accepted by Search.
const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
)

// Repository is the searchable contract category storage satisfies.
type Repository = repository.Searchable[Category]

func filterByName(c Category, filter string) bool {
	return repository.ContainsFold(c.name, filter)
}

func compareName(a, b Category) int { return cmp.Compare(a.name, b.name) }

func compareCreatedAt(a, b Category) int { return a.createdAt.Compare(b.createdAt) }

// NewInMemoryRepository returns an in-memory category store. Filters match
// the name case-insensitively; without a sort field the newest come first.
func NewInMemoryRepository() *repository.SearchableInMemoryRepository[Category] {
	return repository.NewSearchableInMemoryRepository(filterByName,
		repository.WithSortableField(SortByName, compareName),
		repository.WithSortableField(SortByCreatedAt, compareCreatedAt),
		repository.WithDefaultSort(func(a, b Category) int { return compareCreatedAt(b, a) }),
	)
}

type categoryRow struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          string    `bun:"id,pk"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,notnull,default:''"`
	IsActive    bool      `bun:"is_active,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*categoryRow)(nil), 10))
}

type rowMapper struct{}

func (rowMapper) ToRow(c Category) *categoryRow {
	return &categoryRow{
		ID:          c.ID(),
		Name:        c.name,
		Description: c.description,
		IsActive:    c.isActive,
		CreatedAt:   c.createdAt,
	}
}

func (rowMapper) FromRow(row *categoryRow) (Category, error) {
	b, err := entity.NewBase(row.ID)
	if err != nil {
		return Category{}, err
	}
	return Category{
		Base:        b,
		name:        row.Name,
		description: row.Description,
		isActive:    row.IsActive,
		createdAt:   normalizeTime(row.CreatedAt),
	}, nil
}

// NewSQLRepository returns a category store over db, which must already hold
// the categories table (database.InitDB creates it).
func NewSQLRepository(db *bun.DB) *repository.BunRepository[Category, categoryRow] {
	return repository.NewBunRepository[Category, categoryRow](db, rowMapper{},
		repository.WithSearchColumn("name"),
		repository.WithSortableColumn(SortByName, "name"),
		repository.WithSortableColumn(SortByCreatedAt, "created_at"),
		repository.WithDefaultOrder("created_at DESC"),
	)
}
