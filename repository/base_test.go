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
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/seedwork/database"
	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"
)

type stubRow struct {
	bun.BaseModel `bun:"table:stubs,alias:s"`

	ID    string `bun:"id,pk"`
	Name  string `bun:"name,notnull"`
	Price int    `bun:"price,notnull"`
}

type stubMapper struct{}

func (stubMapper) ToRow(e stubEntity) *stubRow {
	return &stubRow{ID: e.ID(), Name: e.name, Price: e.price}
}

func (stubMapper) FromRow(row *stubRow) (stubEntity, error) {
	b, err := entity.NewBase(row.ID)
	if err != nil {
		return stubEntity{}, err
	}
	return stubEntity{Base: b, name: row.Name, price: row.Price}, nil
}

func newBunRepo(t *testing.T) *BunRepository[stubEntity, stubRow] {
	t.Helper()
	ctx := context.Background()
	cfg := database.DefaultConfig()
	cfg.Name = fmt.Sprintf("repository_%s_%d", t.Name(), time.Now().UnixNano())

	m := database.NewDatabaseManager(cfg)
	require.NoError(t, m.Connect(ctx))
	t.Cleanup(func() { _ = m.Disconnect() })

	db := m.GetDB()
	_, err := db.NewCreateTable().Model((*stubRow)(nil)).IfNotExists().Exec(ctx)
	require.NoError(t, err)

	return NewBunRepository[stubEntity, stubRow](db, stubMapper{},
		WithSearchColumn("name"),
		WithSortableColumn("name", "name"),
		WithDefaultOrder("price DESC"),
	)
}

func TestBunInsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepo(t)
	e := newStub(t, "some value", 5)

	require.NoError(t, repo.Insert(ctx, e))

	got, err := repo.FindByID(ctx, e.UniqueEntityID())
	require.NoError(t, err)
	assert.Equal(t, e, got)

	err = repo.Insert(ctx, e.withName("other"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestBunNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepo(t)
	want := "Entity not found using ID '" + missingID + "'"

	_, err := repo.FindByID(ctx, missingID)
	assert.EqualError(t, err, want)

	_, err = repo.FindByID(ctx, "fake id")
	assert.EqualError(t, err, "Entity not found using ID 'fake id'")

	ghost := stubEntity{Base: entity.NewBaseWithID(types.MustParseUniqueEntityID(missingID))}
	assert.EqualError(t, repo.Update(ctx, ghost), want)
	assert.EqualError(t, repo.Delete(ctx, types.MustParseUniqueEntityID(missingID)), want)
	assert.True(t, IsNotFound(repo.Delete(ctx, missingID)))
}

func TestBunUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepo(t)
	a, b, c := newStub(t, "a", 1), newStub(t, "b", 2), newStub(t, "c", 3)
	seed(t, repo, a, b, c)

	renamed := b.withName("changed")
	require.NoError(t, repo.Update(ctx, renamed))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []stubEntity{a, renamed, c}, all)

	require.NoError(t, repo.Delete(ctx, a.ID()))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []stubEntity{renamed, c}, all)
}

func TestBunSearch(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepo(t)
	seed(t, repo,
		newStub(t, "test", 1),
		newStub(t, "b", 3),
		newStub(t, "TEST", 2),
		newStub(t, "fake", 0),
	)

	tests := []struct {
		name   string
		params types.SearchParams
		want   []string
		total  int
	}{
		{"filter", types.NewSearchParams(types.WithFilter("TEST"), types.WithSort("name", "asc")), []string{"TEST", "test"}, 2},
		{"default order", types.NewSearchParams(), []string{"b", "TEST", "test", "fake"}, 4},
		{"name desc", types.NewSearchParams(types.WithSort("name", "desc")), []string{"test", "fake", "b", "TEST"}, 4},
		{"unsortable field", types.NewSearchParams(types.WithSort("price", "asc")), []string{"b", "TEST", "test", "fake"}, 4},
		{"second page", types.NewSearchParams(types.WithPage(2), types.WithPerPage(3)), []string{"fake"}, 4},
		{"page out of range", types.NewSearchParams(types.WithPage(99)), []string{}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.Search(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(res.Items))
			assert.Equal(t, tt.total, res.Total)
			assert.Equal(t, tt.params.Page(), res.CurrentPage)
		})
	}
}

func TestBunSearchZeroValueAndHugePages(t *testing.T) {
	ctx := context.Background()
	repo := newBunRepo(t)
	for i := 0; i < 6; i++ {
		seed(t, repo, newStub(t, fmt.Sprintf("item%d", i), i))
	}

	res, err := repo.Search(ctx, types.SearchParams{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 6)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 15, res.PerPage)

	res, err = repo.Search(ctx, types.NewSearchParams(types.WithPage(9), types.WithPerPage(math.MaxInt64/4+1)))
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 6, res.Total)

	res, err = repo.Search(ctx, types.NewSearchParams(types.WithPerPage(math.MaxInt)))
	require.NoError(t, err)
	assert.Len(t, res.Items, 6)
}
