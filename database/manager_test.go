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
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/seedwork/utils"
)

type noteRow struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID   string `bun:"id,pk"`
	Body string `bun:"body,notnull"`
}

func testConfig(t *testing.T) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Name = fmt.Sprintf("database_%s_%d", t.Name(), time.Now().UnixNano())
	cfg.SlowQueryTime = time.Second
	return cfg
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewDatabaseManager(testConfig(t))

	require.Error(t, m.Ping(ctx))
	require.Nil(t, m.GetDB())

	require.NoError(t, m.Connect(ctx))
	require.NoError(t, m.Connect(ctx))
	require.NotNil(t, m.GetDB())
	require.NoError(t, m.Ping(ctx))

	status := m.HealthCheck(ctx)
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)
	assert.Empty(t, status.LastError)

	require.NoError(t, m.Disconnect())
	assert.Nil(t, m.GetDB())
	assert.False(t, m.HealthCheck(ctx).Healthy)
	require.NoError(t, m.Disconnect())
}

func TestManagerCreateTables(t *testing.T) {
	ctx := context.Background()
	RegisteredModel(NewModelAdapter((*noteRow)(nil), 100))

	m := NewDatabaseManager(testConfig(t))
	require.Error(t, m.CreateTables(ctx))
	require.NoError(t, m.Connect(ctx))
	t.Cleanup(func() { _ = m.Disconnect() })

	require.NoError(t, m.CreateTables(ctx))
	require.NoError(t, m.CreateTables(ctx))

	db := m.GetDB()
	_, err := db.NewInsert().Model(&noteRow{ID: "1", Body: "first"}).Exec(ctx)
	require.NoError(t, err)

	_, err = db.NewInsert().Model(&noteRow{ID: "1", Body: "again"}).Exec(ctx)
	require.Error(t, err)
	is, kind := IsSqlError(err)
	assert.True(t, is)
	assert.Equal(t, DuplicateKeyErr, kind)

	var got noteRow
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", "1").Scan(ctx))
	assert.Equal(t, "first", got.Body)
}

func TestDatabasesAreIsolatedByName(t *testing.T) {
	ctx := context.Background()
	RegisteredModel(NewModelAdapter((*noteRow)(nil), 100))

	first := NewDatabaseManager(testConfig(t))
	require.NoError(t, first.Connect(ctx))
	t.Cleanup(func() { _ = first.Disconnect() })
	require.NoError(t, first.CreateTables(ctx))
	_, err := first.GetDB().NewInsert().Model(&noteRow{ID: "1", Body: "x"}).Exec(ctx)
	require.NoError(t, err)

	second := NewDatabaseManager(testConfig(t))
	require.NoError(t, second.Connect(ctx))
	t.Cleanup(func() { _ = second.Disconnect() })
	require.NoError(t, second.CreateTables(ctx))

	n, err := second.GetDB().NewSelect().Model((*noteRow)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInitDBAndClose(t *testing.T) {
	RegisteredModel(NewModelAdapter((*noteRow)(nil), 100))

	_, err := InitDB(nil)
	require.Error(t, err)

	db, err := InitDB(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Same(t, db, GetDB())
	assert.NotNil(t, GetDatabaseManager())
	assert.True(t, GetHealthStatus(context.Background()).Healthy)

	n, err := db.NewSelect().Model((*noteRow)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, CloseDB())
	assert.Nil(t, GetDatabaseManager())
	assert.Nil(t, GetDB())
	status := GetHealthStatus(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "Database not initialized", status.LastError)
	require.NoError(t, CloseDB())
}

func TestIsSqlError(t *testing.T) {
	tests := []struct {
		err  error
		is   bool
		kind SQLError
	}{
		{nil, false, UnknownErr},
		{errors.New("boom"), false, UnknownErr},
		{errors.New("UNIQUE constraint failed: notes.id"), true, DuplicateKeyErr},
		{errors.New("no such table: notes"), true, NoTableErr},
		{errors.New("no such column: title"), true, NoColumnErr},
		{errors.New("table notes already exists"), true, ExistTableErr},
		{errors.New("NOT NULL constraint failed: notes.body"), true, NotNullViolationErr},
		{errors.New("CHECK constraint failed: body"), true, CheckConstraintViolationErr},
		{errors.New("datatype mismatch"), true, InvalidTypeCastErr},
		{fmt.Errorf("find: %w", sql.ErrNoRows), true, NoRowsErr},
	}
	for _, tt := range tests {
		is, kind := IsSqlError(tt.err)
		assert.Equal(t, tt.is, is, "%v", tt.err)
		assert.Equal(t, tt.kind, kind, "%v", tt.err)
	}
	assert.Equal(t, "duplicate key", DuplicateKeyErr.String())
}

func TestModelRegistryOrder(t *testing.T) {
	r := newModelRegistry()
	r.Register(NewModelAdapter((*noteRow)(nil), 20))
	r.Register(NewModelAdapter(&struct{ A int }{}, 5))
	r.Register(NewModelAdapter((*noteRow)(nil), 1))

	models := r.Models()
	require.Len(t, models, 2)
	assert.Equal(t, 5, models[0].Priority())
	assert.Equal(t, 20, models[1].Priority())
}

type recordingLogger struct {
	warns []logrus.Fields
}

func (r *recordingLogger) Debug(string, ...interface{}) {}
func (r *recordingLogger) Info(string, ...interface{})  {}
func (r *recordingLogger) Error(string, ...interface{}) {}

func (r *recordingLogger) Warn(_ string, kv ...interface{}) {
	r.warns = append(r.warns, fieldsOf(kv))
}

func TestSlowQueryHook(t *testing.T) {
	rec := &recordingLogger{}
	hook := &slowQueryHook{slowTime: 50 * time.Millisecond, logger: rec}

	hook.AfterQuery(context.Background(), &bun.QueryEvent{StartTime: time.Now(), Query: "SELECT 1"})
	assert.Empty(t, rec.warns)

	hook.AfterQuery(context.Background(), &bun.QueryEvent{
		StartTime: time.Now().Add(-time.Second),
		Query:     "SELECT 2",
		Err:       errors.New("failed"),
	})
	assert.Empty(t, rec.warns)

	hook.AfterQuery(context.Background(), &bun.QueryEvent{StartTime: time.Now().Add(-time.Second), Query: "SELECT 3"})
	require.Len(t, rec.warns, 1)
	assert.Equal(t, "SELECT 3", rec.warns[0]["query"])
	assert.Equal(t, 50*time.Millisecond, rec.warns[0]["slow_threshold"])
}

func TestInitLoggerRegistersLogrusLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&utils.JSONLogFormatter{LoggerName: LoggerName})
	l.SetLevel(logrus.InfoLevel)

	InitLogger(l)
	registered, ok := utils.GetLogger(LoggerName)
	require.True(t, ok)
	assert.Same(t, l, registered)

	GetLogger().Warn("Database slow query detected", "query", "SELECT 1", "dangling")
	assert.Contains(t, buf.String(), `"query":"SELECT 1"`)
	assert.NotContains(t, buf.String(), "dangling")

	require.True(t, utils.SetLoggerLevel(LoggerName, "error"))
	buf.Reset()
	GetLogger().Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestFieldsOf(t *testing.T) {
	assert.Empty(t, fieldsOf(nil))
	assert.Empty(t, fieldsOf([]interface{}{"dangling"}))
	assert.Equal(t, logrus.Fields{"a": 1, "b": "two"}, fieldsOf([]interface{}{"a", 1, "b", "two", "c"}))
}
