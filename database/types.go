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
	"time"

	"github.com/uptrace/bun"
)

// AbstractDatabaseManager defines the operations for managing the database
// connection, creating tables and reporting health.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetDB() *bun.DB
	CreateTables(ctx context.Context) error
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	OpenConns     int           `json:"open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// Config describes the in-process database. The database lives in memory and
// is discarded once the last connection closes.
type Config struct {
	Enabled        bool          `koanf:"enabled" yaml:"enabled"`
	Name           string        `koanf:"name" yaml:"name"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" yaml:"connect_timeout"`
	EnableQueryLog bool          `koanf:"enable_query_log" yaml:"enable_query_log"`
	SlowQueryTime  time.Duration `koanf:"slow_query_time" yaml:"slow_query_time"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:        false,
		Name:           "seedwork",
		ConnectTimeout: time.Second * 10,
		EnableQueryLog: false,
		SlowQueryTime:  time.Millisecond * 200,
	}
}
