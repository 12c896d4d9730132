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
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalManager AbstractDatabaseManager
	globalMu      sync.RWMutex
	DB            *bun.DB
)

// GetDB returns the global Bun database instance.
func GetDB() *bun.DB {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalManager != nil {
		return globalManager.GetDB()
	}
	return DB
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() AbstractDatabaseManager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// InitDB connects the global database, registers every known model with Bun
// and creates the missing tables.
func InitDB(cfg *Config) (*bun.DB, error) {
	return InitDBContext(context.Background(), cfg)
}

// InitDBContext is InitDB with a caller supplied context.
func InitDBContext(ctx context.Context, cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager != nil {
		_ = globalManager.Disconnect()
		globalManager = nil
		DB = nil
	}

	manager := NewDatabaseManager(cfg)
	if err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := manager.CreateTables(ctx); err != nil {
		_ = manager.Disconnect()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	globalManager = manager
	DB = manager.GetDB()
	DB.RegisterModel(RegisteredModelInstances()...)
	return DB, nil
}

// CloseDB closes the global database connection. The in-memory database is
// discarded with it.
func CloseDB() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalManager == nil {
		return nil
	}
	err := globalManager.Disconnect()
	globalManager = nil
	DB = nil
	return err
}

// GetHealthStatus returns the current database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if manager := GetDatabaseManager(); manager != nil {
		return manager.HealthCheck(ctx)
	}
	return &HealthStatus{
		Healthy:   false,
		Connected: false,
		LastError: "Database not initialized",
	}
}
