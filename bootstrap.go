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

// Package seedwork wires configuration, logging and storage together and
// exposes a generic Service facade over searchable repositories.
package seedwork

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tomoncle/seedwork/config"
	"github.com/tomoncle/seedwork/database"
	"github.com/tomoncle/seedwork/utils"
)

// Bootstrap applies the logging settings of cfg and, when the database is
// enabled, initializes the global in-memory database with every registered
// model. It returns the database, or nil when it is disabled.
func Bootstrap(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	utils.ConfigureConsoleLogFormat(cfg.Log.Format)
	utils.ConfigureLogLevel(cfg.Log.Level)

	if !cfg.Database.Enabled {
		log.Debug("database disabled, using in-memory repositories only")
		return nil, nil
	}
	db, err := database.InitDBContext(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return db, nil
}

// Shutdown releases what Bootstrap acquired.
func Shutdown() error {
	return database.CloseDB()
}
