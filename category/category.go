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

// Package category is a reference entity built on the seedwork: a named,
// optionally described, activatable grouping with a creation timestamp.
package category

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/types"
)

const MaxNameLength = 255

var ErrValidation = errors.New("invalid category")

// Category is immutable; transitions return a modified copy that must be
// persisted with Repository.Update.
type Category struct {
	entity.Base
	name        string
	description string
	isActive    bool
	createdAt   time.Time
}

var _ entity.Entity = Category{}

type Option func(*Category) error

// WithID sets the identity. An empty id generates a new one.
func WithID(id string) Option {
	return func(c *Category) error {
		b, err := entity.NewBase(id)
		if err != nil {
			return err
		}
		c.Base = b
		return nil
	}
}

func WithDescription(description string) Option {
	return func(c *Category) error {
		c.description = description
		return nil
	}
}

func WithActive(active bool) Option {
	return func(c *Category) error {
		c.isActive = active
		return nil
	}
}

// WithCreatedAt overrides the creation time. It is stored in UTC.
func WithCreatedAt(t time.Time) Option {
	return func(c *Category) error {
		c.createdAt = normalizeTime(t)
		return nil
	}
}

// New builds an active category created now, then applies opts and validates
// the result.
func New(name string, opts ...Option) (Category, error) {
	c := Category{
		Base:      entity.NewBaseWithID(types.NewUniqueEntityID()),
		name:      name,
		isActive:  true,
		createdAt: normalizeTime(time.Now()),
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Category{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	return c, nil
}

// normalizeTime drops the location and the monotonic reading, and keeps the
// microsecond precision the SQL engine stores, so equal instants compare ==.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (c Category) Name() string         { return c.name }
func (c Category) Description() string  { return c.description }
func (c Category) IsActive() bool       { return c.isActive }
func (c Category) CreatedAt() time.Time { return c.createdAt }

func (c Category) Activate() Category {
	c.isActive = true
	return c
}

func (c Category) Deactivate() Category {
	c.isActive = false
	return c
}

// Update returns a copy with name and description replaced.
func (c Category) Update(name, description string) (Category, error) {
	c.name = name
	c.description = description
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (c Category) Validate() error {
	var errs []error
	switch {
	case strings.TrimSpace(c.name) == "":
		errs = append(errs, errors.New("name is required"))
	case utf8.RuneCountInString(c.name) > MaxNameLength:
		errs = append(errs, fmt.Errorf("name must be at most %d characters", MaxNameLength))
	}
	if c.createdAt.IsZero() {
		errs = append(errs, errors.New("created_at is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
	}
	return nil
}

// ToDict exports every field. An empty description is exported as nil.
func (c Category) ToDict() types.JsonObject {
	var description interface{}
	if c.description != "" {
		description = c.description
	}
	return c.Export(types.JsonObject{
		"name":        c.name,
		"description": description,
		"is_active":   c.isActive,
		"created_at":  c.createdAt,
	})
}
