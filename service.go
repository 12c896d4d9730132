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

package seedwork

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomoncle/seedwork/entity"
	"github.com/tomoncle/seedwork/repository"
	"github.com/tomoncle/seedwork/types"
	"github.com/tomoncle/seedwork/utils"
)

var log = utils.NewLogger("SERVICE")

type Service[E entity.Entity] interface {
	// Save inserts one or more new entities, stopping at the first failure.
	Save(ctx context.Context, items ...E) error

	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (E, error)

	// All returns all entities in storage order.
	All(ctx context.Context) ([]E, error)

	// Update replaces the stored entity sharing the identity of item.
	Update(ctx context.Context, item E) error

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id any) error

	// Search returns one filtered, sorted page of entities.
	Search(ctx context.Context, params types.SearchParams) (*types.SearchResult[E], error)

	// SearchRaw decodes loosely typed query input, e.g. URL query values, into
	// search params and runs Search.
	SearchRaw(ctx context.Context, raw map[string]interface{}) (*types.SearchResult[E], error)
}

type baseServiceImpl[E entity.Entity] struct {
	repo repository.Searchable[E]
	name string
}

// NewService returns a Service delegating to repo. name labels log lines.
func NewService[E entity.Entity](name string, repo repository.Searchable[E]) Service[E] {
	return &baseServiceImpl[E]{repo: repo, name: name}
}

func (s *baseServiceImpl[E]) logger(op string, start time.Time) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"service": s.name,
		"op":      op,
		"latency": utils.Since(start),
	})
}

func (s *baseServiceImpl[E]) Save(ctx context.Context, items ...E) error {
	start := time.Now()
	for _, item := range items {
		if err := s.repo.Insert(ctx, item); err != nil {
			s.logger("save", start).WithError(err).Warn("save failed")
			return err
		}
	}
	s.logger("save", start).WithField("count", len(items)).Debug("saved")
	return nil
}

func (s *baseServiceImpl[E]) Get(ctx context.Context, id any) (E, error) {
	start := time.Now()
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger("get", start).WithError(err).Debug("get failed")
		return item, err
	}
	s.logger("get", start).WithField("id", item.ID()).Debug("found")
	return item, nil
}

func (s *baseServiceImpl[E]) All(ctx context.Context) ([]E, error) {
	return s.repo.FindAll(ctx)
}

func (s *baseServiceImpl[E]) Update(ctx context.Context, item E) error {
	start := time.Now()
	if err := s.repo.Update(ctx, item); err != nil {
		s.logger("update", start).WithError(err).Debug("update failed")
		return err
	}
	s.logger("update", start).WithField("id", item.ID()).Debug("updated")
	return nil
}

func (s *baseServiceImpl[E]) Delete(ctx context.Context, id any) error {
	start := time.Now()
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger("delete", start).WithError(err).Debug("delete failed")
		return err
	}
	s.logger("delete", start).WithField("id", types.IDString(id)).Debug("deleted")
	return nil
}

func (s *baseServiceImpl[E]) Search(ctx context.Context, params types.SearchParams) (*types.SearchResult[E], error) {
	start := time.Now()
	res, err := s.repo.Search(ctx, params)
	if err != nil {
		s.logger("search", start).WithError(err).Warn("search failed")
		return nil, err
	}
	s.logger("search", start).WithFields(logrus.Fields{
		"page":  res.CurrentPage,
		"total": res.Total,
	}).Debug("searched")
	return res, nil
}

func (s *baseServiceImpl[E]) SearchRaw(ctx context.Context, raw map[string]interface{}) (*types.SearchResult[E], error) {
	return s.Search(ctx, types.DecodeSearchParams(raw))
}
