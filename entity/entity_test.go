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

package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/seedwork/types"
)

type stubEntity struct {
	Base
	prop1 string
	prop2 string
}

func (s stubEntity) ToDict() types.JsonObject {
	return s.Export(types.JsonObject{"prop1": s.prop1, "prop2": s.prop2})
}

func (s stubEntity) withProp1(v string) stubEntity {
	s.prop1 = v
	return s
}

var _ Entity = stubEntity{}

func TestNewBaseGeneratesID(t *testing.T) {
	b, err := NewBase("")
	require.NoError(t, err)
	assert.False(t, b.UniqueEntityID().IsZero())
	assert.Equal(t, b.UniqueEntityID().String(), b.ID())
}

func TestNewBaseAcceptsValidUUID(t *testing.T) {
	b, err := NewBase("ba60c704-3b4f-4b12-ac97-f71d9e48c58d")
	require.NoError(t, err)
	assert.Equal(t, "ba60c704-3b4f-4b12-ac97-f71d9e48c58d", b.ID())
}

func TestNewBaseRejectsInvalidUUID(t *testing.T) {
	_, err := NewBase("fake id")
	assert.True(t, errors.Is(err, types.ErrInvalidUUID))
}

func TestNewBaseWithID(t *testing.T) {
	uid := types.NewUniqueEntityID()
	assert.Equal(t, uid, NewBaseWithID(uid).UniqueEntityID())
	assert.False(t, NewBaseWithID(types.UniqueEntityID{}).UniqueEntityID().IsZero())
}

func TestToDict(t *testing.T) {
	b, err := NewBase("ba60c704-3b4f-4b12-ac97-f71d9e48c58d")
	require.NoError(t, err)
	e := stubEntity{Base: b, prop1: "value1", prop2: "value2"}

	assert.Equal(t, types.JsonObject{
		"id":    "ba60c704-3b4f-4b12-ac97-f71d9e48c58d",
		"prop1": "value1",
		"prop2": "value2",
	}, e.ToDict())
}

func TestExportDoesNotLetFieldsShadowID(t *testing.T) {
	b := NewBaseWithID(types.NewUniqueEntityID())
	d := b.Export(types.JsonObject{"id": "other"})
	assert.Equal(t, b.ID(), d["id"])
}

func TestStructuralEquality(t *testing.T) {
	e := stubEntity{Base: NewBaseWithID(types.NewUniqueEntityID()), prop1: "value1", prop2: "value2"}
	same := e
	changed := e.withProp1("changed")

	assert.True(t, Equal(e, same))
	assert.False(t, Equal(e, changed))
	assert.True(t, SameIdentity(e, changed))
	assert.Equal(t, "value1", e.prop1)
	assert.Equal(t, "changed", changed.prop1)

	other := stubEntity{Base: NewBaseWithID(types.NewUniqueEntityID()), prop1: "value1", prop2: "value2"}
	assert.False(t, Equal(e, other))
	assert.False(t, SameIdentity(e, other))
}
