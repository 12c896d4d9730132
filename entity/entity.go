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
	"github.com/tomoncle/seedwork/types"
)

// Entity is an identity-bearing record. Implementations are expected to be
// immutable values: state transitions return a new value instead of mutating
// the receiver.
type Entity interface {
	ID() string
	UniqueEntityID() types.UniqueEntityID
	ToDict() types.JsonObject
}

// Base carries the identity of an entity. Embed it by value so the enclosing
// struct stays comparable.
type Base struct {
	uid types.UniqueEntityID
}

// NewBase builds a Base from a raw identity. An empty raw generates a new one.
func NewBase(raw string) (Base, error) {
	uid, err := types.ParseUniqueEntityID(raw)
	if err != nil {
		return Base{}, err
	}
	return Base{uid: uid}, nil
}

// NewBaseWithID builds a Base around an existing identity, generating one when
// uid is the zero value.
func NewBaseWithID(uid types.UniqueEntityID) Base {
	if uid.IsZero() {
		uid = types.NewUniqueEntityID()
	}
	return Base{uid: uid}
}

func (b Base) ID() string {
	return b.uid.String()
}

func (b Base) UniqueEntityID() types.UniqueEntityID {
	return b.uid
}

// Export returns a copy of fields with the identity flattened under "id".
func (b Base) Export(fields types.JsonObject) types.JsonObject {
	out := make(types.JsonObject, len(fields)+1)
	out["id"] = b.ID()
	for k, v := range fields {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports structural equality: identity and every declared field.
func Equal[E comparable](a, b E) bool {
	return a == b
}

// SameIdentity reports whether a and b share an identity, regardless of their
// other fields.
func SameIdentity(a, b Entity) bool {
	return a.ID() == b.ID()
}
