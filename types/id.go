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

package types

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID is matched by every error returned from ParseUniqueEntityID.
var ErrInvalidUUID = errors.New("ID must be a valid UUID")

// InvalidUUIDError reports the raw value that failed UUID validation.
type InvalidUUIDError struct {
	Value string
}

func (e *InvalidUUIDError) Error() string {
	return ErrInvalidUUID.Error()
}

func (e *InvalidUUIDError) Is(target error) bool {
	return target == ErrInvalidUUID
}

// UniqueEntityID is the identity value carried by every entity. The zero value
// is not a valid identity; use NewUniqueEntityID or ParseUniqueEntityID.
type UniqueEntityID struct {
	value string
}

// NewUniqueEntityID returns a fresh random (v4) identity.
func NewUniqueEntityID() UniqueEntityID {
	return UniqueEntityID{value: uuid.NewString()}
}

// ParseUniqueEntityID validates raw as a UUID. An empty raw generates a new
// identity instead.
func ParseUniqueEntityID(raw string) (UniqueEntityID, error) {
	if raw == "" {
		return NewUniqueEntityID(), nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return UniqueEntityID{}, &InvalidUUIDError{Value: raw}
	}
	return UniqueEntityID{value: parsed.String()}, nil
}

// MustParseUniqueEntityID is like ParseUniqueEntityID but panics on error.
func MustParseUniqueEntityID(raw string) UniqueEntityID {
	id, err := ParseUniqueEntityID(raw)
	if err != nil {
		panic(fmt.Sprintf("types: %q: %v", raw, err))
	}
	return id
}

// String returns the canonical lowercase hyphenated form.
func (id UniqueEntityID) String() string {
	return id.value
}

func (id UniqueEntityID) IsZero() bool {
	return id.value == ""
}

// IDString normalizes the identity forms accepted by repositories to the
// string key used for lookups. Raw strings are returned untouched.
func IDString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case UniqueEntityID:
		return v.String()
	case *UniqueEntityID:
		if v == nil {
			return ""
		}
		return v.String()
	case uuid.UUID:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
