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

// JsonObject is the flat key-value form entities export to.
type JsonObject map[string]interface{}

// JsonArray is a list of exported objects.
type JsonArray []JsonObject

// Clone returns a shallow copy of the object.
func (j JsonObject) Clone() JsonObject {
	if j == nil {
		return nil
	}
	out := make(JsonObject, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}
