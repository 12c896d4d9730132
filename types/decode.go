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
	"github.com/go-viper/mapstructure/v2"
)

// DecodeSearchParams builds search params from loosely typed input such as a
// decoded query string or JSON body. Keys are page, per_page, sort, sort_dir
// and filter. A value that cannot be converted is treated as missing.
func DecodeSearchParams(raw map[string]interface{}) SearchParams {
	in := searchInput{
		page:    decodeInt(raw["page"], DefaultPage),
		perPage: decodeInt(raw["per_page"], DefaultPerPage),
		sort:    decodeString(raw["sort"]),
		sortDir: decodeString(raw["sort_dir"]),
		filter:  decodeString(raw["filter"]),
	}
	return in.normalize()
}

func decodeInt(v interface{}, def int) int {
	switch v.(type) {
	case nil, bool:
		return def
	}
	var out int
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return def
	}
	return out
}

func decodeString(v interface{}) string {
	if v == nil {
		return ""
	}
	var out string
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return ""
	}
	return out
}
