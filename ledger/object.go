// Copyright © 2018 Kowala SEZC <info@kowala.tech>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"strconv"
	"strings"

	"github.com/kowala-tech/ballot/types"
)

// RawObject is one undecoded record as returned by the ledger read API. The
// field map is schema-free: the chain has emitted several encodings of the
// same logical fields over time, so decoding goes through ordered extractor
// strategies rather than a fixed struct.
type RawObject struct {
	ID     types.ObjectID `json:"objectId"`
	Type   string         `json:"type"`
	Fields map[string]any `json:"fields"`
}

// HasType reports whether the object's on-chain type tag matches the given
// tag, ignoring the package-address prefix. The match is anchored on the
// "::" boundary so a tag never matches inside a longer module name.
func (o *RawObject) HasType(tag string) bool {
	return o != nil && (o.Type == tag || strings.HasSuffix(o.Type, "::"+tag))
}

// fieldSlice extracts a sequence field, tolerating the three historical
// encodings: a direct array, an array under a "vec" key, and an array under
// a "fields.contents" path (table-backed variant). First structurally valid
// match wins.
func fieldSlice(fields map[string]any, key string) []any {
	raw, ok := fields[key]
	if !ok {
		return nil
	}

	if seq, ok := raw.([]any); ok {
		return seq
	}

	wrapper, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if seq, ok := wrapper["vec"].([]any); ok {
		return seq
	}
	if inner, ok := wrapper["fields"].(map[string]any); ok {
		if seq, ok := inner["contents"].([]any); ok {
			return seq
		}
	}

	return nil
}

// optionalString extracts an optional string field that may arrive as a bare
// string or as an option wrapper carrying its payload under a "some" key one
// or two levels deep. Returns "" when no encoding matches.
func optionalString(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}

	wrapper, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := wrapper["some"].(string); ok {
		return s
	}
	if inner, ok := wrapper["fields"].(map[string]any); ok {
		if s, ok := inner["some"].(string); ok {
			return s
		}
	}

	return ""
}

// fieldNumber coerces a numeric field that may arrive as a JSON number or as
// a stringified integer. Missing or malformed values yield 0.
func fieldNumber(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// fieldString extracts a text field, falling back to the given default when
// the field is absent or not a string.
func fieldString(fields map[string]any, key, fallback string) string {
	if s, ok := fields[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func fieldBool(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// innerFields unwraps a sequence element that may be encoded either as a
// bare field map or as an object wrapper carrying a "fields" map.
func innerFields(elem any) map[string]any {
	m, ok := elem.(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := m["fields"].(map[string]any); ok {
		return inner
	}
	return m
}
