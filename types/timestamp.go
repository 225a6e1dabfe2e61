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

package types

import (
	"errors"
	"math"
)

// ErrInvalidTimestamp is returned for timestamps that cannot be normalized.
var ErrInvalidTimestamp = errors.New("invalid ledger timestamp")

// NormalizeTimestamp converts a raw numeric ledger timestamp into a
// canonical millisecond epoch. The ledger emits millisecond epochs, so any
// finite positive value is accepted as-is; zero, negative and non-finite
// values are rejected. No seconds-vs-milliseconds heuristic is applied.
func NormalizeTimestamp(raw float64) (int64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, ErrInvalidTimestamp
	}
	if raw <= 0 {
		return 0, ErrInvalidTimestamp
	}
	return int64(raw), nil
}
