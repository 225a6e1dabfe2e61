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

// Status represents the lifecycle state of a ballot.
type Status byte

const (
	// Active represents a ballot open for voting.
	Active Status = iota

	// Delisted represents a ballot withdrawn by an administrator.
	Delisted

	// Expired represents a ballot whose voting deadline has passed.
	Expired
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Delisted:
		return "delisted"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// ResolveStatus derives a ballot's lifecycle state from the contract's
// explicit flags and its normalized expiration. The explicit delisted flag
// wins over everything else; the expired flag or a past deadline comes next.
// A deadline equal to now counts as not yet expired.
//
// now is supplied by the caller so the same derivation can be evaluated
// against the local wall clock (display) and against a ledger-reported clock
// (pre-vote re-validation).
func ResolveStatus(delisted, expired bool, expiration, now int64) Status {
	switch {
	case delisted:
		return Delisted
	case expired || expiration < now:
		return Expired
	default:
		return Active
	}
}
