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

package voting

import (
	"fmt"
	"strings"
)

// Reason classifies the terminal outcome of a failed vote attempt.
type Reason byte

const (
	// ReasonNone marks a successful attempt.
	ReasonNone Reason = iota

	// ReasonMissingData marks an attempt started without a candidate,
	// account or ballot; no network call is made.
	ReasonMissingData

	// ReasonDuplicateVote marks a contract rejection because the account
	// already holds a vote-proof record for the ballot.
	ReasonDuplicateVote

	// ReasonBallotDelisted marks a contract rejection because the ballot
	// was withdrawn by an administrator.
	ReasonBallotDelisted

	// ReasonBallotExpired marks a rejection because the voting deadline
	// passed, detected locally, by the precheck, or by the contract.
	ReasonBallotExpired

	// ReasonCandidateNotFound marks a contract rejection for an unknown
	// candidate id.
	ReasonCandidateNotFound

	// ReasonNotRegisteredVoter marks a contract rejection because the
	// account is not on the ballot's voter register.
	ReasonNotRegisteredVoter

	// ReasonWalletNotConnected marks a wallet-level failure to produce a
	// signature because no account is paired.
	ReasonWalletNotConnected

	// ReasonUserRejected marks an explicit signature refusal in the wallet.
	ReasonUserRejected

	// ReasonTimeout marks a signature/broadcast that did not complete
	// within the submission window.
	ReasonTimeout

	// ReasonUnknown carries any unmatched failure with its raw message.
	ReasonUnknown
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMissingData:
		return "missing required data"
	case ReasonDuplicateVote:
		return "duplicate vote"
	case ReasonBallotDelisted:
		return "ballot delisted"
	case ReasonBallotExpired:
		return "ballot expired"
	case ReasonCandidateNotFound:
		return "candidate not found"
	case ReasonNotRegisteredVoter:
		return "not a registered voter"
	case ReasonWalletNotConnected:
		return "wallet not connected"
	case ReasonUserRejected:
		return "rejected by user"
	case ReasonTimeout:
		return "submission timed out"
	default:
		return "unknown"
	}
}

// VoteError is the terminal failure of one vote attempt.
type VoteError struct {
	Reason Reason
	Err    error
}

func (e *VoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vote failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("vote failed (%s)", e.Reason)
}

func (e *VoteError) Unwrap() error { return e.Err }

// reasonMarkers maps contract/wallet failure markers to reasons. Markers are
// matched case-insensitively against the raw failure message; order matters,
// the first reason with a matching marker wins.
var reasonMarkers = []struct {
	reason  Reason
	markers []string
}{
	{ReasonDuplicateVote, []string{"already voted", "eduplicatevote", ", 4)"}},
	{ReasonBallotDelisted, []string{"delisted", "eballotdelisted", ", 3)"}},
	{ReasonBallotExpired, []string{"expired", "eballotexpired", ", 2)"}},
	{ReasonCandidateNotFound, []string{"candidate not found", "ecandidatenotfound", "invalid candidate", ", 1)"}},
	{ReasonNotRegisteredVoter, []string{"not registered", "enotregistered", ", 5)"}},
	{ReasonWalletNotConnected, []string{"wallet not connected", "no active account", "no account connected"}},
	{ReasonUserRejected, []string{"rejected by user", "user rejected", "signature denied"}},
}

// Classify maps a submission/broadcast failure onto exactly one reason.
// Unmatched failures map to ReasonUnknown, keeping the raw message.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	msg := strings.ToLower(err.Error())
	for _, entry := range reasonMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(msg, marker) {
				return entry.reason
			}
		}
	}
	return ReasonUnknown
}
