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

package params

import "time"

const (
	// FetchBatchSize refers to the maximum number of ballot objects requested
	// in a single bulk read; batches are issued sequentially to bound the
	// load on the rate-limited read API.
	FetchBatchSize = 20

	// CacheTTL represents the period during which a cached dashboard entry
	// is served without contacting the ledger.
	CacheTTL = 5 * time.Minute

	// SubmissionTimeout represents the time available for the wallet to sign
	// and broadcast a vote transaction before the attempt is abandoned.
	SubmissionTimeout = 30 * time.Second

	// FinalityPollInterval represents the interval between finality checks
	// while awaiting confirmation of a broadcast transaction.
	FinalityPollInterval = time.Second

	// MaxCachedDashboards bounds the number of dashboard entries kept in the
	// object cache.
	MaxCachedDashboards = 64
)

const (
	// BallotTypeTag is the on-chain type tag of ballot objects.
	BallotTypeTag = "ballot::Ballot"

	// DashboardTypeTag is the on-chain type tag of dashboard index objects.
	DashboardTypeTag = "dashboard::Dashboard"

	// VoteRecordTypeTag is the on-chain type tag of per-account vote proofs.
	VoteRecordTypeTag = "ballot::VoteRecord"

	// LedgerClockID is the well-known identifier of the ledger clock object
	// referenced by vote transactions.
	LedgerClockID = "0x6"
)

const (
	// FallbackBallotTitle is used when a ballot record carries no title.
	FallbackBallotTitle = "Untitled Ballot"

	// FallbackBallotDescription is used when a ballot record carries no
	// description.
	FallbackBallotDescription = "No description"

	// FallbackCandidateName is used when a candidate record carries no name.
	FallbackCandidateName = "Unnamed Candidate"
)
