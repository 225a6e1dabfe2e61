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

// ObjectID is a ledger-assigned opaque object identifier.
type ObjectID string

// Address identifies an account on the ledger.
type Address string

// Candidate represents one selectable option within a ballot. Identity is
// the ID field; Votes is ledger-authoritative and only ever patched locally
// as a provisional value superseded by the next real fetch.
type Candidate struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Votes       uint64 `json:"votes"`

	// ImageURL is optional; empty means the candidate carries no image.
	ImageURL string `json:"imageUrl,omitempty"`
}

// Ballot represents an on-chain voting record with its candidates and
// running tallies. Candidate order mirrors ledger storage order and carries
// no semantic weight.
type Ballot struct {
	ID          ObjectID    `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Candidates  []Candidate `json:"candidates"`
	TotalVotes  uint64      `json:"totalVotes"`

	// Expiration is a canonical millisecond epoch.
	Expiration int64 `json:"expiration"`

	Private bool    `json:"isPrivate"`
	Creator Address `json:"creator"`
	Status  Status  `json:"status"`

	// HasVoted is a client-local annotation for the current account, derived
	// from vote-proof records or from a just-confirmed vote; the ledger
	// never carries it.
	HasVoted bool `json:"hasVoted,omitempty"`
}

// Candidate returns the candidate with the given id, or nil.
func (b *Ballot) Candidate(id uint64) *Candidate {
	for i := range b.Candidates {
		if b.Candidates[i].ID == id {
			return &b.Candidates[i]
		}
	}
	return nil
}

// TallyConsistent reports whether the ballot total matches the per-candidate
// sum. The ledger converges towards consistency but a read taken right after
// a vote may legitimately disagree, so callers must treat a mismatch as
// transient rather than as corruption.
func (b *Ballot) TallyConsistent() bool {
	var sum uint64
	for i := range b.Candidates {
		sum += b.Candidates[i].Votes
	}
	return sum == b.TotalVotes
}

// ApplyVote patches the ballot with a provisional local vote for the given
// candidate. The patch is superseded by the next authoritative fetch.
func (b *Ballot) ApplyVote(candidateID uint64) {
	if c := b.Candidate(candidateID); c != nil {
		c.Votes++
	}
	b.TotalVotes++
}
