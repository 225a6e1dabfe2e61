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
	"context"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/params"
	"github.com/kowala-tech/ballot/types"
)

// VotedMap reads the vote-proof records owned by account and returns the
// referenced ballot ids as a presence map. Absence means "not voted"; the
// client never invents the voted fact. The map is recomputed on every call
// and must not be cached: the ledger is the freshness source, and the
// ambient account can change at any time.
func VotedMap(ctx context.Context, reader ledger.OwnedObjectReader, account types.Address) (map[types.ObjectID]bool, error) {
	records, err := reader.ReadOwnedObjects(ctx, account, params.VoteRecordTypeTag)
	if err != nil {
		return nil, err
	}

	voted := make(map[types.ObjectID]bool, len(records))
	for _, record := range records {
		if id := ledger.ParseVoteRecordBallotID(record); id != "" {
			voted[id] = true
		}
	}
	return voted, nil
}

// MarkVoted returns the given ballots annotated with the account's voted
// map. The inputs stay untouched: cached ballots are shared across reads,
// and a per-account flag written into the cache would leak to whichever
// account reads the entry next.
func MarkVoted(ballots []*types.Ballot, voted map[types.ObjectID]bool) []*types.Ballot {
	marked := make([]*types.Ballot, len(ballots))
	for i, ballot := range ballots {
		annotated := *ballot
		annotated.HasVoted = voted[ballot.ID]
		marked[i] = &annotated
	}
	return marked
}
