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
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/params"
	"github.com/kowala-tech/ballot/types"
	"go.uber.org/zap"
)

// ParseBallot decodes one raw ledger object into a Ballot, absorbing the
// historical wire encodings. Objects of a foreign type, and malformed
// objects, yield nil rather than an error: dashboards may reference object
// kinds this client does not understand, and dropping them silently degrades
// completeness, not correctness.
//
// now is the millisecond instant used to resolve time-based expiry.
func ParseBallot(raw *RawObject, now int64) *types.Ballot {
	if raw == nil || !raw.HasType(params.BallotTypeTag) {
		return nil
	}

	fields := raw.Fields
	if fields == nil {
		return nil
	}

	expiration, err := types.NormalizeTimestamp(fieldNumber(fields, "expiration"))
	if err != nil {
		log.Debug("Ballot carries an invalid expiration",
			zap.String("object", string(raw.ID)), zap.Error(err))
		expiration = 0
	}

	delisted := fieldBool(fields, "is_delisted")
	expired := fieldBool(fields, "is_expired")

	return &types.Ballot{
		ID:          raw.ID,
		Title:       fieldString(fields, "title", params.FallbackBallotTitle),
		Description: fieldString(fields, "description", params.FallbackBallotDescription),
		Candidates:  parseCandidates(fieldSlice(fields, "candidates")),
		TotalVotes:  uint64(fieldNumber(fields, "total_votes")),
		Expiration:  expiration,
		Private:     fieldBool(fields, "is_private"),
		Creator:     types.Address(fieldString(fields, "creator", "")),
		Status:      types.ResolveStatus(delisted, expired, expiration, now),
	}
}

// parseCandidates decodes a candidate sequence. A candidate with no id of
// its own takes its position in the decoded sequence as id.
func parseCandidates(seq []any) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(seq))
	for i, elem := range seq {
		fields := innerFields(elem)
		if fields == nil {
			continue
		}

		id := uint64(i)
		if _, ok := fields["id"]; ok {
			id = uint64(fieldNumber(fields, "id"))
		}

		votes := fieldNumber(fields, "vote_count")
		if _, ok := fields["votes"]; ok {
			votes = fieldNumber(fields, "votes")
		}

		candidates = append(candidates, types.Candidate{
			ID:          id,
			Name:        fieldString(fields, "name", params.FallbackCandidateName),
			Description: fieldString(fields, "description", params.FallbackBallotDescription),
			Votes:       uint64(votes),
			ImageURL:    optionalString(fields["image_url"]),
		})
	}
	return candidates
}

// ParseDashboardIDs extracts the ballot-id list from a dashboard index
// object, with the same array/"vec" tolerance applied to sequence fields.
// A foreign type tag is an error here: the dashboard read is the one read
// the fetch cannot proceed without.
func ParseDashboardIDs(raw *RawObject) ([]types.ObjectID, error) {
	if !raw.HasType(params.DashboardTypeTag) {
		return nil, ErrNotADashboard
	}

	ids := make([]types.ObjectID, 0)
	for _, elem := range fieldSlice(raw.Fields, "ballot_ids") {
		switch v := elem.(type) {
		case string:
			ids = append(ids, types.ObjectID(v))
		case map[string]any:
			if s, ok := v["id"].(string); ok {
				ids = append(ids, types.ObjectID(s))
			}
		}
	}
	return ids, nil
}

// ParseVoteRecordBallotID extracts the ballot referenced by a vote-proof
// record. Returns "" for objects that are not vote records.
func ParseVoteRecordBallotID(raw *RawObject) types.ObjectID {
	if raw == nil || !raw.HasType(params.VoteRecordTypeTag) {
		return ""
	}
	return types.ObjectID(fieldString(raw.Fields, "ballot_id", ""))
}
