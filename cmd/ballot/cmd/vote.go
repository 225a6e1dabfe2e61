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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/services/voting"
	"github.com/kowala-tech/ballot/types"
	"github.com/spf13/cobra"
)

var voteDashboard string

var voteCmd = &cobra.Command{
	Use:   "vote <ballot-id> <candidate-id>",
	Short: "Cast a vote for a candidate",
	Args:  cobra.ExactArgs(2),
	RunE:  runVote,
}

func init() {
	voteCmd.Flags().StringVar(&voteDashboard, "dashboard", "", "dashboard holding the ballot")
	voteCmd.MarkFlagRequired("dashboard")
	rootCmd.AddCommand(voteCmd)
}

func runVote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient()

	ballotID := types.ObjectID(args[0])
	candidateID, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid candidate id %q: %w", args[1], err)
	}

	raw, err := client.ReadObject(ctx, ballotID)
	if err != nil {
		return err
	}
	ballot := ledger.ParseBallot(raw, time.Now().UnixMilli())
	if ballot == nil {
		return fmt.Errorf("object %s is not a ballot", ballotID)
	}

	candidate := ballot.Candidate(candidateID)

	// re-voting is gated here, not in the submitter
	if account, ok := client.CurrentAccount(); ok {
		voted, err := voting.VotedMap(ctx, client, account)
		if err != nil {
			return err
		}
		if voted[ballot.ID] {
			return fmt.Errorf("account already voted on ballot %s", ballot.ID)
		}
	}

	receipt, err := newVoting(client).Submit(ctx, ballot, types.ObjectID(voteDashboard), candidate)
	if err != nil {
		var voteErr *voting.VoteError
		if errors.As(err, &voteErr) {
			return fmt.Errorf("vote not recorded: %s", voteErr.Reason)
		}
		return err
	}

	if receipt.Unconfirmed {
		fmt.Printf("vote broadcast (tx %s) but confirmation status unknown\n", receipt.TxID)
	} else {
		fmt.Printf("vote confirmed (tx %s): %s now at %d votes\n",
			receipt.TxID, candidate.Name, candidate.Votes)
	}
	return nil
}
