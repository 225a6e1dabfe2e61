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
	"fmt"

	"github.com/kowala-tech/ballot/services/fetcher"
	"github.com/kowala-tech/ballot/services/voting"
	"github.com/kowala-tech/ballot/types"
	"github.com/spf13/cobra"
)

var forceFresh bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <dashboard-id>",
	Short: "Synchronize and print a dashboard's ballots",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&forceFresh, "fresh", false, "bypass the dashboard cache")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient()
	dashboardID := types.ObjectID(args[0])

	ballots, err := newFetcher(client).FetchAll(ctx, dashboardID, fetcher.FetchOptions{
		ForceFresh: forceFresh,
		OnProgress: func(ev fetcher.ProgressEvent) {
			fmt.Printf("\rfetching... %d%%", ev.Percent)
		},
	})
	if err != nil {
		return err
	}
	fmt.Println()

	voted := map[types.ObjectID]bool{}
	if account, ok := client.CurrentAccount(); ok {
		if voted, err = voting.VotedMap(ctx, client, account); err != nil {
			return err
		}
	}
	ballots = voting.MarkVoted(ballots, voted)

	for _, ballot := range ballots {
		marker := " "
		if ballot.HasVoted {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-30s %-8s votes=%d\n",
			marker, ballot.ID, ballot.Title, ballot.Status, ballot.TotalVotes)
		for _, candidate := range ballot.Candidates {
			fmt.Printf("    [%d] %-28s %d\n", candidate.ID, candidate.Name, candidate.Votes)
		}
	}
	return nil
}
