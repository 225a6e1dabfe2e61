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
	"strconv"

	"github.com/kowala-tech/ballot/services/admin"
	"github.com/kowala-tech/ballot/types"
	"github.com/spf13/cobra"
)

var adminDashboard string

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Ballot lifecycle management",
}

var (
	createExpiration int64
	createPrivate    bool
)

var createCmd = &cobra.Command{
	Use:   "create <title> <description>",
	Short: "Register a new ballot on the dashboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.CreateBallot(ctx, types.ObjectID(adminDashboard), args[0], args[1], createExpiration, createPrivate)
		})
	},
}

var delistCmd = &cobra.Command{
	Use:   "delist <ballot-id>",
	Short: "Withdraw a ballot from voting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.DelistBallot(ctx, types.ObjectID(adminDashboard), types.ObjectID(args[0]))
		})
	},
}

var reactivateCmd = &cobra.Command{
	Use:   "reactivate <ballot-id>",
	Short: "Put a delisted ballot back up for voting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.ReactivateBallot(ctx, types.ObjectID(adminDashboard), types.ObjectID(args[0]))
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <ballot-id>",
	Short: "Remove a ballot from the dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.DeleteBallot(ctx, types.ObjectID(adminDashboard), types.ObjectID(args[0]))
		})
	},
}

var addCandidateCmd = &cobra.Command{
	Use:   "add-candidate <ballot-id> <name> <description> [image-url]",
	Short: "Append a candidate to a ballot",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageURL := ""
		if len(args) == 4 {
			imageURL = args[3]
		}
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.AddCandidate(ctx, types.ObjectID(adminDashboard), types.ObjectID(args[0]), args[1], args[2], imageURL)
		})
	},
}

var removeCandidateCmd = &cobra.Command{
	Use:   "remove-candidate <ballot-id> <candidate-id>",
	Short: "Remove a candidate from a ballot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidateID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid candidate id %q: %w", args[1], err)
		}
		return runAdmin(func(ctx context.Context, svc *admin.Service) (string, error) {
			return svc.RemoveCandidate(ctx, types.ObjectID(adminDashboard), types.ObjectID(args[0]), candidateID)
		})
	},
}

func init() {
	adminCmd.PersistentFlags().StringVar(&adminDashboard, "dashboard", "", "dashboard holding the ballot")
	adminCmd.MarkPersistentFlagRequired("dashboard")

	createCmd.Flags().Int64Var(&createExpiration, "expiration", 0, "voting deadline as a millisecond epoch")
	createCmd.Flags().BoolVar(&createPrivate, "private", false, "restrict voting to registered accounts")
	createCmd.MarkFlagRequired("expiration")

	adminCmd.AddCommand(createCmd, delistCmd, reactivateCmd, deleteCmd, addCandidateCmd, removeCandidateCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdmin(op func(context.Context, *admin.Service) (string, error)) error {
	client := newClient()
	svc := admin.New(client, client, newFetcher(client).Cache())

	txID, err := op(context.Background(), svc)
	if err != nil {
		return err
	}
	fmt.Println("transaction:", txID)
	return nil
}
