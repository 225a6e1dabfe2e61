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

package admin

import (
	"context"
	"errors"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/types"
	"go.uber.org/zap"
)

// ErrNoAccount is returned when a lifecycle action is attempted without a
// connected account.
var ErrNoAccount = errors.New("no account connected")

// Backend is the subset of ledger capabilities the admin service consumes.
type Backend interface {
	ledger.TransactionSender
	ledger.FinalityWaiter
}

// Invalidator drops a cached dashboard entry. Every mutating lifecycle
// action invalidates the affected dashboard so the next read bypasses
// staleness.
type Invalidator interface {
	Invalidate(key types.ObjectID)
}

// Service submits ballot lifecycle transactions on behalf of an
// administrator account.
type Service struct {
	backend  Backend
	accounts ledger.AccountProvider
	cache    Invalidator
}

// New retrieves a new instance of the admin service.
func New(backend Backend, accounts ledger.AccountProvider, cache Invalidator) *Service {
	return &Service{backend: backend, accounts: accounts, cache: cache}
}

// CreateBallot registers a new ballot on the given dashboard. expiration is
// a millisecond epoch.
func (s *Service) CreateBallot(ctx context.Context, dashboardID types.ObjectID, title, description string, expiration int64, private bool) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::create_ballot",
		string(dashboardID), title, description, expiration, private)
}

// DelistBallot withdraws a ballot from voting without deleting it.
func (s *Service) DelistBallot(ctx context.Context, dashboardID, ballotID types.ObjectID) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::delist_ballot",
		string(dashboardID), string(ballotID))
}

// ReactivateBallot puts a delisted ballot back up for voting.
func (s *Service) ReactivateBallot(ctx context.Context, dashboardID, ballotID types.ObjectID) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::reactivate_ballot",
		string(dashboardID), string(ballotID))
}

// DeleteBallot removes a ballot and its tallies from the dashboard.
func (s *Service) DeleteBallot(ctx context.Context, dashboardID, ballotID types.ObjectID) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::delete_ballot",
		string(dashboardID), string(ballotID))
}

// AddCandidate appends a candidate to an existing ballot.
func (s *Service) AddCandidate(ctx context.Context, dashboardID, ballotID types.ObjectID, name, description, imageURL string) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::add_candidate",
		string(dashboardID), string(ballotID), name, description, imageURL)
}

// RemoveCandidate removes a candidate from an existing ballot.
func (s *Service) RemoveCandidate(ctx context.Context, dashboardID, ballotID types.ObjectID, candidateID uint64) (string, error) {
	return s.submit(ctx, dashboardID, "ballot::remove_candidate",
		string(dashboardID), string(ballotID), candidateID)
}

func (s *Service) submit(ctx context.Context, dashboardID types.ObjectID, function string, args ...any) (string, error) {
	account, ok := s.accounts.CurrentAccount()
	if !ok {
		return "", ErrNoAccount
	}

	txID, err := s.backend.SubmitTransaction(ctx, &ledger.Transaction{
		Sender:   account,
		Function: function,
		Args:     args,
	})
	if err != nil {
		return "", err
	}

	if err := s.backend.WaitForFinality(ctx, txID); err != nil {
		// effects may still land; invalidate regardless so the next read
		// consults the ledger
		log.Warn("Lifecycle transaction unconfirmed",
			zap.String("function", function),
			zap.String("tx", txID),
			zap.Error(err))
	}

	s.cache.Invalidate(dashboardID)
	log.Info("Lifecycle transaction submitted",
		zap.String("function", function),
		zap.String("dashboard", string(dashboardID)),
		zap.String("tx", txID))

	return txID, nil
}
