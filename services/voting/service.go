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
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/params"
	"github.com/kowala-tech/ballot/types"
	"go.uber.org/zap"
)

// State is the position of the current vote attempt in its lifecycle.
type State byte

const (
	Idle State = iota
	PrecheckRunning
	Submitting
	AwaitingConfirmation
	Confirmed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PrecheckRunning:
		return "precheck"
	case Submitting:
		return "submitting"
	case AwaitingConfirmation:
		return "awaiting confirmation"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Backend is the subset of ledger capabilities the submitter consumes.
type Backend interface {
	ledger.ObjectReader
	ledger.CallReader
	ledger.TransactionSender
	ledger.FinalityWaiter
}

// Receipt is the outcome of a successful vote attempt.
type Receipt struct {
	// AttemptID ties the receipt to this attempt's log lines.
	AttemptID string

	// TxID is the broadcast transaction's identifier.
	TxID string

	// Unconfirmed is set when the broadcast succeeded but the finality wait
	// itself failed; the vote may well have landed, so the optimistic local
	// update stays in place.
	Unconfirmed bool
}

// Service submits vote transactions: a best-effort read-only expiry
// precheck, the state-changing call under a bounded signature window, a
// finality wait, and an optimistic local patch on success.
//
// The service does not re-check the voted flag before submitting; callers
// gate attempts on ballots already flagged voted.
type Service struct {
	backend  Backend
	accounts ledger.AccountProvider
	cfg      Config

	stateMu sync.Mutex
	state   State

	// nowMS resolves the local clock for short-circuit checks; replaced in
	// tests.
	nowMS func() int64
}

// New retrieves a new instance of the voting service.
func New(backend Backend, accounts ledger.AccountProvider, cfg Config) *Service {
	return &Service{
		backend:  backend,
		accounts: accounts,
		cfg:      cfg.sanitized(),
		nowMS:    func() int64 { return time.Now().UnixMilli() },
	}
}

// State returns the current attempt's state, for rendering only.
func (s *Service) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Service) setState(state State) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

// Submit casts a vote for the given candidate of the given ballot. The
// returned error is a *VoteError carrying the terminal reason; on success
// the ballot is patched with a provisional vote, superseded by the next
// authoritative fetch.
func (s *Service) Submit(ctx context.Context, ballot *types.Ballot, dashboardID types.ObjectID, candidate *types.Candidate) (*Receipt, error) {
	s.setState(Idle)
	attemptID := uuid.NewString()

	if ballot == nil || candidate == nil {
		return nil, s.fail(attemptID, ReasonMissingData, nil)
	}
	account, ok := s.accounts.CurrentAccount()
	if !ok {
		return nil, s.fail(attemptID, ReasonMissingData, nil)
	}

	// client-side knowledge short-circuits without contacting the ledger
	if ballot.Status == types.Expired || ballot.Expiration <= s.nowMS() {
		return nil, s.fail(attemptID, ReasonBallotExpired, nil)
	}

	if reason, expired := s.precheck(ctx, attemptID, ballot); expired {
		return nil, s.fail(attemptID, reason, nil)
	}

	txID, err := s.broadcast(ctx, attemptID, ballot, dashboardID, candidate, account)
	if err != nil {
		return nil, err
	}

	return s.awaitFinality(ctx, attemptID, txID, ballot, candidate)
}

// precheck asks the contract whether the ballot is expired as of ledger
// time, falling back to a direct ledger clock read when the call errors. It
// is deliberately best-effort: the ledger is the final arbiter at submission
// time, so an unobtainable clock proceeds rather than blocking the user.
func (s *Service) precheck(ctx context.Context, attemptID string, ballot *types.Ballot) (Reason, bool) {
	s.setState(PrecheckRunning)

	results, err := s.backend.ReadOnlyCall(ctx, s.cfg.PrecheckFunction,
		string(ballot.ID), params.LedgerClockID)
	if err != nil {
		log.Warn("Expiry precheck failed, re-validating against the ledger clock",
			zap.String("attempt", attemptID), zap.Error(err))
		return s.recheckAgainstLedgerClock(ctx, attemptID, ballot)
	}

	if len(results) > 0 {
		if expired, ok := results[0].(bool); ok && expired {
			// the ledger clock just revealed the deadline passed
			ballot.Status = types.Expired
			return ReasonBallotExpired, true
		}
	}
	return ReasonNone, false
}

// recheckAgainstLedgerClock re-evaluates the ballot deadline against the
// ledger's own clock. Local wall-clock drift must never produce a false
// "active" at submission time, so the freshest obtainable clock gets the
// last word; failure to obtain it is non-fatal.
func (s *Service) recheckAgainstLedgerClock(ctx context.Context, attemptID string, ballot *types.Ballot) (Reason, bool) {
	ledgerNow, err := ledger.ReadLedgerClock(ctx, s.backend)
	if err != nil {
		log.Warn("Ledger clock unavailable, proceeding with submission",
			zap.String("attempt", attemptID), zap.Error(err))
		return ReasonNone, false
	}

	if types.ResolveStatus(false, false, ballot.Expiration, ledgerNow) == types.Expired {
		ballot.Status = types.Expired
		return ReasonBallotExpired, true
	}
	return ReasonNone, false
}

func (s *Service) broadcast(ctx context.Context, attemptID string, ballot *types.Ballot, dashboardID types.ObjectID, candidate *types.Candidate, account types.Address) (string, error) {
	s.setState(Submitting)

	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmissionTimeout)
	defer cancel()

	txID, err := s.backend.SubmitTransaction(submitCtx, &ledger.Transaction{
		Sender:   account,
		Function: s.cfg.VoteFunction,
		Args:     []any{string(ballot.ID), string(dashboardID), candidate.ID, params.LedgerClockID},
	})
	if err == nil {
		return txID, nil
	}

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return "", s.fail(attemptID, ReasonTimeout, err)
	}

	reason := Classify(err)
	switch reason {
	case ReasonDuplicateVote:
		// the ledger just revealed a vote-proof record exists
		ballot.HasVoted = true
	case ReasonBallotDelisted:
		ballot.Status = types.Delisted
	case ReasonBallotExpired:
		ballot.Status = types.Expired
	}
	return "", s.fail(attemptID, reason, err)
}

// awaitFinality waits for the broadcast transaction's effects to settle. A
// failing wait after a successful broadcast must not under-report a possibly
// successful vote: the attempt confirms with the Unconfirmed flag set and
// the optimistic patch stays.
func (s *Service) awaitFinality(ctx context.Context, attemptID, txID string, ballot *types.Ballot, candidate *types.Candidate) (*Receipt, error) {
	s.setState(AwaitingConfirmation)

	receipt := &Receipt{AttemptID: attemptID, TxID: txID}
	if err := s.backend.WaitForFinality(ctx, txID); err != nil {
		log.Warn("Vote broadcast but confirmation status unknown",
			zap.String("attempt", attemptID),
			zap.String("tx", txID),
			zap.Error(err))
		receipt.Unconfirmed = true
	}

	// provisional local patch, superseded by the next authoritative fetch
	ballot.ApplyVote(candidate.ID)
	ballot.HasVoted = true

	s.setState(Confirmed)
	log.Info("Vote recorded",
		zap.String("attempt", attemptID),
		zap.String("ballot", string(ballot.ID)),
		zap.Uint64("candidate", candidate.ID),
		zap.String("tx", txID),
		zap.Bool("unconfirmed", receipt.Unconfirmed))

	return receipt, nil
}

func (s *Service) fail(attemptID string, reason Reason, cause error) error {
	if reason == ReasonTimeout {
		// a timed-out signature window resets the attempt entirely
		s.setState(Idle)
	} else {
		s.setState(Failed)
	}
	log.Info("Vote attempt failed",
		zap.String("attempt", attemptID),
		zap.String("reason", reason.String()),
		zap.Error(cause))
	return &VoteError{Reason: reason, Err: cause}
}
