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

package fetcher

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/log"
	"github.com/kowala-tech/ballot/types"
	"go.uber.org/zap"
)

func nowUnixMilli() int64 { return time.Now().UnixMilli() }

// Backend is the subset of ledger capabilities the fetcher consumes.
type Backend interface {
	ledger.ObjectReader
	ledger.BatchReader
}

// FetchOptions tunes one FetchAll call.
type FetchOptions struct {
	// ForceFresh bypasses the cache even when a valid entry exists.
	ForceFresh bool

	// OnProgress, if set, receives the completion percentage after every
	// batch, successful or not.
	OnProgress func(ProgressEvent)

	// OnBatch, if set, receives the (current, total) batch pair after every
	// batch, successful or not.
	OnBatch func(BatchEvent)
}

// Service turns a dashboard id into parsed ballots: it resolves the
// dashboard's ballot-id list, reads the ids in fixed-size sequential batches
// through the bulk read capability, and caches the result.
type Service struct {
	backend Backend
	cache   *Cache
	cfg     Config

	// nowMS resolves the parse-time clock; replaced in tests.
	nowMS func() int64

	flightMu sync.Mutex
	inFlight map[types.ObjectID]chan struct{}
}

// New retrieves a new instance of the fetcher service.
func New(backend Backend, cfg Config) *Service {
	cfg = cfg.sanitized()
	return &Service{
		backend:  backend,
		cache:    NewCache(cfg.CacheTTL, cfg.MaxEntries),
		cfg:      cfg,
		nowMS:    nowUnixMilli,
		inFlight: make(map[types.ObjectID]chan struct{}),
	}
}

// Cache exposes the dashboard cache so mutating actions can invalidate it.
func (s *Service) Cache() *Cache {
	return s.cache
}

// FetchAll returns the ballots listed by the given dashboard. Results come
// from the cache when a fresh entry exists and ForceFresh is unset. A failed
// dashboard read is fatal for the call; failed batches and unparseable
// objects only thin the result.
func (s *Service) FetchAll(ctx context.Context, dashboardID types.ObjectID, opts FetchOptions) ([]*types.Ballot, error) {
	if entry, ok := s.cache.Get(dashboardID, opts.ForceFresh); ok {
		log.Debug("Serving dashboard from cache",
			zap.String("dashboard", string(dashboardID)),
			zap.Int("ballots", len(entry.Ballots)))
		return entry.Ballots, nil
	}

	// Coalesce with an in-flight fetch for the same key: followers wait and
	// serve the leader's freshly written entry, closing the
	// last-completion-wins overwrite race.
	for {
		done, leader := s.beginFetch(dashboardID)
		if leader {
			break
		}
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if entry, ok := s.cache.Get(dashboardID, false); ok {
			return entry.Ballots, nil
		}
		// the leader failed; compete to fetch ourselves
	}
	defer s.endFetch(dashboardID)

	ids, err := s.readDashboard(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	// an empty dashboard is still cached to avoid hammering the read API
	// on repeated views
	if len(ids) == 0 {
		s.cache.Put(dashboardID, []*types.Ballot{})
		return []*types.Ballot{}, nil
	}

	ballots := s.fetchBatches(ctx, ids, opts)
	s.cache.Put(dashboardID, ballots)

	log.Info("Dashboard synchronized",
		zap.String("dashboard", string(dashboardID)),
		zap.Int("referenced", len(ids)),
		zap.Int("parsed", len(ballots)))

	return ballots, nil
}

func (s *Service) readDashboard(ctx context.Context, dashboardID types.ObjectID) ([]types.ObjectID, error) {
	raw, err := s.backend.ReadObject(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ledger.ErrObjectNotFound
	}
	return ledger.ParseDashboardIDs(raw)
}

func (s *Service) fetchBatches(ctx context.Context, ids []types.ObjectID, opts FetchOptions) []*types.Ballot {
	totalBatches := (len(ids) + s.cfg.BatchSize - 1) / s.cfg.BatchSize
	ballots := make([]*types.Ballot, 0, len(ids))

	// batches run strictly sequentially to bound load on the rate-limited
	// read API and keep progress monotonic
	for batch := 0; batch < totalBatches; batch++ {
		start := batch * s.cfg.BatchSize
		end := start + s.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		raws, err := s.backend.ReadObjectsBatch(ctx, ids[start:end])
		if err != nil {
			// a single bad batch thins the result but never aborts the fetch
			log.Warn("Batch read failed",
				zap.Int("batch", batch+1),
				zap.Int("totalBatches", totalBatches),
				zap.Error(err))
		} else {
			now := s.nowMS()
			for _, raw := range raws {
				if ballot := ledger.ParseBallot(raw, now); ballot != nil {
					ballots = append(ballots, ballot)
				}
			}
		}

		if opts.OnBatch != nil {
			opts.OnBatch(BatchEvent{Current: batch + 1, Total: totalBatches})
		}
		if opts.OnProgress != nil {
			percent := int(math.Round(100 * float64(batch+1) / float64(totalBatches)))
			opts.OnProgress(ProgressEvent{Percent: percent})
		}
	}

	return ballots
}

func (s *Service) beginFetch(key types.ObjectID) (chan struct{}, bool) {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()

	if done, ok := s.inFlight[key]; ok {
		return done, false
	}
	done := make(chan struct{})
	s.inFlight[key] = done
	return done, true
}

func (s *Service) endFetch(key types.ObjectID) {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()

	if done, ok := s.inFlight[key]; ok {
		close(done)
		delete(s.inFlight, key)
	}
}
