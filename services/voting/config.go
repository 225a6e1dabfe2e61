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
	"time"

	"github.com/kowala-tech/ballot/params"
)

// DefaultConfig carries the protocol-level voting settings.
var DefaultConfig = Config{
	SubmissionTimeout: params.SubmissionTimeout,
	VoteFunction:      "ballot::cast_vote",
	PrecheckFunction:  "ballot::is_ballot_expired",
}

type Config struct {
	// SubmissionTimeout bounds the wallet signature/broadcast window.
	SubmissionTimeout time.Duration `toml:",omitempty"`

	// VoteFunction is the state-changing contract entry point.
	VoteFunction string `toml:",omitempty"`

	// PrecheckFunction is the read-only expiry query.
	PrecheckFunction string `toml:",omitempty"`
}

func (cfg Config) sanitized() Config {
	if cfg.SubmissionTimeout <= 0 {
		cfg.SubmissionTimeout = params.SubmissionTimeout
	}
	if cfg.VoteFunction == "" {
		cfg.VoteFunction = DefaultConfig.VoteFunction
	}
	if cfg.PrecheckFunction == "" {
		cfg.PrecheckFunction = DefaultConfig.PrecheckFunction
	}
	return cfg
}
