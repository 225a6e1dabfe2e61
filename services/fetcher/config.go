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
	"time"

	"github.com/kowala-tech/ballot/params"
)

// DefaultConfig carries the protocol-level sync settings.
var DefaultConfig = Config{
	BatchSize:  params.FetchBatchSize,
	CacheTTL:   params.CacheTTL,
	MaxEntries: params.MaxCachedDashboards,
}

type Config struct {
	// BatchSize is the number of object ids per bulk read.
	BatchSize int `toml:",omitempty"`

	// CacheTTL is the staleness bound for cached dashboard entries.
	CacheTTL time.Duration `toml:",omitempty"`

	// MaxEntries bounds the number of cached dashboards.
	MaxEntries int `toml:",omitempty"`
}

func (cfg Config) sanitized() Config {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = params.FetchBatchSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = params.CacheTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = params.MaxCachedDashboards
	}
	return cfg
}
