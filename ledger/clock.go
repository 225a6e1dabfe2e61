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
	"context"

	"github.com/kowala-tech/ballot/params"
	"github.com/kowala-tech/ballot/types"
)

// ReadLedgerClock reads the shared clock object and returns the ledger's
// notion of now as a millisecond epoch. Local wall-clock time can drift from
// ledger time, so deadline checks on the voting path prefer this reading
// when it is obtainable.
func ReadLedgerClock(ctx context.Context, reader ObjectReader) (int64, error) {
	raw, err := reader.ReadObject(ctx, types.ObjectID(params.LedgerClockID))
	if err != nil {
		return 0, err
	}
	if raw == nil || raw.Fields == nil {
		return 0, ErrObjectNotFound
	}
	return types.NormalizeTimestamp(fieldNumber(raw.Fields, "timestamp_ms"))
}
