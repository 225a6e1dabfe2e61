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
	"errors"

	"github.com/kowala-tech/ballot/types"
)

var (
	// ErrObjectNotFound is returned by single-object reads for unknown ids.
	ErrObjectNotFound = errors.New("ledger object not found")

	// ErrNotADashboard is returned when an object expected to be a dashboard
	// index carries a foreign type tag.
	ErrNotADashboard = errors.New("object is not a dashboard")
)

// ObjectReader is the single-object read capability.
type ObjectReader interface {
	ReadObject(ctx context.Context, id types.ObjectID) (*RawObject, error)
}

// BatchReader is the bulk read capability. The result has the same
// cardinality as the input; absent objects appear as nil entries.
type BatchReader interface {
	ReadObjectsBatch(ctx context.Context, ids []types.ObjectID) ([]*RawObject, error)
}

// OwnedObjectReader lists the raw objects of one type owned by an account.
type OwnedObjectReader interface {
	ReadOwnedObjects(ctx context.Context, owner types.Address, typeTag string) ([]*RawObject, error)
}

// CallReader performs side-effect-free contract invocations.
type CallReader interface {
	ReadOnlyCall(ctx context.Context, function string, args ...any) ([]any, error)
}

// Transaction is a state-changing contract call awaiting signature and
// broadcast by the wallet capability.
type Transaction struct {
	Sender   types.Address
	Function string
	Args     []any
}

// TransactionSender requests signature and broadcast of a transaction,
// yielding a transaction identifier or a failure.
type TransactionSender interface {
	SubmitTransaction(ctx context.Context, tx *Transaction) (string, error)
}

// FinalityWaiter waits until a broadcast transaction's effects are final.
type FinalityWaiter interface {
	WaitForFinality(ctx context.Context, txID string) error
}

// AccountProvider exposes the ambient wallet account, which may change at
// any time.
type AccountProvider interface {
	CurrentAccount() (types.Address, bool)
}

// Backend bundles every ledger capability the engine consumes.
type Backend interface {
	ObjectReader
	BatchReader
	OwnedObjectReader
	CallReader
	TransactionSender
	FinalityWaiter
}
