package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/types"
	"github.com/stretchr/testify/assert"
)

type fakeBackend struct {
	submitErr   error
	finalityErr error
	lastTx      *ledger.Transaction
	submitCalls int
}

func (b *fakeBackend) SubmitTransaction(ctx context.Context, tx *ledger.Transaction) (string, error) {
	b.submitCalls++
	b.lastTx = tx
	if b.submitErr != nil {
		return "", b.submitErr
	}
	return "0xtx1", nil
}

func (b *fakeBackend) WaitForFinality(ctx context.Context, txID string) error {
	return b.finalityErr
}

type fakeCache struct {
	invalidated []types.ObjectID
}

func (c *fakeCache) Invalidate(key types.ObjectID) {
	c.invalidated = append(c.invalidated, key)
}

type staticAccounts struct {
	addr      types.Address
	connected bool
}

func (a staticAccounts) CurrentAccount() (types.Address, bool) { return a.addr, a.connected }

func TestDelistBallotInvalidatesDashboard(t *testing.T) {
	backend := &fakeBackend{}
	cache := &fakeCache{}
	svc := New(backend, staticAccounts{addr: "0xadmin", connected: true}, cache)

	txID, err := svc.DelistBallot(context.Background(), "0xd1", "0xb1")
	assert.NoError(t, err)
	assert.Equal(t, "0xtx1", txID)

	assert.Equal(t, []types.ObjectID{"0xd1"}, cache.invalidated)
	assert.Equal(t, "ballot::delist_ballot", backend.lastTx.Function)
	assert.Equal(t, types.Address("0xadmin"), backend.lastTx.Sender)
}

func TestCreateBallotArgs(t *testing.T) {
	backend := &fakeBackend{}
	cache := &fakeCache{}
	svc := New(backend, staticAccounts{addr: "0xadmin", connected: true}, cache)

	_, err := svc.CreateBallot(context.Background(), "0xd1", "Board election", "Annual", 1_700_000_000_000, true)
	assert.NoError(t, err)
	assert.Equal(t, "ballot::create_ballot", backend.lastTx.Function)
	assert.Equal(t, []any{"0xd1", "Board election", "Annual", int64(1_700_000_000_000), true}, backend.lastTx.Args)
}

func TestLifecycleRequiresAccount(t *testing.T) {
	backend := &fakeBackend{}
	cache := &fakeCache{}
	svc := New(backend, staticAccounts{connected: false}, cache)

	_, err := svc.DeleteBallot(context.Background(), "0xd1", "0xb1")
	assert.Equal(t, ErrNoAccount, err)
	assert.Equal(t, 0, backend.submitCalls)
	assert.Empty(t, cache.invalidated)
}

func TestLifecycleSubmitFailureSkipsInvalidation(t *testing.T) {
	backend := &fakeBackend{submitErr: errors.New("rejected by user")}
	cache := &fakeCache{}
	svc := New(backend, staticAccounts{addr: "0xadmin", connected: true}, cache)

	_, err := svc.AddCandidate(context.Background(), "0xd1", "0xb1", "Carol", "third", "")
	assert.Error(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestLifecycleUnconfirmedStillInvalidates(t *testing.T) {
	backend := &fakeBackend{finalityErr: errors.New("checkpoint lagging")}
	cache := &fakeCache{}
	svc := New(backend, staticAccounts{addr: "0xadmin", connected: true}, cache)

	txID, err := svc.RemoveCandidate(context.Background(), "0xd1", "0xb1", 2)
	assert.NoError(t, err)
	assert.Equal(t, "0xtx1", txID)
	assert.Equal(t, []types.ObjectID{"0xd1"}, cache.invalidated)
}
