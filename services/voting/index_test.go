package voting

import (
	"context"
	"errors"
	"testing"

	"github.com/kowala-tech/ballot/ledger"
	"github.com/kowala-tech/ballot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOwnedReader struct {
	mock.Mock
}

func (m *MockOwnedReader) ReadOwnedObjects(ctx context.Context, owner types.Address, typeTag string) ([]*ledger.RawObject, error) {
	args := m.Called(ctx, owner, typeTag)
	if objs := args.Get(0); objs != nil {
		return objs.([]*ledger.RawObject), args.Error(1)
	}
	return nil, args.Error(1)
}

func voteRecord(id, ballotID string) *ledger.RawObject {
	return &ledger.RawObject{
		ID:     types.ObjectID(id),
		Type:   "0xpkg::ballot::VoteRecord",
		Fields: map[string]any{"ballot_id": ballotID},
	}
}

func TestVotedMap(t *testing.T) {
	reader := &MockOwnedReader{}
	reader.On("ReadOwnedObjects", mock.Anything, types.Address("0xvoter"), "ballot::VoteRecord").
		Return([]*ledger.RawObject{
			voteRecord("0xv1", "0xb1"),
			voteRecord("0xv2", "0xb3"),
			// foreign object slipped into the ownership listing
			{ID: "0xn1", Type: "0xpkg::coin::Coin", Fields: map[string]any{}},
		}, nil)

	voted, err := VotedMap(context.Background(), reader, "0xvoter")
	assert.NoError(t, err)
	assert.Equal(t, map[types.ObjectID]bool{"0xb1": true, "0xb3": true}, voted)

	// absence means "not voted", never "voted false"
	assert.False(t, voted["0xb2"])
}

func TestVotedMapPropagatesReadError(t *testing.T) {
	reader := &MockOwnedReader{}
	reader.On("ReadOwnedObjects", mock.Anything, types.Address("0xvoter"), "ballot::VoteRecord").
		Return(nil, errors.New("rpc unreachable"))

	_, err := VotedMap(context.Background(), reader, "0xvoter")
	assert.Error(t, err)
}

func TestMarkVoted(t *testing.T) {
	ballots := []*types.Ballot{{ID: "0xb1"}, {ID: "0xb2"}}

	marked := MarkVoted(ballots, map[types.ObjectID]bool{"0xb1": true})

	assert.True(t, marked[0].HasVoted)
	assert.False(t, marked[1].HasVoted)
}

func TestMarkVotedLeavesInputsUntouched(t *testing.T) {
	// Fetched ballots live in a shared cache, so the per-account flag must
	// land on copies. A second account reading the same cache entry would
	// otherwise inherit the first account's voted markers.
	ballots := []*types.Ballot{{ID: "0xb1", Title: "Budget"}, {ID: "0xb2"}}

	marked := MarkVoted(ballots, map[types.ObjectID]bool{"0xb1": true})

	assert.False(t, ballots[0].HasVoted)
	assert.False(t, ballots[1].HasVoted)
	assert.True(t, marked[0].HasVoted)
	assert.Equal(t, "Budget", marked[0].Title)

	// re-marking with an empty map must not see stale flags either
	again := MarkVoted(ballots, map[types.ObjectID]bool{})
	assert.False(t, again[0].HasVoted)
}
