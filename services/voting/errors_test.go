package voting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		msg  string
		want Reason
	}{
		{"MoveAbort in ballot::cast_vote: account has already voted", ReasonDuplicateVote},
		{"EDuplicateVote", ReasonDuplicateVote},
		{"ballot has been delisted", ReasonBallotDelisted},
		{"ballot expired before submission", ReasonBallotExpired},
		{"MoveAbort(ballot::cast_vote, 2)", ReasonBallotExpired},
		{"invalid candidate id", ReasonCandidateNotFound},
		{"account is not registered for this ballot", ReasonNotRegisteredVoter},
		{"wallet not connected", ReasonWalletNotConnected},
		{"signature denied in wallet", ReasonUserRejected},
		{"rejected by user", ReasonUserRejected},
		{"gas object unavailable", ReasonUnknown},
	} {
		t.Run(tc.msg, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(errors.New(tc.msg)))
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, ReasonNone, Classify(nil))
}

func TestVoteErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &VoteError{Reason: ReasonUnknown, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unknown")
	assert.Contains(t, err.Error(), "boom")
}
