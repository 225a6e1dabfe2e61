package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestampAcceptsPositiveMilliseconds(t *testing.T) {
	ms, err := NormalizeTimestamp(1_700_000_000_000)
	assert.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_000), ms)
}

func TestNormalizeTimestampRejectsInvalidInput(t *testing.T) {
	for _, raw := range []float64{0, -1, -1_700_000_000_000, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NormalizeTimestamp(raw)
		assert.Equal(t, ErrInvalidTimestamp, err)
	}
}

func TestNormalizeTimestampIsIdempotent(t *testing.T) {
	for _, raw := range []float64{1, 1_000, 1_700_000_000_000} {
		once, err := NormalizeTimestamp(raw)
		assert.NoError(t, err)

		twice, err := NormalizeTimestamp(float64(once))
		assert.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
