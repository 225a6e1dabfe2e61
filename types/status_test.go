package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatusDelistedWinsOverExpiration(t *testing.T) {
	now := int64(1_700_000_000_000)

	assert.Equal(t, Delisted, ResolveStatus(true, false, now-1, now))
	assert.Equal(t, Delisted, ResolveStatus(true, true, now-1, now))
	assert.Equal(t, Delisted, ResolveStatus(true, false, now+1_000, now))
}

func TestResolveStatusExpired(t *testing.T) {
	now := int64(1_700_000_000_000)

	assert.Equal(t, Expired, ResolveStatus(false, false, now-1, now))
	assert.Equal(t, Expired, ResolveStatus(false, true, now+1_000, now))
}

func TestResolveStatusActiveAtDeadlineInstant(t *testing.T) {
	now := int64(1_700_000_000_000)

	assert.Equal(t, Active, ResolveStatus(false, false, now, now))
	assert.Equal(t, Active, ResolveStatus(false, false, now+1, now))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "delisted", Delisted.String())
	assert.Equal(t, "expired", Expired.String())
	assert.Equal(t, "unknown", Status(42).String())
}
