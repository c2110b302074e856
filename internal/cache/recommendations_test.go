package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledCache_AllOperationsAreNoops(t *testing.T) {
	c := NewDisabled()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "user-1", 12, []string{"anything"}))

	var dest []string
	hit, err := c.Get(ctx, "user-1", 12, &dest)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, dest)

	assert.NoError(t, c.Invalidate(ctx, "user-1"))
	assert.NoError(t, c.Close())
}

func TestKey_IncludesUserAndLimit(t *testing.T) {
	c := NewDisabled()

	assert.Equal(t, "recs:user:user-1:limit:12", c.key("user-1", 12))
	assert.NotEqual(t, c.key("user-1", 12), c.key("user-1", 20))
}
