package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShort tests the Short function.
func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Version, Short())
	assert.NotContains(t, Short(), " ")
}

// TestFull tests that Full lists version, commit and build time in order.
func TestFull(t *testing.T) {
	t.Parallel()

	parts := strings.Split(Full(), ", ")
	require.Len(t, parts, 3)

	assert.Equal(t, "version: "+Version, parts[0])
	assert.Equal(t, "commit: "+Commit, parts[1])
	assert.Equal(t, "built at: "+BuildTime, parts[2])
}
