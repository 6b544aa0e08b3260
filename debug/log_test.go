package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	Log("arp", "before enable")
	require.NoError(t, Enable(path))
	assert.True(t, Enabled())

	Log("arp", "key %d", 7)
	for i := 0; i < 10; i++ {
		LogEvery(4, "clock", "tick")
	}
	Disable()
	Log("arp", "after disable")
	assert.False(t, Enabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Debug logging started")
	assert.Contains(t, out, "key 7")
	assert.NotContains(t, out, "before enable")
	assert.NotContains(t, out, "after disable")
	assert.Equal(t, 2, strings.Count(out, "tick (every 4"))
}
