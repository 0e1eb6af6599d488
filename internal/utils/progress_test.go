package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("determinate progress bar with known total", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(ProgressOptions{Total: 10, Description: DescMirroring, Output: &buf})

		require.NotNil(t, bar)
		assert.Equal(t, int64(10), bar.GetMax())
	})

	t.Run("spinner with unknown total", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(ProgressOptions{Total: -1, Description: DescMirroring, Output: &buf})

		require.NotNil(t, bar)
		require.NoError(t, bar.Add(3))
		require.NoError(t, bar.Finish())
		assert.Contains(t, buf.String(), DescMirroring)
	})
}

func TestProgressBarDescriptions(t *testing.T) {
	assert.Equal(t, "Mirroring", DescMirroring)
}
