package res

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypefaceCached(t *testing.T) {
	a, err := Typeface()
	require.NoError(t, err)
	b, _ := Typeface()
	assert.Same(t, a, b)
}

func TestFaceMetricsScaleWithSize(t *testing.T) {
	small := Face(8, 72)
	large := Face(24, 72)
	assert.Greater(t, large.Metrics().Height, small.Metrics().Height)
}
