package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendPanels(t *testing.T) {
	t.Run("Typical Sizing", func(t *testing.T) {
		// floor(900 / 3.4 / 30 / 0.62) = 14
		assert.Equal(t, 14, RecommendPanels(900, 3.4))
	})

	t.Run("Never Below One Panel", func(t *testing.T) {
		assert.Equal(t, 1, RecommendPanels(10, 4.5))
		assert.Equal(t, 1, RecommendPanels(0.5, 3.0))
	})

	t.Run("Higher Irradiance Needs Fewer Panels", func(t *testing.T) {
		low := RecommendPanels(900, 3.0)
		high := RecommendPanels(900, 4.5)
		assert.Greater(t, low, high)
	})
}

func TestGeneration(t *testing.T) {
	daily, monthly := Generation(14, 620, 3.4)
	// 14 * 620 * 3.4 / 1000
	assert.InDelta(t, 29.512, daily, 0.001)
	assert.InDelta(t, 885.36, monthly, 0.001)
}
