package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doedja/scenecut/internal/config"
)

func TestCooldownScale(t *testing.T) {
	assert.Equal(t, uint64(10), cooldownScale(1))
	assert.Equal(t, uint64(9), cooldownScale(2))
	assert.Equal(t, uint64(2), cooldownScale(9))
	assert.Equal(t, uint64(1), cooldownScale(10))
	assert.Equal(t, uint64(1), cooldownScale(50))
}

func TestIsCutGuard(t *testing.T) {
	p := NewMBParam(160, 160)
	full := FrameStats{IntraBlocks: p.Blocks()}

	// Never a cut on the frame right after one, no matter the evidence.
	assert.False(t, isCut(full, p, 1, config.ThresholdsHigh))
	assert.True(t, isCut(full, p, 2, config.ThresholdsHigh))
}

func TestIsCutDensity(t *testing.T) {
	p := NewMBParam(160, 160) // 100 macroblocks
	n := p.Blocks()

	// A fully intra frame long after the previous cut trips every
	// sensitivity.
	full := FrameStats{IntraBlocks: n}
	for _, th := range []config.Thresholds{config.ThresholdsLow, config.ThresholdsMedium, config.ThresholdsHigh} {
		assert.True(t, isCut(full, p, 50, th))
	}

	// No intra blocks never cuts.
	assert.False(t, isCut(FrameStats{}, p, 50, config.ThresholdsHigh))

	// Right after a cut the density bar is raised: at intraCount=2 the
	// medium threshold needs more than 810 per mille.
	assert.True(t, isCut(FrameStats{IntraBlocks: 82}, p, 2, config.ThresholdsMedium))
	assert.False(t, isCut(FrameStats{IntraBlocks: 81}, p, 2, config.ThresholdsMedium))

	// Once the cooldown has decayed the bar is the plain density threshold.
	assert.True(t, isCut(FrameStats{IntraBlocks: 10}, p, 20, config.ThresholdsMedium))
	assert.False(t, isCut(FrameStats{IntraBlocks: 9}, p, 20, config.ThresholdsMedium))
}

func TestIsCutSensitivityMonotone(t *testing.T) {
	p := NewMBParam(160, 160)
	n := p.Blocks()

	for intra := 0; intra <= n; intra++ {
		for count := 2; count <= 60; count++ {
			stats := FrameStats{IntraBlocks: intra}
			low := isCut(stats, p, count, config.ThresholdsLow)
			medium := isCut(stats, p, count, config.ThresholdsMedium)
			high := isCut(stats, p, count, config.ThresholdsHigh)

			if low && !medium {
				t.Fatalf("low cut without medium cut at intra=%d count=%d", intra, count)
			}
			if medium && !high {
				t.Fatalf("medium cut without high cut at intra=%d count=%d", intra, count)
			}
		}
	}
}
