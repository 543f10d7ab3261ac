package detect

import "github.com/doedja/scenecut/internal/config"

// cutCooldown is the number of frames after a cut during which the density
// threshold is raised.
const cutCooldown = 10

// cooldownScale returns the multiplier applied to the cut density threshold
// for a given number of frames since the last cut. Right after a cut the
// threshold is steep; it relaxes linearly back to 1 over cutCooldown frames.
func cooldownScale(intraCount int) uint64 {
	if intraCount >= cutCooldown {
		return 1
	}
	return uint64(cutCooldown + 1 - intraCount)
}

// isCut decides whether the classified frame starts a new scene: the
// intra-block density (per mille) must exceed the sensitivity's density
// threshold scaled by the cooldown, and at least two frames must have
// passed since the previous cut.
func isCut(stats FrameStats, p MBParam, intraCount int, th config.Thresholds) bool {
	if intraCount < 2 {
		return false
	}
	blocks := uint64(p.Blocks())
	return uint64(stats.IntraBlocks)*1000 > blocks*uint64(th.CutDensity)*cooldownScale(intraCount)
}
