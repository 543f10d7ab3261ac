package detect

// Macroblock holds the per-frame analysis of one 16x16 block. The array is
// reused across frames and never persisted.
type Macroblock struct {
	MV       MotionVector
	SAD      uint32
	Variance uint32
	Intra    bool
}

// FrameStats accumulates classification counters for one frame.
type FrameStats struct {
	IntraBlocks int
	InterSAD    uint64
	Variance    uint64
}

// intraBias is added to the spatial deviation before comparing it against
// the motion-compensated SAD.
const intraBias = 0

// classifyFrame motion-searches and classifies every macroblock of cur
// against ref in raster order, filling mbs and returning the frame
// statistics. A block is intra when its best inter prediction is both worse
// than the intraSAD floor and worse than its own spatial deviation.
func classifyFrame(cur, ref []byte, p MBParam, mbs []Macroblock, fcode int, intraSAD uint32) FrameStats {
	var stats FrameStats
	stride := p.EdgedWidth

	for my := 0; my < p.MBHeight; my++ {
		for mx := 0; mx < p.MBWidth; mx++ {
			mv, sad := searchMV(cur, ref, p, mx, my, fcode)

			off := (my*mbSize+EdgeSize)*stride + mx*mbSize + EdgeSize
			variance := variance16(cur, off, stride)
			dev := blockDeviation(cur, off, stride)
			intra := sad > intraSAD && sad > dev+intraBias

			mb := &mbs[my*p.MBWidth+mx]
			mb.MV = mv
			mb.SAD = sad
			mb.Variance = variance
			mb.Intra = intra

			if intra {
				stats.IntraBlocks++
			}
			stats.InterSAD += uint64(sad)
			stats.Variance += uint64(variance)
		}
	}

	return stats
}
