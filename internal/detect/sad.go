package detect

// sad16 returns the sum of absolute differences between the 16x16 block at
// curOff in cur and the one at refOff in ref. Both planes share the stride.
func sad16(cur, ref []byte, curOff, refOff, stride int) uint32 {
	var sad uint32
	for y := 0; y < mbSize; y++ {
		c := cur[curOff : curOff+mbSize]
		r := ref[refOff : refOff+mbSize]
		for x := 0; x < mbSize; x++ {
			d := int32(c[x]) - int32(r[x])
			if d < 0 {
				d = -d
			}
			sad += uint32(d)
		}
		curOff += stride
		refOff += stride
	}
	return sad
}

// variance16 returns the population variance proxy of a 16x16 block,
// computed as sum(p^2) - sum(p)^2/256.
func variance16(plane []byte, off, stride int) uint32 {
	var sum, sumSq uint32
	for y := 0; y < mbSize; y++ {
		row := plane[off : off+mbSize]
		for x := 0; x < mbSize; x++ {
			p := uint32(row[x])
			sum += p
			sumSq += p * p
		}
		off += stride
	}
	return sumSq - sum*sum/256
}

// dev8 returns the deviation of an 8x8 block from its own mean: the sum of
// absolute differences between each pixel and the truncated block average.
func dev8(plane []byte, off, stride int) uint32 {
	var sum uint32
	o := off
	for y := 0; y < 8; y++ {
		row := plane[o : o+8]
		for x := 0; x < 8; x++ {
			sum += uint32(row[x])
		}
		o += stride
	}
	mean := int32(sum / 64)

	var dev uint32
	for y := 0; y < 8; y++ {
		row := plane[off : off+8]
		for x := 0; x < 8; x++ {
			d := int32(row[x]) - mean
			if d < 0 {
				d = -d
			}
			dev += uint32(d)
		}
		off += stride
	}
	return dev
}

// blockDeviation sums the deviations of the four 8x8 quadrants of a 16x16
// block, approximating the residual of a spatial-only predictor.
func blockDeviation(plane []byte, off, stride int) uint32 {
	return dev8(plane, off, stride) +
		dev8(plane, off+8, stride) +
		dev8(plane, off+8*stride, stride) +
		dev8(plane, off+8*stride+8, stride)
}
