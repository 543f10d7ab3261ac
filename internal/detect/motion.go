package detect

import "math/bits"

// MotionVector is an integer-pel displacement into the reference plane.
type MotionVector struct {
	X int
	Y int
}

// mvPenalty scales the bit-cost of a candidate vector before it is added
// to the SAD.
const mvPenalty = 2

// SearchLimit returns the motion search window radius in pixels for a
// given fcode: 16 << (fcode-1).
func SearchLimit(fcode int) int {
	return mbSize << (uint(fcode) - 1)
}

// componentBits is the variable-length-code length of one nonzero vector
// component: 1 + 2*floor(log2(|d|+1)).
func componentBits(d int) uint32 {
	if d < 0 {
		d = -d
	}
	return 1 + 2*uint32(bits.Len(uint(d+1))-1)
}

// MVBits returns the code length of a motion vector.
func MVBits(dx, dy int) uint32 {
	switch {
	case dx == 0 && dy == 0:
		return 1
	case dy == 0:
		return componentBits(dx)
	case dx == 0:
		return componentBits(dy)
	default:
		return componentBits(dx) + componentBits(dy)
	}
}

// betterCandidate reports whether a candidate with the given cost and
// vector beats the current best. Cost ties prefer the shorter vector, then
// the smaller vertical component, then the smaller horizontal component,
// so the search result is independent of evaluation order.
func betterCandidate(cost uint32, mv MotionVector, bestCost uint32, best MotionVector) bool {
	if cost != bestCost {
		return cost < bestCost
	}
	cl := abs(mv.X) + abs(mv.Y)
	bl := abs(best.X) + abs(best.Y)
	if cl != bl {
		return cl < bl
	}
	if mv.Y != best.Y {
		return mv.Y < best.Y
	}
	return mv.X < best.X
}

// searchMV runs a small-diamond search for the integer motion vector with
// the lowest cost (SAD16 plus mvPenalty*MVBits) for the macroblock at grid
// position (mx, my) of cur, matched against ref. It returns the winning
// vector and its raw SAD.
//
// The search starts at the zero vector, probes the four orthogonal
// neighbors at the current step, recenters on any improvement, and halves
// the step from 8 down to 1. Candidates are clipped to the fcode window and
// to the padded plane, so every block read stays in bounds.
func searchMV(cur, ref []byte, p MBParam, mx, my, fcode int) (MotionVector, uint32) {
	stride := p.EdgedWidth
	off := (my*mbSize+EdgeSize)*stride + mx*mbSize + EdgeSize

	limit := SearchLimit(fcode)
	minX := max(-(mx*mbSize + EdgeSize), -limit)
	maxX := min((p.MBWidth-1-mx)*mbSize+EdgeSize, limit)
	minY := max(-(my*mbSize + EdgeSize), -limit)
	maxY := min((p.MBHeight-1-my)*mbSize+EdgeSize, limit)

	best := MotionVector{}
	bestSAD := sad16(cur, ref, off, off, stride)
	bestCost := bestSAD + mvPenalty*MVBits(0, 0)

	for step := 8; step >= 1; step >>= 1 {
		for {
			improved := false
			center := best
			for _, d := range [4]MotionVector{{0, -step}, {-step, 0}, {step, 0}, {0, step}} {
				c := MotionVector{X: center.X + d.X, Y: center.Y + d.Y}
				if c.X < minX || c.X > maxX || c.Y < minY || c.Y > maxY {
					continue
				}
				sad := sad16(cur, ref, off, off+c.Y*stride+c.X, stride)
				cost := sad + mvPenalty*MVBits(c.X, c.Y)
				if betterCandidate(cost, c, bestCost, best) {
					best = c
					bestSAD = sad
					bestCost = cost
					improved = true
				}
			}
			if !improved {
				break
			}
		}
	}

	return best, bestSAD
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
