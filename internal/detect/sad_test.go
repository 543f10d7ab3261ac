package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// block16 builds a 16x16 plane with stride 16 from a generator.
func block16(gen func(x, y int) byte) []byte {
	b := make([]byte, 16*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			b[y*16+x] = gen(x, y)
		}
	}
	return b
}

func TestSAD16(t *testing.T) {
	a := block16(func(x, y int) byte { return byte(x*7 + y*11) })

	assert.Equal(t, uint32(0), sad16(a, a, 0, 0, 16), "identical blocks")

	b := block16(func(x, y int) byte { return byte(x*7+y*11) + 1 })
	assert.Equal(t, uint32(256), sad16(a, b, 0, 0, 16), "uniform +1 offset")

	black := block16(func(x, y int) byte { return 0 })
	white := block16(func(x, y int) byte { return 255 })
	assert.Equal(t, uint32(255*256), sad16(black, white, 0, 0, 16), "max contrast")
}

func TestSAD16Stride(t *testing.T) {
	// Two 16x16 blocks side by side in a 32-wide plane.
	plane := make([]byte, 32*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			plane[y*32+x] = byte(x + y)
			plane[y*32+16+x] = byte(x + y + 2)
		}
	}
	assert.Equal(t, uint32(2*256), sad16(plane, plane, 0, 16, 32))
}

func TestVariance16(t *testing.T) {
	flat := block16(func(x, y int) byte { return 200 })
	assert.Equal(t, uint32(0), variance16(flat, 0, 16), "constant block")

	// Half 0, half 255: sum=32640, sumSq=8323200, variance=4161600.
	half := block16(func(x, y int) byte {
		if y < 8 {
			return 255
		}
		return 0
	})
	assert.Equal(t, uint32(4161600), variance16(half, 0, 16))

	// Checkerboard has the same histogram, so the same variance.
	checker := block16(func(x, y int) byte {
		if (x+y)%2 == 0 {
			return 255
		}
		return 0
	})
	assert.Equal(t, uint32(4161600), variance16(checker, 0, 16))
}

func TestDev8(t *testing.T) {
	plane := make([]byte, 8*8)
	assert.Equal(t, uint32(0), dev8(plane, 0, 8), "constant block")

	// One pixel at 64, the rest 0: mean=1, dev = 63 + 63*1.
	plane[0] = 64
	assert.Equal(t, uint32(126), dev8(plane, 0, 8))
}

func TestBlockDeviation(t *testing.T) {
	flat := block16(func(x, y int) byte { return 99 })
	assert.Equal(t, uint32(0), blockDeviation(flat, 0, 16), "constant block")

	// Four flat quadrants at different levels each deviate zero from their
	// own means, even though the 16x16 block as a whole varies.
	quads := block16(func(x, y int) byte {
		switch {
		case x < 8 && y < 8:
			return 10
		case y < 8:
			return 90
		case x < 8:
			return 170
		default:
			return 250
		}
	})
	assert.Equal(t, uint32(0), blockDeviation(quads, 0, 16))
	assert.NotEqual(t, uint32(0), variance16(quads, 0, 16))
}
