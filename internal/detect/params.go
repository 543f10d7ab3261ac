// Package detect implements block-based scene-change detection over
// consecutive grayscale frames. Each frame is copied into an edge-padded
// working plane, every 16x16 macroblock is motion-searched against the
// previous frame, and the fraction of poorly predicted blocks decides
// whether the frame starts a new scene.
package detect

const (
	// mbSize is the macroblock edge length in pixels.
	mbSize = 16

	// EdgeSize is the replicated border added around the macroblock-aligned
	// plane so motion search can read up to 64 pixels past any block
	// without bounds checks.
	EdgeSize = 64
)

// MBParam holds the macroblock grid geometry derived from the frame
// dimensions.
type MBParam struct {
	Width       int
	Height      int
	MBWidth     int
	MBHeight    int
	EdgedWidth  int
	EdgedHeight int
}

// NewMBParam derives the grid geometry for a width x height luma plane.
func NewMBParam(width, height int) MBParam {
	mbw := (width + mbSize - 1) / mbSize
	mbh := (height + mbSize - 1) / mbSize
	return MBParam{
		Width:       width,
		Height:      height,
		MBWidth:     mbw,
		MBHeight:    mbh,
		EdgedWidth:  mbSize*mbw + 2*EdgeSize,
		EdgedHeight: mbSize*mbh + 2*EdgeSize,
	}
}

// PlaneSize returns the byte size of the padded plane.
func (p MBParam) PlaneSize() int {
	return p.EdgedWidth * p.EdgedHeight
}

// Blocks returns the number of macroblocks per frame.
func (p MBParam) Blocks() int {
	return p.MBWidth * p.MBHeight
}
