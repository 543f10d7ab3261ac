package detect

// PadPlane copies a width x height luma plane into the edge-padded working
// buffer dst, which must be p.PlaneSize() bytes. The interior is extended
// to the macroblock grid by replicating the last real column and row, then
// an EdgeSize border of replicated edge values is added on all four sides.
func PadPlane(dst, src []byte, p MBParam) {
	ew := p.EdgedWidth
	eh := p.EdgedHeight
	paddedWidth := p.MBWidth * mbSize
	paddedHeight := p.MBHeight * mbSize

	for i := range dst[:ew*eh] {
		dst[i] = 0
	}

	// Interior rows.
	for y := 0; y < p.Height; y++ {
		copy(dst[(y+EdgeSize)*ew+EdgeSize:], src[y*p.Width:(y+1)*p.Width])
	}

	// Extend each row to the macroblock grid with the last real pixel.
	if p.Width < paddedWidth {
		for y := 0; y < p.Height; y++ {
			edge := src[y*p.Width+p.Width-1]
			row := dst[(y+EdgeSize)*ew+EdgeSize:]
			for x := p.Width; x < paddedWidth; x++ {
				row[x] = edge
			}
		}
	}

	// Extend to the macroblock grid vertically with the last (extended) row.
	if p.Height < paddedHeight {
		last := dst[(p.Height-1+EdgeSize)*ew+EdgeSize : (p.Height-1+EdgeSize)*ew+EdgeSize+paddedWidth]
		for y := p.Height; y < paddedHeight; y++ {
			copy(dst[(y+EdgeSize)*ew+EdgeSize:], last)
		}
	}

	// Top and bottom borders replicate the first and last interior rows.
	top := dst[EdgeSize*ew : EdgeSize*ew+ew]
	bottom := dst[(eh-1-EdgeSize)*ew : (eh-EdgeSize)*ew]
	for i := 0; i < EdgeSize; i++ {
		copy(dst[i*ew:], top)
		copy(dst[(eh-1-i)*ew:], bottom)
	}

	// Left and right borders replicate the edge columns of every row.
	for y := 0; y < eh; y++ {
		row := dst[y*ew : (y+1)*ew]
		left := row[EdgeSize]
		right := row[EdgeSize+paddedWidth-1]
		for i := 0; i < EdgeSize; i++ {
			row[i] = left
			row[EdgeSize+paddedWidth+i] = right
		}
	}
}
