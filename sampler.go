package chameleon

const (
	// resampleThreshold is the dimension above which ProcessImage
	// downsamples when asked to.
	resampleThreshold = 128

	// resampleMax is the largest dimension of a downsampled image.
	resampleMax = 256
)

// ProcessLine feeds one row of packed 0xAARRGGBB pixels to the engine.
// edge marks the first or last row of the image; every opaque pixel of an
// edge row counts towards its bucket's edge weight. On other rows only
// the first and last pixel are treated as border pixels.
//
// Pixels with alpha below 0xC0 are skipped.
func (e *Engine) ProcessLine(line []uint32, edge bool) {
	width := len(line)
	if width == 0 {
		return
	}

	var edgeWeight float32
	if edge {
		edgeWeight = 1
	}

	s := &e.store
	for _, p := range line {
		if !isOpaque(p) {
			continue
		}

		i := Quantize(p)
		r, g, b := unpackRGB(p)
		s.accumulate(i, r, g, b)
		s.accumulate(averageSlot, r, g, b)
		s.buckets[i].EdgeCount += edgeWeight
	}

	if !edge {
		if first := line[0]; isOpaque(first) {
			s.buckets[Quantize(first)].EdgeCount++
		}
		if last := line[width-1]; isOpaque(last) {
			s.buckets[Quantize(last)].EdgeCount++
		}
		e.edgePixelCount += 2
	} else {
		e.edgePixelCount += float32(width)
	}

	e.pixelCount += float32(width)
	e.normalized = false
}

// ProcessImage feeds a whole row-major image of packed 0xAARRGGBB pixels
// to the engine. The first and last rows are processed as edge lines.
//
// When resample is set and either dimension exceeds 128, the image is
// first reduced by nearest-neighbour sampling to at most 256x256. The
// stride along a dimension larger than 256 is dimension/255; the last
// row and column always come from the true border of the source so the
// edge statistics are preserved. When keepAlpha is set, resampled pixels
// keep their alpha, which still gates which pixels count; otherwise they
// are forced opaque.
//
// Buffers shorter than width*height and non-positive dimensions are
// ignored.
func (e *Engine) ProcessImage(pixels []uint32, width, height int, resample, keepAlpha bool) {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return
	}

	if resample && (width > resampleThreshold || height > resampleThreshold) {
		alphaMask := uint32(0xFF000000)
		if keepAlpha {
			alphaMask = 0
		}
		pixels, width, height = downsample(pixels, width, height, alphaMask)
	}

	for y := 0; y < height; y++ {
		row := pixels[y*width : (y+1)*width]
		e.ProcessLine(row, y == 0 || y == height-1)
	}

	e.normalized = false
}

// resampleDimension returns the reduced size and sampling stride for one
// dimension.
func resampleDimension(n int) (size, stride int) {
	if n > resampleMax {
		return resampleMax, n / (resampleMax - 1)
	}
	return n, 1
}

// downsample performs the integer-stride nearest-neighbour reduction used
// by ProcessImage. alphaMask is OR'ed into every sampled pixel.
func downsample(src []uint32, width, height int, alphaMask uint32) ([]uint32, int, int) {
	newWidth, xStep := resampleDimension(width)
	newHeight, yStep := resampleDimension(height)

	dst := make([]uint32, newWidth*newHeight)

	for y := 0; y < newHeight-1; y++ {
		srcRow := src[(y*yStep)*width:]
		dstRow := dst[y*newWidth:]
		for x := 0; x < newWidth-1; x++ {
			dstRow[x] = srcRow[x*xStep] | alphaMask
		}
		dstRow[newWidth-1] = srcRow[width-1] | alphaMask
	}

	lastRow := src[(height-1)*width:]
	dstLast := dst[(newHeight-1)*newWidth:]
	for x := 0; x < newWidth-1; x++ {
		dstLast[x] = lastRow[x*xStep] | alphaMask
	}
	dstLast[newWidth-1] = lastRow[width-1] | alphaMask

	return dst, newWidth, newHeight
}
