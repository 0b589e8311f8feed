package chameleon

const (
	// BucketCount is the number of quantized color classes. Each pixel is
	// reduced to the two most significant bits of its red, green and blue
	// channels, giving 4*4*4 buckets.
	BucketCount = 64

	// lastBucket is the bucket holding the brightest colors (all three
	// channels >= 0xC0). Bucket 0 holds the darkest.
	lastBucket = BucketCount - 1

	// averageSlot accumulates every opaque pixel and doubles as the
	// fallback for any role that was never assigned.
	averageSlot = BucketCount

	// Scratch slots receive contrast-repaired foregrounds so the real
	// quantization buckets are never modified by the selector.
	foreground1Slot = BucketCount + 1
	foreground2Slot = BucketCount + 2

	storeSize = BucketCount + 3

	unsetSlot = -1

	// opaqueAlpha is the lowest alpha (in the high byte of a packed pixel)
	// that still contributes to the statistics, roughly 75% coverage.
	opaqueAlpha = 0xC0000000
)

// ColorBucket holds the aggregate statistics for one quantized color
// class. Before the engine normalizes its store, R, G and B are running
// sums of normalized (0..1) channel values; afterwards they are the
// bucket's average color and Y, U, V are valid.
type ColorBucket struct {
	R, G, B   float32
	Count     float32
	Y, U, V   float32
	EdgeCount float32
}

// bucketStore is the fixed table of statistics owned by one Engine. Raw
// channel sums are kept apart from the averaged colors so that feeding
// more pixels after a selection never divides an average a second time.
type bucketStore struct {
	buckets [storeSize]ColorBucket
	sums    [storeSize][3]float32
}

// Quantize maps a packed 0xAARRGGBB pixel to its bucket index in [0, 63]
// by concatenating the top two bits of red, green and blue.
func Quantize(pixel uint32) int {
	r := (pixel >> 22) & 0x03
	g := (pixel >> 14) & 0x03
	b := (pixel >> 6) & 0x03
	return int(r<<4 | g<<2 | b)
}

// isOpaque reports whether a packed pixel passes the alpha gate.
func isOpaque(pixel uint32) bool {
	return pixel&0xFF000000 >= opaqueAlpha
}

// unpackRGB splits a packed pixel into normalized channels.
func unpackRGB(pixel uint32) (r, g, b float32) {
	r = float32((pixel>>16)&0xFF) / 255.0
	g = float32((pixel>>8)&0xFF) / 255.0
	b = float32(pixel&0xFF) / 255.0
	return r, g, b
}

// accumulate adds one normalized color to slot i.
func (s *bucketStore) accumulate(i int, r, g, b float32) {
	s.sums[i][0] += r
	s.sums[i][1] += g
	s.sums[i][2] += b
	s.buckets[i].Count++
}

// normalize derives the average color and luma/chroma of every populated
// bucket plus the average slot from the raw sums.
func (s *bucketStore) normalize(edgePixels float32) {
	for i := 0; i < BucketCount; i++ {
		if s.buckets[i].Count > 0 {
			s.finish(i, edgePixels)
		}
	}
	s.finish(averageSlot, edgePixels)
}

func (s *bucketStore) finish(i int, edgePixels float32) {
	c := &s.buckets[i]
	c.R, c.G, c.B = s.sums[i][0], s.sums[i][1], s.sums[i][2]
	normalize(c)
	toLumaChroma(c, edgePixels)
}

// Bucket returns a copy of slot i of the engine's store. Indices 0..63
// are the quantization buckets; 64 is the running average and 65/66 are
// the foreground repair slots. The second result is false when i is out
// of range.
func (e *Engine) Bucket(i int) (ColorBucket, bool) {
	if i < 0 || i >= storeSize {
		return ColorBucket{}, false
	}
	return e.store.buckets[i], true
}
