package chameleon

import "math"

// normalize turns the accumulated channel sums of c into an average.
// Buckets that never received a pixel are left untouched.
func normalize(c *ColorBucket) {
	if c.Count == 0 {
		return
	}
	c.R /= c.Count
	c.G /= c.Count
	c.B /= c.Count
}

// toLumaChroma fills in Y, U and V from the averaged color using the
// BT.601 weights (see http://www.fourcc.org/fccyvrgb.php). The total edge
// weight is accepted so an edge-normalizing variant can share the call
// site; the conversion itself depends on color only.
func toLumaChroma(c *ColorBucket, totalEdgeWeight float32) {
	c.Y = (0.299 * c.R) + (0.587 * c.G) + (0.114 * c.B)
	c.U = 0.492 * (c.B - c.Y)
	c.V = 0.877 * (c.R - c.Y)
}

// saturation is the HSL-style saturation of the bucket color.
func saturation(c *ColorBucket) float32 {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return 0
	}

	hi := c.R
	if c.G > hi {
		hi = c.G
	}
	if c.B > hi {
		hi = c.B
	}

	lo := c.R
	if c.G < lo {
		lo = c.G
	}
	if c.B < lo {
		lo = c.B
	}

	return (hi - lo) / (hi + lo)
}

// distance is the squared Euclidean distance between two buckets in YUV
// space. Only the ordering of distances is used, so the root is skipped.
func distance(a, b *ColorBucket) float32 {
	dy := a.Y - b.Y
	du := a.U - b.U
	dv := a.V - b.V
	return dy*dy + du*du + dv*dv
}

// linearize applies the sRGB transfer curve to one normalized channel.
func linearize(c float32) float32 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return float32(math.Pow(float64((c+0.055)/1.055), 2.4))
}

// relativeLuminance is the WCAG relative luminance of a normalized color.
func relativeLuminance(r, g, b float32) float32 {
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// contrast is the WCAG contrast ratio between two bucket colors. The
// result is always at least 1.
func contrast(a, b *ColorBucket) float32 {
	return contrastRatio(
		relativeLuminance(a.R, a.G, a.B),
		relativeLuminance(b.R, b.G, b.B),
	)
}

func contrastRatio(l1, l2 float32) float32 {
	if l1 > l2 {
		return (l1 + 0.05) / (l2 + 0.05)
	}
	return (l2 + 0.05) / (l1 + 0.05)
}

// Contrast returns the WCAG contrast ratio between two packed 0xAARRGGBB
// colors. Alpha is ignored.
func Contrast(a, b uint32) float32 {
	ar, ag, ab := unpackRGB(a)
	br, bg, bb := unpackRGB(b)
	return contrastRatio(
		relativeLuminance(ar, ag, ab),
		relativeLuminance(br, bg, bb),
	)
}

// Luma returns the BT.601 luma (0..1) of a packed 0xAARRGGBB color, the
// same value Luminance reports for a selected role.
func Luma(c uint32) float32 {
	r, g, b := unpackRGB(c)
	return (0.299 * r) + (0.587 * g) + (0.114 * b)
}
