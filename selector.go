package chameleon

import (
	"cmp"
	"slices"
)

// FindKeyColors picks the key colors from the statistics gathered so far.
//
// Four greedy passes run over the 64 buckets in index order, each keeping
// the first bucket whose score strictly exceeds the best so far, starting
// from a best score of 0:
//
//  1. Background1 among populated buckets (count, edge, saturation).
//  2. Foreground1 among populated buckets other than Background1, adding
//     distance and contrast to Background1.
//  3. Background2 among buckets with edge weight, other than the two
//     picks, adding distance to both.
//  4. Foreground2 among populated buckets other than the three picks.
//
// If no bucket scores above 0, Background1 and Foreground1 keep the
// average color, Background2 copies Background1 and Foreground2 copies
// Foreground1.
//
// With forceContrast, a foreground whose contrast against Background1 is
// below the engine's minimum is scaled towards black (on a light
// background) or white (on a dark one); if that is still not enough it is
// replaced by black or white outright. Background2 falls back to
// Background1 when either foreground does not contrast with it.
//
// Finally the four picks are ordered by luma into Light1..Light4 and the
// reverse into Dark1..Dark4.
//
// FindKeyColors may be called again with different params; each call
// starts from the same statistics.
func (e *Engine) FindKeyColors(params *Params, forceContrast bool) {
	e.normalize()

	s := &e.store
	c := &s.buckets

	bg1Param := &params[StageBackground1]
	fg1Param := &params[StageForeground1]
	bg2Param := &params[StageBackground2]
	fg2Param := &params[StageForeground2]

	bg1 := averageSlot
	fg1 := averageSlot
	bg2 := unsetSlot
	fg2 := unsetSlot

	var best, score float32
	for i := 0; i < BucketCount; i++ {
		if c[i].Count > 0 {
			score = c[i].Count * bg1Param.Count
			score += c[i].EdgeCount * bg1Param.Edge
			score += saturation(&c[i]) * bg1Param.Saturation

			if score > best {
				bg1 = i
				best = score
			}
		}
	}

	best = 0
	for i := 0; i < BucketCount; i++ {
		if i != bg1 && c[i].Count > 0 {
			score = c[i].Count * fg1Param.Count
			score += c[i].EdgeCount * fg1Param.Edge
			score += distance(&c[i], &c[bg1]) * fg1Param.Background1Distance
			score += saturation(&c[i]) * fg1Param.Saturation
			score += contrast(&c[i], &c[bg1]) * fg1Param.Contrast

			if score > best {
				fg1 = i
				best = score
			}
		}
	}

	best = 0
	for i := 0; i < BucketCount; i++ {
		if i != bg1 && i != fg1 && c[i].EdgeCount > 0 {
			score = c[i].Count * bg2Param.Count
			score += c[i].EdgeCount * bg2Param.Edge
			score += distance(&c[i], &c[bg1]) * bg2Param.Background1Distance
			score += distance(&c[i], &c[fg1]) * bg2Param.Foreground1Distance
			score += saturation(&c[i]) * bg2Param.Saturation
			score += contrast(&c[i], &c[fg1]) * bg2Param.Contrast

			if score > best {
				bg2 = i
				best = score
			}
		}
	}

	best = 0
	for i := 0; i < BucketCount; i++ {
		if i != bg1 && i != fg1 && i != bg2 && c[i].Count > 0 {
			score = c[i].Count * fg2Param.Count
			score += c[i].EdgeCount * fg2Param.Edge
			score += distance(&c[i], &c[bg1]) * fg2Param.Background1Distance
			score += distance(&c[i], &c[fg1]) * fg2Param.Foreground1Distance
			score += saturation(&c[i]) * fg2Param.Saturation
			score += contrast(&c[i], &c[bg1]) * fg2Param.Contrast

			if score > best {
				fg2 = i
				best = score
			}
		}
	}

	if bg2 == unsetSlot {
		bg2 = bg1
	}
	if fg2 == unsetSlot {
		fg2 = fg1
	}

	if forceContrast {
		fg1 = e.enforceContrast(fg1, bg1, foreground1Slot)
		fg2 = e.enforceContrast(fg2, bg1, foreground2Slot)

		if contrast(&c[fg1], &c[bg2]) < e.minContrast ||
			contrast(&c[fg2], &c[bg2]) < e.minContrast {
			bg2 = bg1
		}
	}

	e.roles[Background1] = bg1
	e.roles[Foreground1] = fg1
	e.roles[Background2] = bg2
	e.roles[Foreground2] = fg2
	e.orderByLuma(bg1, bg2, fg1, fg2)
}

// orderByLuma fills Light1..Light4 from brightest to darkest and
// Dark1..Dark4 in the opposite order. Picks of equal luma keep the order
// bg1, bg2, fg1, fg2.
func (e *Engine) orderByLuma(bg1, bg2, fg1, fg2 int) {
	c := &e.store.buckets
	order := []int{bg1, bg2, fg1, fg2}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(c[b].Y, c[a].Y)
	})

	for i, slot := range order {
		e.roles[Light1+Role(i)] = slot
		e.roles[Dark4-Role(i)] = slot
	}
}

// enforceContrast makes sure the foreground in slot fg is readable on the
// background in slot bg. It returns fg unchanged when the contrast is
// already sufficient. Otherwise the repaired color is stored in the
// scratch slot and that slot is returned, or the index of the black or
// white bucket when the repair had to fall back to it.
func (e *Engine) enforceContrast(fg, bg, scratch int) int {
	c := &e.store.buckets

	repaired, ok := repairForeground(c[fg], c[bg], e.minContrast)
	if ok {
		if repaired == c[fg] {
			return fg
		}
		c[scratch] = repaired
		return scratch
	}

	sentinel, color := e.sentinel(c[bg].Y > 0.5)
	if sentinel != unsetSlot {
		return sentinel
	}
	c[scratch] = color
	return scratch
}

// repairForeground returns fg unchanged with ok set when it already
// contrasts with bg. Otherwise it scales fg multiplicatively towards black
// on a light background or towards white on a dark one, by the ratio of
// the current contrast to the minimum, and reports whether the result
// reaches the minimum.
func repairForeground(fg, bg ColorBucket, minContrast float32) (ColorBucket, bool) {
	current := contrast(&fg, &bg)
	if current >= minContrast {
		return fg, true
	}

	factor := current / minContrast
	if bg.Y > 0.5 {
		fg.R *= factor
		fg.G *= factor
		fg.B *= factor
	} else {
		fg.R = min(fg.R/factor, 1)
		fg.G = min(fg.G/factor, 1)
		fg.B = min(fg.B/factor, 1)
	}
	toLumaChroma(&fg, 1)

	return fg, contrast(&fg, &bg) >= minContrast
}

// sentinel returns the store index of the black (dark=true) or white
// bucket when that bucket holds real pixels. When it is empty, the
// returned slot is unsetSlot and the color is a pure black or white
// stand-in that must be placed in a scratch slot.
func (e *Engine) sentinel(dark bool) (int, ColorBucket) {
	i, v := lastBucket, float32(1)
	if dark {
		i, v = 0, 0
	}

	if e.store.buckets[i].Count > 0 {
		return i, ColorBucket{}
	}

	color := ColorBucket{R: v, G: v, B: v}
	toLumaChroma(&color, 1)
	return unsetSlot, color
}
