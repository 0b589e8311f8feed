package imageutil

// Posterize returns a copy of img with every pixel replaced by
// mapper(pixel), where pixels are packed as 0xAARRGGBB. Mapped colors are
// written fully opaque; fully transparent source pixels stay transparent.
func Posterize(img *RGBAImage, mapper func(uint32) uint32) *RGBAImage {
	pixels := img.Pack()
	for i, p := range pixels {
		if p>>24 == 0 {
			continue
		}
		pixels[i] = 0xFF000000 | mapper(p)
	}
	return RGBAImageFromPacked(pixels, img.Width(), img.Height())
}
