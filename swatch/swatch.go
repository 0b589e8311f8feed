// Package swatch renders themes for people: a PNG sheet of labelled color
// tiles, and a styled preview for the terminal.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/chameleon"
	"github.com/wbrown/chameleon/imageutil"
	"github.com/wbrown/chameleon/theme"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Options controls the layout of a rendered swatch sheet.
type Options struct {
	TileWidth  int
	TileHeight int
	Columns    int

	// FontSize is the label size in points at 72 DPI.
	FontSize float64

	// Format selects how color values are printed under the role names.
	Format theme.ColorFormat

	// Font overrides the built-in Go Regular face.
	Font *truetype.Font
}

// DefaultOptions returns 160x64 tiles, five to a row, with 12pt labels.
func DefaultOptions() Options {
	return Options{
		TileWidth:  160,
		TileHeight: 64,
		Columns:    5,
		FontSize:   12,
		Format:     theme.FormatHex,
	}
}

// labelPadding is the inset of labels from the tile corner.
const labelPadding = 6

var defaultFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// Tile is one labelled color of a theme.
type Tile struct {
	Name  string
	Color uint32
}

// Tiles lists the colors of t in role order, with the average luminance
// appended to the Average label.
func Tiles(t *theme.Theme) []Tile {
	tiles := make([]Tile, 0, chameleon.RoleCount)
	for _, role := range chameleon.Roles() {
		name := role.String()
		if role == chameleon.Average {
			name = fmt.Sprintf("%s (%.2f)", name, t.Luminance)
		}
		tiles = append(tiles, Tile{Name: name, Color: t.Color(role)})
	}
	return tiles
}

// LabelColor returns black or white, whichever contrasts more with c.
func LabelColor(c uint32) uint32 {
	const black, white = 0xFF000000, 0xFFFFFFFF
	if chameleon.Contrast(c, black) >= chameleon.Contrast(c, white) {
		return black
	}
	return white
}

func toRGBA(c uint32) color.RGBA {
	return imageutil.RGBFromPacked(c).ToColor()
}

// Render draws every color of t as a labelled tile.
func Render(t *theme.Theme, opts Options) (*image.RGBA, error) {
	def := DefaultOptions()
	if opts.TileWidth <= 0 {
		opts.TileWidth = def.TileWidth
	}
	if opts.TileHeight <= 0 {
		opts.TileHeight = def.TileHeight
	}
	if opts.Columns <= 0 {
		opts.Columns = def.Columns
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}

	ttf := opts.Font
	if ttf == nil {
		var err error
		ttf, err = defaultFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
	}

	tiles := Tiles(t)
	rows := (len(tiles) + opts.Columns - 1) / opts.Columns
	img := image.NewRGBA(image.Rect(0, 0, opts.Columns*opts.TileWidth, rows*opts.TileHeight))

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetDst(img)
	ctx.SetHinting(font.HintingFull)

	for i, tile := range tiles {
		x := (i % opts.Columns) * opts.TileWidth
		y := (i / opts.Columns) * opts.TileHeight
		rect := image.Rect(x, y, x+opts.TileWidth, y+opts.TileHeight)

		draw.Draw(img, rect, image.NewUniform(toRGBA(tile.Color)), image.Point{}, draw.Src)

		ctx.SetClip(rect)
		ctx.SetSrc(image.NewUniform(toRGBA(LabelColor(tile.Color))))

		baseline := y + labelPadding + ascent
		lines := []string{tile.Name, theme.Format(tile.Color, opts.Format)}
		for _, line := range lines {
			if _, err := ctx.DrawString(line, freetype.Pt(x+labelPadding, baseline)); err != nil {
				return nil, fmt.Errorf("failed to draw label %q: %w", line, err)
			}
			baseline += lineHeight
		}
	}

	return img, nil
}

// Save renders t and writes it to path as PNG.
func Save(t *theme.Theme, opts Options, path string) error {
	img, err := Render(t, opts)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, path)
}
