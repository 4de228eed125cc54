// Package res loads the display typeface used by the preview renderer. The
// load happens once, behind a gate, before the first page is drawn; if it
// fails the renderer falls back to the builtin bitmap face and rendering
// proceeds anyway.
package res

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	once     sync.Once
	typeface *opentype.Font
	loadErr  error
)

// Typeface parses the bundled display font exactly once and caches the
// result for every later call.
func Typeface() (*opentype.Font, error) {
	once.Do(func() {
		typeface, loadErr = opentype.Parse(goregular.TTF)
		if loadErr != nil {
			loadErr = fmt.Errorf("res: parsing display typeface: %w", loadErr)
		}
	})
	return typeface, loadErr
}

// Face returns a face of the display typeface at the given size in points
// and resolution in dots per inch. When the typeface is unavailable the
// builtin fixed-size bitmap face is returned instead, so callers always get
// a usable face.
func Face(sizePt, dpi float64) font.Face {
	tf, err := Typeface()
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tf, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
