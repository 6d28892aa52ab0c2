// Package vision computes the loading-screen geometry for the ten champion
// portraits. Identifying a champion from pixels is not implemented; callers
// that need identities must supply tokens manually.
package vision

import (
	"errors"
	"image"
)

// ErrNotImplemented marks the pixel-identification path. The geometry below
// is real; the classifier behind it is not.
var ErrNotImplemented = errors.New("champion identification from pixels is not implemented")

// SlotCount is the number of portraits on a loading screen, five per side.
const SlotCount = 10

// Regions splits a screenshot of the given dimensions into the ten portrait
// rectangles, blue side (left column, top to bottom) first, then red side.
func Regions(width, height int) []image.Rectangle {
	colW := width / 4
	rowH := height / 5
	out := make([]image.Rectangle, 0, SlotCount)
	for i := 0; i < 5; i++ {
		out = append(out, image.Rect(0, i*rowH, colW, (i+1)*rowH))
	}
	for i := 0; i < 5; i++ {
		out = append(out, image.Rect(width-colW, i*rowH, width, (i+1)*rowH))
	}
	return out
}

// Identify would map each portrait region to a champion name. It always
// returns ErrNotImplemented.
func Identify(path string) ([]string, error) {
	_ = path
	return nil, ErrNotImplemented
}
