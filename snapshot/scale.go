package snapshot

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// ScaleMode defines how scaling should handle aspect ratio mismatches.
type ScaleMode int

const (
	// ScaleModeFit scales to fit within the bounds, preserving aspect ratio.
	ScaleModeFit ScaleMode = iota
	// ScaleModeFill scales to cover the bounds, preserving aspect ratio, and crops the overflow.
	ScaleModeFill
	// ScaleModeStretch scales to exactly match the bounds (may distort).
	ScaleModeStretch
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeFit:
		return "fit"
	case ScaleModeFill:
		return "fill"
	case ScaleModeStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// CalculateScaledSize returns the output dimensions when scaling srcW x srcH
// into maxW x maxH with the given mode. A non-positive bound is derived from
// the other one; with no bounds at all the source size is returned.
func CalculateScaledSize(srcW, srcH, maxW, maxH int, mode ScaleMode) (w, h int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	srcAspect := float64(srcW) / float64(srcH)

	switch {
	case maxW <= 0 && maxH <= 0:
		return srcW, srcH
	case maxW <= 0:
		return atLeastOne(int(float64(maxH)*srcAspect + 0.5)), maxH
	case maxH <= 0:
		return maxW, atLeastOne(int(float64(maxW)/srcAspect + 0.5))
	}

	switch mode {
	case ScaleModeFit:
		dstAspect := float64(maxW) / float64(maxH)
		if srcAspect > dstAspect {
			// Source is wider, fit to width
			w = maxW
			h = int(float64(maxW)/srcAspect + 0.5)
		} else {
			// Source is taller, fit to height
			h = maxH
			w = int(float64(maxH)*srcAspect + 0.5)
		}
		return atLeastOne(w), atLeastOne(h)

	default:
		return maxW, maxH
	}
}

// scale resizes img into the bounds using mode.
func scale(img image.Image, maxW, maxH int, mode ScaleMode) image.Image {
	b := img.Bounds()
	w, h := CalculateScaledSize(b.Dx(), b.Dy(), maxW, maxH, mode)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	if mode != ScaleModeFill || maxW <= 0 || maxH <= 0 {
		return transform.Resize(img, w, h, transform.Linear)
	}

	// Cover the bounds, then crop the centre.
	sx := float64(maxW) / float64(b.Dx())
	sy := float64(maxH) / float64(b.Dy())
	s := sx
	if sy > s {
		s = sy
	}
	coverW := atLeastOne(int(float64(b.Dx())*s + 0.5))
	coverH := atLeastOne(int(float64(b.Dy())*s + 0.5))
	if coverW < maxW {
		coverW = maxW
	}
	if coverH < maxH {
		coverH = maxH
	}
	resized := transform.Resize(img, coverW, coverH, transform.Linear)
	x0 := (coverW - maxW) / 2
	y0 := (coverH - maxH) / 2
	return transform.Crop(resized, image.Rect(x0, y0, x0+maxW, y0+maxH))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
