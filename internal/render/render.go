// Package render computes display hints for resolved images: how a tile
// should fit its frame, whether to bias cropping toward faces, and whether
// an async result is stale.
package render

// FitMode describes how an image fills its tile.
type FitMode int

const (
	// FitCover scales to fill, cropping overflow. Default for photos.
	FitCover FitMode = iota
	// FitContain letterboxes the whole image. Used for logos and flat
	// graphics, which cropping would mangle.
	FitContain
)

func (m FitMode) String() string {
	if m == FitContain {
		return "contain"
	}
	return "cover"
}

// Mode picks the fit mode for an image.
func Mode(isLogo bool) FitMode {
	if isLogo {
		return FitContain
	}
	return FitCover
}

// FaceCrop reports whether cropping should bias toward the upper third,
// where a portrait's face sits.
func FaceCrop(prefersFace bool) bool {
	return prefersFace
}

// Stale reports whether a render begun under token should be discarded
// because a newer paint pass has started.
func Stale(token, current uint64) bool {
	return token != current
}
