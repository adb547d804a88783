package tmdb

// Size buckets served by the TMDB image CDN. Wide backdrops make better
// game-board tiles than posters when available, so the main image prefers
// them; thumbnails prefer posters for their taller aspect.
const (
	sizeBackdropLarge = "w1280"
	sizePosterLarge   = "w780"
	sizePosterSmall   = "w500"
	sizeProfileLarge  = "h632"
)

// ArtworkFor selects main and thumbnail URLs for a movie or TV result.
// With only one path present the same image serves both roles; both values
// are empty when the result carries no usable paths.
func (c *Client) ArtworkFor(r Result) (main, thumb string) {
	switch {
	case r.BackdropPath != "" && r.PosterPath != "":
		return c.ImageURL(r.BackdropPath, sizeBackdropLarge), c.ImageURL(r.PosterPath, sizePosterSmall)
	case r.BackdropPath != "":
		return c.ImageURL(r.BackdropPath, sizeBackdropLarge), c.ImageURL(r.BackdropPath, sizePosterLarge)
	case r.PosterPath != "":
		poster := c.ImageURL(r.PosterPath, sizePosterLarge)
		return poster, poster
	}
	return "", ""
}

// ProfileFor selects main and thumbnail URLs for a person result. Both map
// to the profile image since TMDB serves no backdrop for people.
func (c *Client) ProfileFor(r Result) (main, thumb string) {
	if r.ProfilePath == "" {
		return "", ""
	}
	profile := c.ImageURL(r.ProfilePath, sizeProfileLarge)
	return profile, profile
}
