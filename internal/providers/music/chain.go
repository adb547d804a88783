package music

import (
	"context"
	"fmt"
	"log/slog"

	"rankle/internal/logging"
	"rankle/internal/providers/itunes"
)

// Artwork is the resolved image pair for one artist.
type Artwork struct {
	Main  string
	Thumb string
}

// Chain tries each configured source in order and returns the first usable
// artwork. Nil clients are skipped, so a chain degrades gracefully as API
// keys go unconfigured.
type Chain struct {
	AudioDB *AudioDBClient
	LastFM  *LastFMClient
	ITunes  *itunes.Client
	Logger  *slog.Logger
}

// ArtistArtwork resolves artwork for the named artist or group.
func (ch *Chain) ArtistArtwork(ctx context.Context, name string) (*Artwork, error) {
	logger := logging.NewComponentLogger(ch.Logger, "music")

	if ch.AudioDB != nil {
		images, err := ch.AudioDB.SearchArtist(ctx, name)
		if err == nil {
			if art := audioDBArtwork(images); art != nil {
				return art, nil
			}
		} else {
			logger.Debug("audiodb lookup failed", logging.String("artist", name), logging.Error(err))
		}
	}

	if ch.LastFM != nil {
		image, err := ch.LastFM.ArtistImage(ctx, name)
		if err == nil && image != "" {
			return &Artwork{Main: image, Thumb: image}, nil
		}
		if err != nil {
			logger.Debug("lastfm lookup failed", logging.String("artist", name), logging.Error(err))
		}
	}

	if ch.ITunes != nil {
		results, err := ch.ITunes.SearchMusic(ctx, name, "album")
		if err == nil {
			for _, result := range results {
				if result.ArtworkURL100 != "" {
					return &Artwork{
						Main:  itunes.UpscaleArtwork(result.ArtworkURL100),
						Thumb: result.ArtworkURL100,
					}, nil
				}
			}
		} else {
			logger.Debug("itunes lookup failed", logging.String("artist", name), logging.Error(err))
		}
	}

	return nil, fmt.Errorf("no artwork found for %q", name)
}

func audioDBArtwork(images *ArtistImages) *Artwork {
	if images == nil {
		return nil
	}
	art := &Artwork{Main: images.Fanart, Thumb: images.Thumb}
	if art.Main == "" {
		art.Main = images.Thumb
	}
	if art.Thumb == "" {
		art.Thumb = images.Fanart
	}
	if art.Main == "" {
		return nil
	}
	return art
}
