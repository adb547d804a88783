package config

const (
	defaultCachePath        = "~/.local/share/rankle/imagecache.json"
	defaultSessionDB        = "~/.local/share/rankle/sessions.db"
	defaultLogDir           = "~/.local/share/rankle/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL = "https://image.tmdb.org/t/p"
	defaultTMDBLanguage     = "en-US"
	defaultOMDbBaseURL      = "https://www.omdbapi.com"
	defaultLastFMBaseURL    = "https://ws.audioscrobbler.com/2.0"
	defaultAudioDBBaseURL   = "https://www.theaudiodb.com/api/v1/json"
	defaultPixabayBaseURL   = "https://pixabay.com/api"
	defaultUnsplashBaseURL  = "https://api.unsplash.com"
	defaultPexelsBaseURL    = "https://api.pexels.com/v1"
	defaultTVMazeBaseURL    = "https://api.tvmaze.com"
	defaultWikipediaBaseURL = "https://en.wikipedia.org"
	defaultWikidataBaseURL  = "https://www.wikidata.org"
	defaultITunesBaseURL    = "https://itunes.apple.com"

	defaultRequestTimeoutSeconds = 8
	defaultShortQueryScore       = 0.75
	defaultLongQueryScore        = 0.38
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CachePath: defaultCachePath,
			SessionDB: defaultSessionDB,
			LogDir:    defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			ImageBaseURL: defaultTMDBImageBaseURL,
			Language:     defaultTMDBLanguage,
		},
		OMDb:     OMDb{BaseURL: defaultOMDbBaseURL},
		LastFM:   LastFM{BaseURL: defaultLastFMBaseURL},
		AudioDB:  AudioDB{BaseURL: defaultAudioDBBaseURL},
		Pixabay:  Pixabay{BaseURL: defaultPixabayBaseURL},
		Unsplash: Unsplash{BaseURL: defaultUnsplashBaseURL},
		Pexels:   Pexels{BaseURL: defaultPexelsBaseURL},
		Providers: Providers{
			EnableTVMaze:     true,
			EnableWikipedia:  true,
			EnableWikidata:   true,
			EnableITunes:     true,
			TVMazeBaseURL:    defaultTVMazeBaseURL,
			WikipediaBaseURL: defaultWikipediaBaseURL,
			WikidataBaseURL:  defaultWikidataBaseURL,
			ITunesBaseURL:    defaultITunesBaseURL,
		},
		Resolver: Resolver{
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			ShortQueryScore:       defaultShortQueryScore,
			LongQueryScore:        defaultLongQueryScore,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
