// Package tmdb provides a minimal client for The Movie Database search API,
// covering movie, TV, and person lookups plus image CDN URL construction.
package tmdb
