// Package imagecache persists resolved artwork lookups to a JSON file so
// repeated sessions skip remote provider calls. Entries are keyed by
// provider, media type, and label; placeholders are cached like any other
// result so a dead label is only probed once.
package imagecache
