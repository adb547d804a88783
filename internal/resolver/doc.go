// Package resolver turns topic labels into display images. It classifies
// each label, races the provider lookups suited to that category, filters
// what they return through an acceptance gate, deduplicates against the
// current session, and memoizes results in the image cache. Labels nothing
// can illustrate get a deterministic placeholder.
package resolver
