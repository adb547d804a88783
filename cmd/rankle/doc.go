// Command rankle resolves display images for ranking-game topic labels and
// manages the cache, topic packs, and persisted sessions behind them.
package main
