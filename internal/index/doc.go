// Package index aggregates catalog items into the per-language channel
// index, resolves playlist titles, and writes the JSON document the site
// reads.
package index
