// Package generator runs one full index build: load the vault, normalize
// headers, promote due items, aggregate, sort, and write the index and
// title cache.
//
// Every run recomputes the index from scratch. Per-document problems never
// abort a run; they are recorded as Results in the returned Summary. Only
// configuration, locking, and output failures are returned as errors.
package generator
