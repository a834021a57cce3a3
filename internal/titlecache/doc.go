// Package titlecache persists resolved playlist titles between runs.
//
// # Storage
//
// The cache is a JSON object mapping playlist id to title, stored at
// paths.cache_path (default assets/data/playlist_cache.json). Entries never
// expire; a cached title is never fetched again.
//
// A missing or unreadable file yields an empty cache. Generator runs mutate
// the cache in memory and call Save once at the end, which only writes when
// something changed.
//
// CLI commands for inspection and management:
//
//	vaultindex cache list          # List all cached titles
//	vaultindex cache remove <id>   # Remove one playlist id
//	vaultindex cache clear         # Remove all entries
package titlecache
