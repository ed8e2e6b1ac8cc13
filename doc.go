// Package contentcache resolves opaque content identifiers to verified
// byte payloads, minimizing remote fetches with a two-tier cache.
//
// A [Store] consults a bounded in-memory tier, then a persistent disk
// tier, and finally falls back to a remote fetch. Content can be
// verified against an expected digest before it is returned or cached.
// Both tiers are bounded: the memory tier by entry count and entry age,
// the disk tier by total bytes with least-recently-accessed entries
// evicted first.
//
// # Quick Start
//
// Create a store and resolve content:
//
//	store, err := contentcache.New(
//	    contentcache.WithEndpoint("https://blobs.example.net"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	data, err := store.Resolve(ctx, "bafy...xyz")
//
// Verify content against a known digest:
//
//	data, err := store.Resolve(ctx, id,
//	    contentcache.WithExpectedDigest("sha256:2cf2..."),
//	)
//
// Resolve a batch, tolerating individual failures:
//
//	results, err := store.ResolveMany(ctx, ids)
//	for id, data := range results {
//	    if data == nil {
//	        // this entry failed to resolve
//	    }
//	}
//
// # Configuration
//
// When no explicit options are given, New reads configuration from
// CONTENTCACHE_* environment variables (see [Config]). The cache
// directory defaults to a per-user cache location.
package contentcache
