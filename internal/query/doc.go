// Package query caches the results of backend reads by structured key.
//
// A [Key] is an ordered list of string parts such as ["recipe", url] or
// ["list", "/api/recents?count=10"]. [Cache.Fetch] runs a [Loader] at most once
// per key at a time: concurrent callers for the same key share one request,
// and a completed entry is served from memory until [Cache.Invalidate] marks
// it stale. Entries move through Pending, Success and Error; an errored entry
// is not retried until it is invalidated.
package query
