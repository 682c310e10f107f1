// Package nav maps user input and share payloads to in-app locations.
//
// Locations are path strings in the form the browser client used:
//
//	/                      recent summaries
//	/recent                recent summaries
//	/favorites             favorite summaries
//	/search?q=<term>       search results
//	/add                   manual URL entry
//	/show/<url>            summary of url, optionally ?titleHint=<title>
//	/share-target?...      incoming share, resolved to /show/...
//
// Every embedded value is encoded exactly once with [EncodeComponent] and
// decoded exactly once by [Parse], so decoding the /show/ segment yields the
// original URL byte for byte.
package nav
