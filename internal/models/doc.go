// Package models defines the data exchanged with the recipes backend and the
// single entity the client persists locally.
//
// Wire types:
//   - [BookmarkEntry] : one row of a recent, favorites or search listing
//   - [Summary] : the structured recipe produced for a bookmarked URL
//   - [SummaryResult] : a decoded summary plus the raw response body
//   - [SummarizeRequest] : the body sent to request a summary
//
// Persistent entity:
//   - [Credential] : the signed-in user's bearer token
package models
