// Package services talks to the recipes backend over HTTP.
//
// # HTTP adapter
//
// [APIService] is the single place requests are built. It joins paths onto the
// configured base URL, attaches "Authorization: Bearer <token>" when the
// [Authenticator] holds a token, and maps failures onto the shared errors:
//   - [shared.ErrNetwork] : the request never produced a response
//   - [shared.ErrUnauthorized] : the backend answered 401; the session has been reset
//   - [shared.ErrAPIRequest] : any other non-2xx status, as a [*StatusError]
//   - [shared.ErrDecode] : a 2xx body that did not match the expected shape
//
// # Recipe operations
//
// [RecipeService] implements [RecipeClient] on top of the adapter:
//   - POST /api/summarize {url, titleHint} : summary for a URL
//   - GET /api/recents?count=N : recently summarized entries
//   - GET /api/favorites?count=N : most visited entries
//   - GET /api/search?q=term : entries matching term
//   - POST /api/hit?url=... : record a click on an entry
package services
