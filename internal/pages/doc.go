// Package pages derives what each screen shows from the current route and
// the query cache, independent of how it is rendered.
//
// [NewShow] turns a Show route and the cached summarize result into one of
// the [ShowState] values. [ListFor] picks the listing a route displays and
// [ClickTarget] decides whether selecting an entry stays in the app or opens
// the original page.
package pages
