// Package tasks runs background backend work for the CLI and TUI.
//
// # Click notifications
//
// [HitNotifier] records clicks on bookmark entries without delaying
// navigation. [HitNotifier.Notify] never blocks: when the queue is full the
// click is dropped. A single worker drains the queue at the configured rate.
// Failures are logged and otherwise ignored.
//
// # Batch summaries
//
// [SummarizeAll] requests summaries for several URLs with a bounded worker
// pool and a shared rate limit, reporting each completion as a
// [ProgressUpdate]. Results keep the input order.
//
// # Progress Reporting
//
// Progress updates are sent with select and default so a slow reader never
// stalls the work.
package tasks
