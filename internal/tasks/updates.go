package tasks

import "fmt"

// ProgressUpdate represents a progress event during a batch operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Completed items so far
	Total   int    // Total items
	Message string // Human-readable message for display
	URL     string // Item the update refers to
	Err     error  // Set for Failed updates
}

// Phase of a batch item.
type Phase int

const (
	Queued Phase = iota
	Summarizing
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Queued:
		return "queued"
	case Summarizing:
		return "summarizing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// sendProgress sends update without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func queuedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{Phase: Queued, Total: total, Message: fmt.Sprintf("Queued %d URLs", total)}
}

func summarizingUpdate(step, total int, url string) ProgressUpdate {
	return ProgressUpdate{Phase: Summarizing, Step: step, Total: total, URL: url, Message: "Summarizing " + url}
}

func doneUpdate(step, total int, url, title string) ProgressUpdate {
	msg := "No summary for " + url
	if title != "" {
		msg = "Summarized " + title
	}
	return ProgressUpdate{Phase: Done, Step: step, Total: total, URL: url, Message: msg}
}

func failedUpdate(step, total int, url string, err error) ProgressUpdate {
	return ProgressUpdate{Phase: Failed, Step: step, Total: total, URL: url, Err: err, Message: fmt.Sprintf("Failed %s: %v", url, err)}
}
