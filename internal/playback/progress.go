package playback

import (
	"fmt"

	"github.com/desertthunder/fishify/internal/models"
)

// ProgressUpdate represents a progress event during queue expansion.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Item    models.Identifier
}

// Operation phase enumeration
type Phase int

const (
	FetchContext Phase = iota
	QueueItems
	QueueDone
)

func (p Phase) String() string {
	switch p {
	case FetchContext:
		return "fetch_context"
	case QueueItems:
		return "queue_items"
	case QueueDone:
		return "queue_done"
	default:
		return ""
	}
}

func fetchContextUpdate(id models.Identifier) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchContext,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %s...", id.Kind()),
		Item:    id,
	}
}

func queueItemUpdate(step, total int, id models.Identifier) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Queueing %d of %d...", step, total),
		Item:    id,
	}
}

func queueDoneUpdate(total int, id models.Identifier) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueDone,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Queued %d items", total),
		Item:    id,
	}
}
