package playback

import (
	"fmt"

	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// QueueExpansionError reports the enqueue call that stopped a queue expansion. Items before
// Index were queued and stay queued.
type QueueExpansionError struct {
	Source models.Identifier // Collection being expanded
	Item   models.Identifier // Child whose enqueue failed
	Index  int               // 1-based position of Item
	Total  int               // Number of children
	Err    error             // Error of the failed call
}

func (e *QueueExpansionError) Error() string {
	return fmt.Sprintf("queued %d of %d items from %s, then %s failed: %v", e.Index-1, e.Total, e.Source, e.Item, e.Err)
}

func (e *QueueExpansionError) Unwrap() error { return e.Err }

// Is matches [shared.ErrQueueExpansion].
func (e *QueueExpansionError) Is(target error) bool {
	return target == shared.ErrQueueExpansion
}

// Queued is the number of items enqueued before the failure.
func (e *QueueExpansionError) Queued() int { return e.Index - 1 }
