package domain

// ForumOp is the kind of mutation a change-feed event describes.
type ForumOp string

const (
	OpInsert ForumOp = "insert"
	OpUpdate ForumOp = "update"
	OpDelete ForumOp = "delete"
	// OpResync is emitted after a change-feed reconnect; observers should
	// re-list because notifications may have been missed in between.
	OpResync ForumOp = "resync"
)

// ForumEvent notifies observers that the authoritative thread set changed.
// Ordering follows the store's commit order, not client issue order.
type ForumEvent struct {
	Op       ForumOp  `json:"op"`
	ThreadId ThreadId `json:"thread_id,omitempty"`
}
