package purchase

import "errors"

// Sentinel errors for the purchase flow.
// Use errors.Is() to check against these.
var (
	// ErrCollectionCancelled means the buyer dismissed the input dialog.
	ErrCollectionCancelled = errors.New("input collection cancelled")
	// ErrCollectionActive means a collection is already outstanding. The
	// dialog supports one pending collection at a time and fails fast.
	ErrCollectionActive = errors.New("input collection already active")
	// ErrPurchaseInProgress means another purchase attempt is still running
	// in this session.
	ErrPurchaseInProgress = errors.New("a purchase is already in progress")
)
