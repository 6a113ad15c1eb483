package purchase

import (
	"context"
	"strings"
	"sync"

	"abod-card-app/internal/ui"
)

// Dialog collects and validates the extra input a delivery mechanism
// requires. At most one collection may be pending at a time; starting a
// second one fails fast with ErrCollectionActive.
type Dialog struct {
	prompter ui.Prompter
	notifier ui.Notifier
	mu       sync.Mutex
}

// NewDialog creates an input collection dialog.
func NewDialog(prompter ui.Prompter, notifier ui.Notifier) *Dialog {
	return &Dialog{prompter: prompter, notifier: notifier}
}

// Collect suspends until the buyer confirms a valid value or dismisses the
// dialog. Validation failures re-prompt with a user-visible message and
// never surface as errors; dismissal yields ErrCollectionCancelled. The
// confirmed value is returned trimmed.
func (d *Dialog) Collect(ctx context.Context, req Requirement) (string, error) {
	if !d.mu.TryLock() {
		return "", ErrCollectionActive
	}
	defer d.mu.Unlock()

	spec := req.promptSpec()
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		value, ok := d.prompter.Prompt(spec)
		if !ok {
			return "", ErrCollectionCancelled
		}

		value = strings.TrimSpace(value)
		if msg, valid := req.validate(value); !valid {
			d.notifier.Notify(ui.NotifyError, msg)
			continue
		}
		return value, nil
	}
}
