package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abod-card-app/internal/ui"
)

func TestDialogCollectRepromptsUntilValid(t *testing.T) {
	prompter := &scriptedPrompter{answers: []*string{
		answer(""),             // empty
		answer("not-an-email"), // missing @
		answer("  a@b.com  "),  // valid, padded
	}}
	notifier := &recordingNotifier{}
	dialog := NewDialog(prompter, notifier)

	value, err := dialog.Collect(context.Background(), RequireEmail)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", value)

	// one visible validation message per invalid answer
	require.Len(t, notifier.messages, 2)
	assert.Equal(t, ui.NotifyError, notifier.kinds[0])
	assert.Contains(t, notifier.messages[1], "valid email")
}

func TestDialogCollectDismissed(t *testing.T) {
	dialog := NewDialog(&scriptedPrompter{answers: []*string{nil}}, &recordingNotifier{})

	_, err := dialog.Collect(context.Background(), RequirePhone)
	assert.ErrorIs(t, err, ErrCollectionCancelled)
}

func TestDialogCollectContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dialog := NewDialog(&scriptedPrompter{answers: []*string{answer("ignored")}}, &recordingNotifier{})

	_, err := dialog.Collect(ctx, RequirePhone)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDialogSecondCollectionFailsFast(t *testing.T) {
	prompter := newBlockingPrompter()
	dialog := NewDialog(prompter, &recordingNotifier{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = dialog.Collect(context.Background(), RequireEmail)
	}()
	<-prompter.started

	_, err := dialog.Collect(context.Background(), RequireEmail)
	assert.ErrorIs(t, err, ErrCollectionActive)

	close(prompter.release)
	<-done
}

func TestDialogPhoneLengthValidation(t *testing.T) {
	prompter := &scriptedPrompter{answers: []*string{
		answer("1234567"), // too short
		answer("+967 700 000 000"),
	}}
	notifier := &recordingNotifier{}
	dialog := NewDialog(prompter, notifier)

	value, err := dialog.Collect(context.Background(), RequirePhone)
	require.NoError(t, err)
	assert.Equal(t, "+967 700 000 000", value)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "valid phone")
}
