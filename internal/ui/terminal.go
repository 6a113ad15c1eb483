package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

// Terminal implements Notifier, Prompter, Confirmer and Navigator on a
// plain text terminal. Typing "cancel" (or closing stdin) dismisses a
// prompt.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer

	// pendingTarget holds a navigation hint scheduled by NavigateAfter and
	// consumed by the host loop via TakeNavigation.
	pendingTarget atomic.Value
}

// NewTerminal creates a terminal UI reading from r and writing to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(r), out: w}
}

// Notify prints a tagged message.
func (t *Terminal) Notify(kind NotificationKind, message string) {
	tag := "i"
	switch kind {
	case NotifySuccess:
		tag = "+"
	case NotifyError:
		tag = "!"
	case NotifyWarning:
		tag = "~"
	}
	fmt.Fprintf(t.out, "[%s] %s\n", tag, message)
}

// Prompt asks for one value and reads a line. "cancel" or EOF dismisses.
func (t *Terminal) Prompt(spec PromptSpec) (string, bool) {
	fmt.Fprintf(t.out, "\n%s\n", spec.Title)
	if spec.Help != "" {
		fmt.Fprintf(t.out, "%s\n", spec.Help)
	}
	fmt.Fprintf(t.out, "%s (e.g. %s, or type 'cancel'): ", spec.Label, spec.Placeholder)

	if !t.in.Scan() {
		return "", false
	}
	line := strings.TrimSpace(t.in.Text())
	if strings.EqualFold(line, "cancel") {
		return "", false
	}
	return line, true
}

// Confirm shows a summary and asks for explicit acknowledgment.
func (t *Terminal) Confirm(summary string) bool {
	fmt.Fprintf(t.out, "\n%s\nProceed? [y/N]: ", summary)
	if !t.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(t.in.Text()))
	return answer == "y" || answer == "yes"
}

// NavigateAfter records the hint once delay elapses. The host loop picks it
// up with TakeNavigation; nothing blocks.
func (t *Terminal) NavigateAfter(target string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		t.pendingTarget.Store(target)
	})
}

// TakeNavigation returns and clears the pending navigation hint, if any.
func (t *Terminal) TakeNavigation() (string, bool) {
	v := t.pendingTarget.Swap("")
	target, _ := v.(string)
	return target, target != ""
}

// ReadLine reads one trimmed line for menu-style interaction.
func (t *Terminal) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}
