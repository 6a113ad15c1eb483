// Package ui defines the narrow surface the purchase flow uses to talk to
// whatever shell hosts it, plus a terminal implementation for cmd/shop.
// The flow never touches rendering directly; it emits notifications,
// questions and navigation hints through these interfaces.
package ui

import "time"

// NotificationKind classifies user-facing messages.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
	NotifyWarning
	NotifyInfo
)

// Navigation targets the flow can hint at.
const (
	TargetHome   = "home"
	TargetOrders = "orders"
	TargetWallet = "wallet"
)

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}

// Navigator schedules a screen change after a delay, without blocking the
// calling flow.
type Navigator interface {
	NavigateAfter(target string, delay time.Duration)
}

// PromptSpec describes one input request shown to the user.
type PromptSpec struct {
	Title       string
	Label       string
	Placeholder string
	Help        string
}

// Prompter collects one free-text value. ok is false when the user dismissed
// the prompt instead of confirming.
type Prompter interface {
	Prompt(spec PromptSpec) (value string, ok bool)
}

// Confirmer asks for an explicit acknowledgment of a summary.
type Confirmer interface {
	Confirm(summary string) bool
}
