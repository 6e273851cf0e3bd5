package model

import "context"

// Notifier delivers out-of-band messages (password-reset codes). An
// unconfigured notifier skips the send and returns nil: notification
// delivery fails open, authentication state never depends on it.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
