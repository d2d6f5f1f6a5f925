// Package chat answers messages sent to the site's chat box.
package chat

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyMessage is returned for blank messages.
var ErrEmptyMessage = errors.New("message is required")

// Responder produces a reply for one message.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Echo replies by repeating the message back.
type Echo struct{}

// Reply implements Responder.
func (Echo) Reply(_ context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	return "You said: " + message, nil
}
