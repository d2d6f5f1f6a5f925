package contact

import (
	"context"
	"sync"
)

// ChatCollaborator answers chat messages.
type ChatCollaborator interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ChatFlow holds the chat box input and the most recent reply.
// Only the latest exchange is kept.
type ChatFlow struct {
	collab ChatCollaborator

	mu    sync.Mutex
	input string
	reply string
}

// NewChatFlow creates a chat flow.
func NewChatFlow(c ChatCollaborator) *ChatFlow {
	return &ChatFlow{collab: c}
}

// SetInput replaces the typed text.
func (f *ChatFlow) SetInput(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = s
}

// Input returns the typed text. It is never cleared by Send.
func (f *ChatFlow) Input() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Reply returns the most recent reply, or "" if none arrived yet.
func (f *ChatFlow) Reply() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply
}

// SetReply seeds the reply shown before any Send, e.g. when re-rendering.
func (f *ChatFlow) SetReply(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = s
}

// Transcript renders the reply block, or "" when there is no reply.
func (f *ChatFlow) Transcript() string {
	reply := f.Reply()
	if reply == "" {
		return ""
	}
	return "Bot: " + reply
}

// Send submits the input verbatim. The reply changes only on success;
// on failure the previous reply stays and the error is returned.
// Concurrent sends are independent and the last to resolve wins.
func (f *ChatFlow) Send(ctx context.Context) error {
	msg := f.Input()

	reply, err := f.collab.Chat(ctx, msg)
	if err != nil {
		return err
	}

	f.SetReply(reply)
	return nil
}
