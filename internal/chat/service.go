package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marsadembi/portfolio/internal/metrics"
)

// DefaultTimeout bounds a single reply.
const DefaultTimeout = 15 * time.Second

// Service wraps a Responder with a timeout and metrics.
type Service struct {
	responder Responder
	timeout   time.Duration
}

// NewService creates a chat service. A nil responder means Echo.
func NewService(r Responder, timeout time.Duration) *Service {
	if r == nil {
		r = Echo{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{responder: r, timeout: timeout}
}

// Reply answers one message.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.responder.Reply(ctx, message)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		metrics.ChatReplies.WithLabelValues(metrics.ResultInvalid).Inc()
		return "", err
	case err != nil:
		metrics.ChatReplies.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf("chat reply: %w", err)
	}

	metrics.ChatReplies.WithLabelValues(metrics.ResultOK).Inc()
	return reply, nil
}
