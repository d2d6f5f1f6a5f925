package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marsadembi/portfolio/internal/metrics"
)

// Notifier is told about every newly stored comment.
type Notifier interface {
	NotifyNewComment(ctx context.Context, c *Comment) error
}

// NotifyTimeout bounds one owner notification.
const NotifyTimeout = 30 * time.Second

// Service provides comment business logic on top of the repository.
type Service struct {
	repo     *Repository
	notifier Notifier

	pending sync.WaitGroup
}

// NewService creates a comment service. notifier may be nil.
func NewService(repo *Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Submit normalizes, validates and stores a new comment.
// The owner notification runs in the background; its failure is logged and
// never delays or fails the write.
func (s *Service) Submit(ctx context.Context, in Input) (*Comment, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			metrics.CommentSubmissions.WithLabelValues(metrics.ResultInvalid).Inc()
		}
		return nil, err
	}

	c, err := s.repo.Add(ctx, in)
	if err != nil {
		metrics.CommentSubmissions.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("storing comment: %w", err)
	}
	metrics.CommentSubmissions.WithLabelValues(metrics.ResultOK).Inc()

	slog.InfoContext(ctx, "comment stored", "id", c.ID, "rated", c.Rating != nil)

	if s.notifier != nil {
		s.notify(ctx, *c)
	}

	return c, nil
}

func (s *Service) notify(ctx context.Context, c Comment) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), NotifyTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.notifier.NotifyNewComment(ctx, &c); err != nil {
			slog.WarnContext(ctx, "owner notification failed", "id", c.ID, "error", err)
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// Listing returns every comment together with the current average rating.
func (s *Service) Listing(ctx context.Context) (*Listing, error) {
	l, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	return l, nil
}

// Delete removes a comment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
