package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/marsadembi/portfolio/internal/comment"
)

var (
	// ErrValidation means a required field or the rating was missing.
	// No write was attempted.
	ErrValidation = errors.New("all fields and a rating are required")
	// ErrInFlight means a submission from the same flow is still running.
	ErrInFlight = errors.New("submission already in progress")
	// ErrWriteFailed means the collaborator rejected or never received the write.
	ErrWriteFailed = errors.New("comment write failed")
	// ErrRefreshFailed means the write succeeded but the list re-fetch did not.
	ErrRefreshFailed = errors.New("comment list refresh failed")
)

// User-facing alert texts.
const (
	MsgValidation    = "All fields and a rating are required!"
	MsgFailure       = "Failed to send your comment. Please try again."
	MsgSuccess       = "Comment sent successfully!"
	MsgRefreshFailed = "Your comment was sent, but the list could not be refreshed."
)

// Kind classifies a Notice.
type Kind int

const (
	KindValidation Kind = iota
	KindFailure
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFailure:
		return "failure"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Notice is one user-facing alert.
type Notice struct {
	Kind    Kind
	Message string
}

// Notifier surfaces alerts to the user.
type Notifier interface {
	Notify(n Notice)
}

// Celebrator plays the success effect. It has no bearing on correctness.
type Celebrator interface {
	Celebrate()
}

// Collaborator is the comments backend.
type Collaborator interface {
	ListComments(ctx context.Context) (*comment.Listing, error)
	AddComment(ctx context.Context, in comment.Input) error
}

// Form is the contact form's input state.
type Form struct {
	Name    string
	Email   string
	Message string
	Rating  RatingInput
}

// Reset empties every field and the rating.
func (f *Form) Reset() {
	*f = Form{}
}

// View is the displayed comment list and average, always a server snapshot.
type View struct {
	Comments      []*comment.Comment
	AverageRating float64
}

// SubmissionFlow drives the contact form against a Collaborator.
type SubmissionFlow struct {
	collab    Collaborator
	notifier  Notifier
	celebrate Celebrator

	inFlight atomic.Bool

	mu   sync.Mutex
	view View
}

// NewSubmissionFlow creates a flow. celebrate may be nil.
func NewSubmissionFlow(c Collaborator, n Notifier, celebrate Celebrator) *SubmissionFlow {
	return &SubmissionFlow{collab: c, notifier: n, celebrate: celebrate}
}

// View returns the current displayed state.
func (f *SubmissionFlow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Load fetches the initial comment list and average.
func (f *SubmissionFlow) Load(ctx context.Context) error {
	l, err := f.collab.ListComments(ctx)
	if err != nil {
		return fmt.Errorf("loading comments: %w", err)
	}
	f.replace(l)
	return nil
}

// Submit validates the form, writes the comment and refreshes the view.
//
// On validation failure nothing is sent. On write failure the view is left
// untouched. On success the form is reset and the view is replaced with
// whatever the collaborator returns next.
func (f *SubmissionFlow) Submit(ctx context.Context, form *Form) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer f.inFlight.Store(false)

	in := comment.Input{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: strings.TrimSpace(form.Message),
	}
	rating := form.Rating.Committed()

	if in.Name == "" || in.Email == "" || in.Message == "" || rating < comment.MinRating {
		f.notify(KindValidation, MsgValidation)
		return ErrValidation
	}
	in.Rating = comment.IntPtr(rating)

	if err := f.collab.AddComment(ctx, in); err != nil {
		slog.ErrorContext(ctx, "error submitting comment", "error", err)
		f.notify(KindFailure, MsgFailure)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if f.celebrate != nil {
		f.celebrate.Celebrate()
	}
	form.Reset()
	f.notify(KindSuccess, MsgSuccess)

	l, err := f.collab.ListComments(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error refreshing comments", "error", err)
		f.notify(KindFailure, MsgRefreshFailed)
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	f.replace(l)

	return nil
}

func (f *SubmissionFlow) replace(l *comment.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = View{Comments: l.Comments, AverageRating: l.AverageRating}
}

func (f *SubmissionFlow) notify(kind Kind, msg string) {
	if f.notifier != nil {
		f.notifier.Notify(Notice{Kind: kind, Message: msg})
	}
}
