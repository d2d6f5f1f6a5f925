package web

import (
	"context"
	"errors"

	"github.com/marsadembi/portfolio/internal/chat"
	"github.com/marsadembi/portfolio/internal/comment"
)

var errRateLimited = errors.New("too many comments, try again later")

// localComments runs the contact flow against the in-process service.
type localComments struct {
	svc        *comment.Service
	limiter    *rateLimiter
	remoteAddr string
}

func (l localComments) ListComments(ctx context.Context) (*comment.Listing, error) {
	return l.svc.Listing(ctx)
}

func (l localComments) AddComment(ctx context.Context, in comment.Input) error {
	if !l.limiter.allow(l.remoteAddr) {
		return errRateLimited
	}
	in.RemoteAddr = l.remoteAddr
	_, err := l.svc.Submit(ctx, in)
	return err
}

type localChat struct {
	svc *chat.Service
}

func (l localChat) Chat(ctx context.Context, message string) (string, error) {
	return l.svc.Reply(ctx, message)
}
