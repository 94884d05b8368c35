package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/aatrey56/ff-draft-assistant/internal/reasoning"
)

type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindCanceled  ErrorKind = "canceled"
	KindTransport ErrorKind = "transport"
	KindMalformed ErrorKind = "malformed"
)

// UpstreamError is the one fatal failure: the reasoning service call failed,
// timed out or answered with something unusable. It is never retried here.
type UpstreamError struct {
	Kind  ErrorKind
	Stage State
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("reasoning service %s during %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is an UpstreamError caused by the deadline.
func IsTimeout(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindTimeout
}

func upstream(ctx context.Context, stage State, err error) *UpstreamError {
	kind := KindTransport
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		kind = KindCanceled
	case errors.Is(err, reasoning.ErrMalformed):
		kind = KindMalformed
	}
	return &UpstreamError{Kind: kind, Stage: stage, Err: err}
}

func malformed(stage State, format string, args ...any) *UpstreamError {
	return &UpstreamError{
		Kind:  KindMalformed,
		Stage: stage,
		Err:   fmt.Errorf("%w: %s", reasoning.ErrMalformed, fmt.Sprintf(format, args...)),
	}
}
