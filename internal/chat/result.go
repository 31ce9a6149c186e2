package chat

import (
	"context"
	"fmt"
	"time"
)

// Outcome tags how an outstanding request settled.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeApplicationFailure
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeApplicationFailure:
		return "application_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the settled value of a request. Reply is set for successes,
// Err carries the diagnostic for failures.
type Result struct {
	Outcome Outcome
	Reply   string
	Err     error
}

// Success builds a successful result carrying the backend's reply.
func Success(reply string) Result {
	return Result{Outcome: OutcomeSuccess, Reply: reply}
}

// ApplicationFailure builds a result for a backend that answered with
// success=false. err may be nil.
func ApplicationFailure(err error) Result {
	return Result{Outcome: OutcomeApplicationFailure, Err: err}
}

// TransportFailure builds a result for a request that could not complete or
// whose response could not be parsed.
func TransportFailure(err error) Result {
	return Result{Outcome: OutcomeTransportFailure, Err: err}
}

// Request is one outstanding call to the backend.
type Request struct {
	ID       string
	Text     string
	IssuedAt time.Time
}

// Backend performs the round trip for a request. Implementations must fold
// every failure into the returned Result and be safe to call off the UI loop.
type Backend interface {
	Send(ctx context.Context, req Request) Result
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, req Request) Result

func (f BackendFunc) Send(ctx context.Context, req Request) Result {
	return f(ctx, req)
}
