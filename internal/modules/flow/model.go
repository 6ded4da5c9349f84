// README: Flow invocation types and the runner port the gateway forwards to.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrFlowNotFound = errors.New("flow not found")
	ErrInvalidInput = errors.New("invalid flow input")
	ErrEmptySlug    = errors.New("flow id is empty")
)

// Context is the auxiliary request data handed to a flow next to its input.
// Rest holds every body field other than "input".
type Context struct {
	Rest map[string]json.RawMessage `json:"rest"`
}

type RunOptions struct {
	Context Context `json:"context"`
}

// Invocation is built per request and never stored.
type Invocation struct {
	Slug    []string
	FlowID  string
	Input   json.RawMessage
	Context Context
}

type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Runner executes flows by id. Results and listings are passed through as raw JSON.
type Runner interface {
	RunFlow(ctx context.Context, flowID string, input json.RawMessage, opts RunOptions) (json.RawMessage, error)
	ListFlows(ctx context.Context) (json.RawMessage, error)
}

// RemoteError is a non-2xx answer from a remote flow runtime.
type RemoteError struct {
	Status int
	Body   []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("flow runtime returned %d: %s", e.Status, truncate(string(e.Body), 200))
}

// Event is published after every invocation.
type Event struct {
	FlowID     string    `json:"flowId"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"durationMs"`
	At         time.Time `json:"at"`
}

// EventPublisher matches infra.KafkaPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value any) error
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
