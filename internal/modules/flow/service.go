// README: Flow gateway service: builds invocations from requests and forwards them to the runner.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ParseSlug splits a catch-all path such as "/myFlow/step1" into segments.
func ParseSlug(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// NewInvocation takes the flow slug and the raw request body. The body must be
// empty or a JSON object; its "input" field becomes the flow input and every
// other field goes into Context.Rest.
func NewInvocation(slug []string, body []byte) (Invocation, error) {
	if len(slug) == 0 {
		return Invocation{}, ErrEmptySlug
	}
	inv := Invocation{
		Slug:    slug,
		FlowID:  strings.Join(slug, "/"),
		Input:   json.RawMessage("null"),
		Context: Context{Rest: map[string]json.RawMessage{}},
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return inv, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Invocation{}, fmt.Errorf("%w: body must be a JSON object", ErrInvalidInput)
	}
	if in, ok := fields["input"]; ok {
		inv.Input = in
		delete(fields, "input")
	}
	inv.Context.Rest = fields
	return inv, nil
}

type Service struct {
	runner  Runner
	events  EventPublisher
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithEvents(p EventPublisher) ServiceOption {
	return func(s *Service) { s.events = p }
}

func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.timeout = d }
}

func NewService(runner Runner, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{runner: runner, logger: logger, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Invoke forwards inv to the runner and returns its result untouched. Runner
// errors are returned as-is; there are no retries.
func (s *Service) Invoke(ctx context.Context, inv Invocation) (json.RawMessage, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := s.now()
	result, err := s.runner.RunFlow(ctx, inv.FlowID, inv.Input, RunOptions{Context: inv.Context})
	elapsed := s.now().Sub(start)

	ev := Event{FlowID: inv.FlowID, Status: "ok", DurationMs: elapsed.Milliseconds(), At: start.UTC()}
	if err != nil {
		ev.Status = "error"
		ev.Error = err.Error()
		s.logger.Warn("flow failed", zap.String("flow", inv.FlowID), zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		s.logger.Info("flow completed", zap.String("flow", inv.FlowID), zap.Duration("elapsed", elapsed))
	}
	s.publish(ev)
	return result, err
}

func (s *Service) List(ctx context.Context) (json.RawMessage, error) {
	return s.runner.ListFlows(ctx)
}

// publish logs failures instead of returning them.
func (s *Service) publish(ev Event) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.events.Publish(ctx, ev.FlowID, ev); err != nil {
		s.logger.Warn("publish flow event", zap.String("flow", ev.FlowID), zap.Error(err))
	}
}
