// README: In-process flow runtime: named handlers registered at start-up.
package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Handler runs one flow. The returned value is marshalled to JSON.
type Handler func(ctx context.Context, input json.RawMessage, fc Context) (any, error)

type registered struct {
	desc    Descriptor
	handler Handler
}

// Registry implements Runner for flows that live in this process.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]registered
}

func NewRegistry() *Registry {
	return &Registry{flows: map[string]registered{}}
}

func (r *Registry) Register(name, description string, h Handler) error {
	if name == "" || h == nil {
		return fmt.Errorf("flow registry: name and handler are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flows[name]; ok {
		return fmt.Errorf("flow registry: %q already registered", name)
	}
	r.flows[name] = registered{desc: Descriptor{Name: name, Description: description}, handler: h}
	return nil
}

func (r *Registry) RunFlow(ctx context.Context, flowID string, input json.RawMessage, opts RunOptions) (json.RawMessage, error) {
	r.mu.RLock()
	f, ok := r.flows[flowID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, flowID)
	}

	out, err := f.handler(ctx, input, opts.Context)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("flow %s: marshal result: %w", flowID, err)
	}
	return raw, nil
}

// Descriptors returns registered flows sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.flows))
	for _, f := range r.flows {
		out = append(out, f.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) ListFlows(context.Context) (json.RawMessage, error) {
	return json.Marshal(r.Descriptors())
}
