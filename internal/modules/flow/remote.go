// README: Runner that forwards flows to a remote flow runtime over HTTP.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxResponseBytes = 8 << 20

// RemoteRunner talks to a flow server that accepts POST {base}/{flowId} with
// {"data": ..., "context": ...} and answers {"result": ...}. GET {base} lists flows.
type RemoteRunner struct {
	baseURL string
	client  *http.Client
}

func NewRemoteRunner(baseURL string, client *http.Client) *RemoteRunner {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteRunner{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type remoteRequest struct {
	Data    json.RawMessage `json:"data"`
	Context Context         `json:"context"`
}

func (r *RemoteRunner) RunFlow(ctx context.Context, flowID string, input json.RawMessage, opts RunOptions) (json.RawMessage, error) {
	if len(input) == 0 {
		input = json.RawMessage("null")
	}
	body, err := json.Marshal(remoteRequest{Data: input, Context: opts.Context})
	if err != nil {
		return nil, fmt.Errorf("flow remote: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.flowURL(flowID), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("flow remote: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	raw, err := r.do(req)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if res, ok := envelope["result"]; ok {
			return res, nil
		}
	}
	return raw, nil
}

func (r *RemoteRunner) ListFlows(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("flow remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return r.do(req)
}

func (r *RemoteRunner) flowURL(flowID string) string {
	segs := strings.Split(flowID, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return r.baseURL + "/" + strings.Join(segs, "/")
}

func (r *RemoteRunner) do(req *http.Request) (json.RawMessage, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flow remote: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("flow remote: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode, Body: raw}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}
	return raw, nil
}
