package flow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteRunFlow(t *testing.T) {
	var gotPath string
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte(`{"result":{"price":42}}`))
	}))
	defer srv.Close()

	runner := NewRemoteRunner(srv.URL+"/", srv.Client())
	out, err := runner.RunFlow(context.Background(), "myFlow/step1", json.RawMessage(`{"a":1}`), RunOptions{
		Context: Context{Rest: map[string]json.RawMessage{"extra": json.RawMessage(`"x"`)}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":42}`, string(out))
	assert.Equal(t, "/myFlow/step1", gotPath)
	assert.JSONEq(t, `{"a":1}`, string(gotBody["data"]))
	assert.JSONEq(t, `{"rest":{"extra":"x"}}`, string(gotBody["context"]))
}

func TestRemoteRunFlowWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	out, err := NewRemoteRunner(srv.URL, srv.Client()).RunFlow(context.Background(), "f", nil, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(out))
}

func TestRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"bad input"}`))
	}))
	defer srv.Close()

	_, err := NewRemoteRunner(srv.URL, srv.Client()).RunFlow(context.Background(), "f", json.RawMessage(`{}`), RunOptions{})
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.Status)
	assert.JSONEq(t, `{"error":"bad input"}`, string(remote.Body))
}

func TestRemoteListFlows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"flows":["a","b"]}`))
	}))
	defer srv.Close()

	out, err := NewRemoteRunner(srv.URL, srv.Client()).ListFlows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"flows":["a","b"]}`, string(out))
}
