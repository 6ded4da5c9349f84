package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightcalc/internal/config"
)

func remoteConfig(url string) config.Config {
	var cfg config.Config
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Flow.RunnerURL = url
	cfg.Flow.Timeout = 5 * time.Second
	cfg.Flow.CacheTTL = time.Minute
	cfg.Locale.Default = "en"
	cfg.Auth.Mode = config.AuthToken
	cfg.Auth.Token = "t0ken"
	return cfg
}

func TestAppWiresRemoteRunnerBehindAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	runtime := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/myFlow/step1", r.URL.Path)
		var body map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `{"a":1}`, string(body["data"]))
		_, _ = w.Write([]byte(`{"result":{"sum":1}}`))
	}))
	defer runtime.Close()

	a, err := New(context.Background(), remoteConfig(runtime.URL), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.False(t, a.Quotes.HistoryEnabled())

	h := a.Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/genkit/myFlow/step1", strings.NewReader(`{"input":{"a":1}}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/genkit/myFlow/step1", strings.NewReader(`{"input":{"a":1}}`))
	req.Header.Set("Authorization", "Bearer t0ken")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sum":1}`, w.Body.String())
}

func TestAppServeStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), remoteConfig("http://127.0.0.1:1"), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestAppRejectsUnknownLocale(t *testing.T) {
	cfg := remoteConfig("http://127.0.0.1:1")
	cfg.Locale.Default = "xx-invalid-"
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
