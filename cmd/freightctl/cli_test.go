package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightcalc/internal/app"
	"freightcalc/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	validateJSON = false
	lang = ""
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

// fakeRuntime speaks the remote flow runtime protocol.
func fakeRuntime(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[{"name":"calculateBestPrice"}]`))
			return
		}
		var body struct {
			Data    json.RawMessage `json:"data"`
			Context json.RawMessage `json:"context"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		out, _ := json.Marshal(map[string]any{"result": map[string]any{
			"flow": strings.TrimPrefix(r.URL.Path, "/"), "data": body.Data, "context": body.Context,
		}})
		_, _ = w.Write(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRootHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"validate", "guide", "flows", "serve", "smoke"} {
		assert.True(t, names[want], want)
	}
}

func TestValidateFromStdin(t *testing.T) {
	out, err := execute(t, `{"seaFreight":{"containerType":"20GP","cargoWeight":"1000","origin":"Shanghai","destination":"Hamburg"},
		"railFreight":{"containerType":"40GP","cargoWeight":5,"origin":"Xi'an","destination":"Duisburg"}}`, "validate", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"cargoWeight": 1000`)
}

func TestValidateReportsFieldErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seaFreight":{"containerType":"20GP","cargoWeight":-1,"origin":"Shanghai","destination":"Hamburg"}}`), 0o600))

	out, err := execute(t, "", "validate", path)
	assert.ErrorIs(t, err, errInvalidRequest)
	assert.Contains(t, out, "seaFreight.cargoWeight: Must be a positive number.")
	assert.Contains(t, out, "railFreight: Please select a value.")
}

func TestGuideSingleChapter(t *testing.T) {
	out, err := execute(t, "", "guide", "troubleshooting")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "))
	assert.Equal(t, 1, strings.Count(out, "# "))

	_, err = execute(t, "", "guide", "nope")
	assert.Error(t, err)
}

func TestFlowsAgainstRemoteRuntime(t *testing.T) {
	srv := fakeRuntime(t)
	t.Setenv("FREIGHT_FLOW_RUNNER_URL", srv.URL)
	t.Setenv("FREIGHT_AUTH_MODE", "none")

	out, err := execute(t, "", "flows", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "calculateBestPrice")

	out, err = execute(t, "", "flows", "run", "myFlow/step1", "--input", `{"a":1}`, "--rest", `{"extra":"x"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"flow": "myFlow/step1"`)
	assert.Contains(t, out, `"extra": "x"`)
}

func TestInvocationBody(t *testing.T) {
	body, err := invocationBody(`{"a":1}`, `{"extra":"x"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":{"a":1},"extra":"x"}`, string(body))

	_, err = invocationBody(`{`, `{}`)
	assert.Error(t, err)
	_, err = invocationBody(`1`, `[]`)
	assert.Error(t, err)
}

func TestSmokeAgainstLocalServer(t *testing.T) {
	runtime := fakeRuntime(t)
	var cfg config.Config
	cfg.Flow.RunnerURL = runtime.URL
	cfg.Flow.Timeout = 5 * time.Second
	cfg.Locale.Default = "en"
	cfg.Auth.Mode = config.AuthNone

	a, err := app.New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	api := httptest.NewServer(a.Handler())
	defer api.Close()

	smokeCfg = smokeConfig{
		BaseURL:       api.URL,
		MigrationPath: filepath.Join("..", "..", "migrations", "0001_quotes.sql"),
		Concurrency:   2,
	}
	var out bytes.Buffer
	results := newSmokeRunner(smokeCfg).RunAll(context.Background(), &out)
	for _, r := range results {
		assert.NotEqual(t, statusFail, r.Status, "%s: %s", r.Name, r.Note)
	}
}

func TestExtractTables(t *testing.T) {
	tables, err := extractTables(filepath.Join("..", "..", "migrations", "0001_quotes.sql"))
	require.NoError(t, err)
	assert.Equal(t, []string{"quotes"}, tables)
}
