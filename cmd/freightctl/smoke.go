// README: Smoke checks against a running deployment; covers HTTP routes, Postgres, Redis, and a short load run.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type smokeConfig struct {
	BaseURL       string
	Token         string
	DSN           string
	RedisAddr     string
	MigrationPath string
	Timeout       time.Duration
	Concurrency   int
	Duration      time.Duration
}

var smokeCfg smokeConfig

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Smoke-test a running freight API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		smokeCfg.BaseURL = strings.TrimRight(smokeCfg.BaseURL, "/")
		ctx, cancel := context.WithTimeout(context.Background(), smokeCfg.Timeout)
		defer cancel()

		results := newSmokeRunner(smokeCfg).RunAll(ctx, cmd.OutOrStdout())
		pass, fail, skipped := 0, 0, 0
		for _, r := range results {
			switch r.Status {
			case statusPass:
				pass++
			case statusFail:
				fail++
			case statusSkip:
				skipped++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)
		if fail > 0 {
			return fmt.Errorf("%d smoke checks failed", fail)
		}
		return nil
	},
}

func init() {
	f := smokeCmd.Flags()
	f.StringVar(&smokeCfg.BaseURL, "base-url", envOrDefault("FREIGHT_SMOKE_BASE_URL", "http://localhost:8080"), "API base URL")
	f.StringVar(&smokeCfg.Token, "token", os.Getenv("FREIGHT_AUTH_TOKEN"), "bearer token for the flow gateway")
	f.StringVar(&smokeCfg.DSN, "dsn", os.Getenv("FREIGHT_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	f.StringVar(&smokeCfg.RedisAddr, "redis", os.Getenv("FREIGHT_REDIS_ADDR"), "Redis address (empty skips)")
	f.StringVar(&smokeCfg.MigrationPath, "migration", "migrations/0001_quotes.sql", "migration SQL used to check tables")
	f.DurationVar(&smokeCfg.Timeout, "timeout", 60*time.Second, "total timeout")
	f.IntVar(&smokeCfg.Concurrency, "concurrency", 10, "workers for the load check")
	f.DurationVar(&smokeCfg.Duration, "duration", 0, "load check duration (0 skips)")
	rootCmd.AddCommand(smokeCmd)
}

type smokeResult struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type smokeCase struct {
	Name string
	Run  func(ctx context.Context, r *smokeRunner) smokeResult
}

type smokeRunner struct {
	cfg      smokeConfig
	httpc    *http.Client
	noFollow *http.Client
	db       *pgxpool.Pool
	redis    *redis.Client
}

func newSmokeRunner(cfg smokeConfig) *smokeRunner {
	return &smokeRunner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
		noFollow: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (r *smokeRunner) RunAll(ctx context.Context, out io.Writer) []smokeResult {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	cases := r.cases()
	results := make([]smokeResult, 0, len(cases))
	for _, tc := range cases {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Fprintf(out, "%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(out, " (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Fprintf(out, " - %s", res.Note)
		}
		fmt.Fprintln(out)
	}
	return results
}

const (
	smokeValidRequest = `{"seaFreight":{"containerType":"40HC","cargoWeight":12000,"origin":"Shanghai","destination":"Rotterdam"},
"railFreight":{"containerType":"40GP","cargoWeight":9000,"origin":"Xi'an","destination":"Duisburg","insurance":true}}`
	smokeInvalidRequest = `{"seaFreight":{"containerType":"","cargoWeight":0,"origin":"S","destination":"Rotterdam"}}`
	smokeRoute          = `{"id":"smoke","mode":"sea","carrier":"Smoke Lines","containerType":"20GP","origin":"Shanghai",
"destination":"Hamburg","cargoWeight":1000,"total":{"amount":150000,"currency":"USD"},"transitDays":30}`
)

func (r *smokeRunner) cases() []smokeCase {
	return []smokeCase{
		{Name: "Env: Postgres connect", Run: func(ctx context.Context, r *smokeRunner) smokeResult {
			if r.db == nil {
				return smokeResult{Status: statusSkip, Note: "db not configured"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.db.Ping(ctx); err != nil {
				return smokeResult{Status: statusFail, Note: err.Error()}
			}
			return smokeResult{Status: statusPass}
		}},
		{Name: "Migration: tables exist", Run: checkTables},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *smokeRunner) smokeResult {
			if r.redis == nil {
				return smokeResult{Status: statusSkip, Note: "redis not configured"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.redis.Ping(ctx).Err(); err != nil {
				return smokeResult{Status: statusFail, Note: err.Error()}
			}
			return smokeResult{Status: statusPass}
		}},
		httpCase("API: health", http.MethodGet, "/health", "", http.StatusOK, nil),
		httpCase("Guide: eight chapters", http.MethodGet, "/api/guide", "", http.StatusOK, func(body []byte) error {
			var resp struct {
				Chapters []struct {
					ID string `json:"id"`
				} `json:"chapters"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			if len(resp.Chapters) != 8 || resp.Chapters[0].ID != "introduction" {
				return fmt.Errorf("unexpected chapters: %d", len(resp.Chapters))
			}
			return nil
		}),
		httpCase("Calculation: valid request", http.MethodPost, "/api/calculations/validate", smokeValidRequest, http.StatusOK, nil),
		httpCase("Calculation: invalid request -> 422", http.MethodPost, "/api/calculations/validate", smokeInvalidRequest,
			http.StatusUnprocessableEntity, func(body []byte) error {
				var resp struct {
					Errors map[string]string `json:"errors"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return err
				}
				for _, f := range []string{"seaFreight.containerType", "seaFreight.cargoWeight", "seaFreight.origin", "railFreight"} {
					if _, ok := resp.Errors[f]; !ok {
						return fmt.Errorf("missing error for %s", f)
					}
				}
				return nil
			}),
		httpCase("Routes: copy text", http.MethodPost, "/api/routes/copy-text?index=0", smokeRoute, http.StatusOK, nil),
		{Name: "Routes: instructions redirect", Run: checkInstructionsRedirect},
		httpCase("Gateway: list flows", http.MethodGet, "/api/genkit/", "", http.StatusOK, nil),
		{Name: "Perf: validate under load", Run: perfLoad},
	}
}

func (r *smokeRunner) do(ctx context.Context, client *http.Client, method, path, body string) (*http.Response, []byte, time.Duration, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	return resp, data, time.Since(start), err
}

func httpCase(name, method, path, body string, want int, check func([]byte) error) smokeCase {
	return smokeCase{Name: name, Run: func(ctx context.Context, r *smokeRunner) smokeResult {
		resp, data, latency, err := r.do(ctx, r.httpc, method, path, body)
		if err != nil {
			return smokeResult{Status: statusFail, Note: err.Error()}
		}
		note := fmt.Sprintf("status=%d", resp.StatusCode)
		if resp.StatusCode != want {
			return smokeResult{Status: statusFail, Latency: latency, Note: note}
		}
		if check != nil {
			if err := check(data); err != nil {
				return smokeResult{Status: statusFail, Latency: latency, Note: err.Error()}
			}
		}
		return smokeResult{Status: statusPass, Latency: latency, Note: note}
	}}
}

func checkInstructionsRedirect(ctx context.Context, r *smokeRunner) smokeResult {
	resp, _, latency, err := r.do(ctx, r.noFollow, http.MethodPost, "/api/routes/instructions", smokeRoute)
	if err != nil {
		return smokeResult{Status: statusFail, Note: err.Error()}
	}
	if resp.StatusCode != http.StatusSeeOther {
		return smokeResult{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
	}
	loc := resp.Header.Get("Location")
	resp, _, _, err = r.do(ctx, r.httpc, http.MethodGet, loc, "")
	if err != nil {
		return smokeResult{Status: statusFail, Note: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return smokeResult{Status: statusFail, Latency: latency, Note: fmt.Sprintf("%s status=%d", loc, resp.StatusCode)}
	}
	return smokeResult{Status: statusPass, Latency: latency}
}

func checkTables(ctx context.Context, r *smokeRunner) smokeResult {
	if r.db == nil {
		return smokeResult{Status: statusSkip, Note: "db not configured"}
	}
	tables, err := extractTables(r.cfg.MigrationPath)
	if err != nil {
		return smokeResult{Status: statusFail, Note: err.Error()}
	}
	for _, t := range tables {
		var exists bool
		err := r.db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
			t,
		).Scan(&exists)
		if err != nil {
			return smokeResult{Status: statusFail, Note: err.Error()}
		}
		if !exists {
			return smokeResult{Status: statusFail, Note: "missing table: " + t}
		}
	}
	return smokeResult{Status: statusPass, Note: strings.Join(tables, ",")}
}

func perfLoad(ctx context.Context, r *smokeRunner) smokeResult {
	if r.cfg.Duration <= 0 {
		return smokeResult{Status: statusSkip, Note: "duration=0"}
	}
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				if _, _, _, err := r.do(ctx, r.httpc, http.MethodPost, "/api/calculations/validate", smokeValidRequest); err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return smokeResult{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return smokeResult{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matches := createTableRe.FindAllStringSubmatch(string(b), -1)
	if len(matches) == 0 {
		return nil, errors.New("no tables in " + path)
	}
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
