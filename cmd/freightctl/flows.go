package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"freightcalc/internal/app"
	"freightcalc/internal/config"
	"freightcalc/internal/modules/flow"
)

var (
	flowInput string
	flowRest  string
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "List and run pricing flows",
	Long: `Uses the flow runtime from the environment: FREIGHT_FLOW_RUNNER_URL for a
remote runtime, otherwise the in-process flows (requires GEMINI_API_KEY).`,
}

var flowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered flows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			listing, err := a.Flows.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, listing)
		})
	},
}

var flowsRunCmd = &cobra.Command{
	Use:   "run <flow-id>",
	Short: "Run a flow with a JSON input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := invocationBody(flowInput, flowRest)
		if err != nil {
			return err
		}
		inv, err := flow.NewInvocation(flow.ParseSlug(args[0]), body)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			result, err := a.Flows.Invoke(cmd.Context(), inv)
			if err != nil {
				return fmt.Errorf("flow %s: %w", inv.FlowID, err)
			}
			return printJSON(cmd, result)
		})
	},
}

func init() {
	flowsRunCmd.Flags().StringVarP(&flowInput, "input", "i", "null", "flow input as JSON")
	flowsRunCmd.Flags().StringVar(&flowRest, "rest", "{}", "extra request fields as a JSON object")
	flowsCmd.AddCommand(flowsListCmd, flowsRunCmd)
	rootCmd.AddCommand(flowsCmd)
}

// invocationBody builds the same body the HTTP gateway receives.
func invocationBody(input, rest string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rest), &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("--rest must be a JSON object")
	}
	if !json.Valid([]byte(input)) {
		return nil, fmt.Errorf("--input is not valid JSON")
	}
	fields["input"] = json.RawMessage(input)
	return json.Marshal(fields)
}

func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}
