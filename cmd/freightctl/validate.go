package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"freightcalc/internal/modules/calculation"
)

var validateJSON bool

var errInvalidRequest = errors.New("invalid calculation request")

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a calculation request",
	Long: `Validates a {"seaFreight": {...}, "railFreight": {...}} request read from
file, or from stdin when file is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the normalized request as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	req, err := calculation.ValidateJSON(body)
	var verr *calculation.ValidationError
	if errors.As(err, &verr) {
		t, terr := translator()
		if terr != nil {
			return terr
		}
		for _, f := range verr.Fields {
			fmt.Fprintf(out, "%s: %s\n", f.Field, t.T("validation."+f.Code, map[string]any{"Min": f.Min}))
		}
		return errInvalidRequest
	}
	if err != nil {
		return err
	}

	if validateJSON {
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, "OK")
	return nil
}
