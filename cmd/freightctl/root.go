// README: Root command and shared logger/locale flags for freightctl.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"freightcalc/internal/locale"
)

var (
	logger  = zap.NewNop()
	verbose bool
	lang    string
)

var rootCmd = &cobra.Command{
	Use:   "freightctl",
	Short: "Freight price calculator tooling",
	Long: `freightctl validates calculation requests, prints the user guide,
invokes pricing flows, runs the HTTP API, and smoke-tests a running deployment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "output language (en, ru)")
}

// translator resolves --lang against the embedded catalogs.
func translator() (locale.Translator, error) {
	catalog, err := locale.NewCatalog("en")
	if err != nil {
		return nil, err
	}
	return catalog.For(catalog.Match(lang, "")), nil
}
