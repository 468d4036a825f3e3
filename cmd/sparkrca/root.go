// sparkrca diagnoses Spark executor loss: pure OOM, pure GC pressure, or
// mixed GC thrashing, from driver and executor log text.
//
// Usage:
//
//	sparkrca analyze --driver-log d.log --executor-log e.log
//	sparkrca analyze --scenario gc [--executor 2] [--json]
//	sparkrca analyze --all [--parallel N]
//	sparkrca scenarios
//	sparkrca serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sparkrca/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "sparkrca",
	Short: "Diagnose Spark executor loss: OOM, GC pressure, or GC thrashing",
	Long: "sparkrca classifies why a Spark executor was terminated by extracting\n" +
		"GC and OOM indicators from the driver and executor logs and applying\n" +
		"a fixed precedence over the evidence.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
