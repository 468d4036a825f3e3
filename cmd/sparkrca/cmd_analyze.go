package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sparkrca/internal/classify"
	"sparkrca/internal/logcorpus"
	"sparkrca/internal/scorecard"
)

var analyzeFlags struct {
	driverLog   string
	executorLog string
	scenario    string
	executorID  int
	all         bool
	parallel    int
	jsonOut     bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify an executor loss from driver and executor logs",
	Long: `Classify an executor loss as pure_oom, pure_gc, mixed_gc_oom, or unknown.

Logs come either from files:
  sparkrca analyze --driver-log driver.log --executor-log executor.log

or from the built-in fixture corpus:
  sparkrca analyze --scenario gc --executor 2

With --all, every corpus scenario is classified (in parallel) and checked
against its ground-truth label.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.driverLog, "driver-log", "", "Path to the driver log file")
	f.StringVar(&analyzeFlags.executorLog, "executor-log", "", "Path to the executor log file")
	f.StringVar(&analyzeFlags.scenario, "scenario", "", "Corpus scenario name (oom, gc, mixed)")
	f.IntVar(&analyzeFlags.executorID, "executor", 0, "Executor ID within the scenario (default: first)")
	f.BoolVar(&analyzeFlags.all, "all", false, "Classify every corpus scenario against ground truth")
	f.IntVar(&analyzeFlags.parallel, "parallel", 4, "Max scenarios classified concurrently with --all")
	f.BoolVar(&analyzeFlags.jsonOut, "json", false, "Emit JSON instead of the human-readable report")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeFlags.all {
		return runAnalyzeAll(cmd)
	}

	driver, executor, err := resolveLogs()
	if err != nil {
		return err
	}

	d := classify.Classify(driver, executor)
	if analyzeFlags.jsonOut {
		return printJSON(cmd, d)
	}
	fmt.Fprint(cmd.OutOrStdout(), classify.FormatDiagnosis(d))
	return nil
}

func runAnalyzeAll(cmd *cobra.Command) error {
	results, err := scorecard.Run(cmd.Context(), logcorpus.Default(), analyzeFlags.parallel)
	if err != nil {
		return fmt.Errorf("scorecard: %w", err)
	}
	if analyzeFlags.jsonOut {
		return printJSON(cmd, results)
	}
	fmt.Fprint(cmd.OutOrStdout(), scorecard.Format(results))
	for _, r := range results {
		if !r.Pass {
			return fmt.Errorf("%d scenario(s) off ground truth", countFailed(results))
		}
	}
	return nil
}

// resolveLogs produces the two log texts from either file flags or a
// corpus scenario.
func resolveLogs() (driver, executor string, err error) {
	if analyzeFlags.scenario != "" {
		corpus := logcorpus.Default()
		s := corpus.Scenario(analyzeFlags.scenario)
		if s == nil {
			return "", "", fmt.Errorf("scenario %q not found (available: %v)", analyzeFlags.scenario, corpus.List())
		}
		id := analyzeFlags.executorID
		if id == 0 {
			id = s.PrimaryExecutor()
		}
		return s.DriverLog, corpus.ExecutorLog(id, analyzeFlags.scenario), nil
	}

	if analyzeFlags.driverLog == "" && analyzeFlags.executorLog == "" {
		return "", "", fmt.Errorf("provide --driver-log/--executor-log files or a --scenario name")
	}
	driver, err = readOptionalFile(analyzeFlags.driverLog)
	if err != nil {
		return "", "", err
	}
	executor, err = readOptionalFile(analyzeFlags.executorLog)
	if err != nil {
		return "", "", err
	}
	return driver, executor, nil
}

// readOptionalFile reads a log file; an empty path is an empty log. The
// classifier is total, so a one-sided invocation is fine.
func readOptionalFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read log: %w", err)
	}
	return string(data), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func countFailed(results []scorecard.Result) int {
	n := 0
	for _, r := range results {
		if !r.Pass {
			n++
		}
	}
	return n
}
