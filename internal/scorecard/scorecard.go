// Package scorecard replays every corpus scenario through the classifier
// and compares the verdicts against ground truth. It is the regression
// gate for the decision procedure: if a fixture stops classifying to its
// label, the precedence rules drifted.
package scorecard

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"sparkrca/internal/classify"
	"sparkrca/internal/format"
	"sparkrca/internal/logcorpus"
)

// Result is the outcome of classifying one scenario.
type Result struct {
	Scenario       string              `json:"scenario"`
	WantType       classify.FailureType `json:"want_type"`
	GotType        classify.FailureType `json:"got_type"`
	WantConfidence classify.Confidence  `json:"want_confidence"`
	GotConfidence  classify.Confidence  `json:"got_confidence"`
	Pass           bool                 `json:"pass"`
	Diagnosis      classify.Diagnosis   `json:"diagnosis"`
}

// Run classifies all scenarios in the corpus, up to parallel at a time
// (parallel < 1 means serial). Results come back in corpus list order
// regardless of completion order.
func Run(ctx context.Context, corpus *logcorpus.Corpus, parallel int) ([]Result, error) {
	names := corpus.List()
	results := make([]Result, len(names))

	g, ctx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := corpus.Scenario(name)
			if s == nil {
				return fmt.Errorf("scenario %q disappeared from corpus", name)
			}
			d := classify.Classify(s.DriverLog, corpus.ExecutorLog(s.PrimaryExecutor(), name))
			results[i] = Result{
				Scenario:       name,
				WantType:       classify.FailureType(s.FailureType),
				GotType:        d.FailureType,
				WantConfidence: classify.Confidence(s.Confidence),
				GotConfidence:  d.Confidence,
				Pass:           string(d.FailureType) == s.FailureType && string(d.Confidence) == s.Confidence,
				Diagnosis:      d,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Format renders the scorecard for the terminal.
func Format(results []Result) string {
	tb := format.NewTable(format.ASCII)
	tb.Header("Scenario", "Want", "Got", "Pass")
	tb.Columns(format.Column{Number: 4, Align: format.AlignCenter})

	passed := 0
	for _, r := range results {
		if r.Pass {
			passed++
		}
		tb.Row(r.Scenario,
			fmt.Sprintf("%s/%s", r.WantType, r.WantConfidence),
			fmt.Sprintf("%s/%s", r.GotType, r.GotConfidence),
			format.BoolMark(r.Pass))
	}

	verdict := "PASS"
	if passed < len(results) {
		verdict = "FAIL"
	}

	var b strings.Builder
	b.WriteString("=== Corpus Scorecard ===\n")
	b.WriteString(tb.String())
	b.WriteString(fmt.Sprintf("\n\nRESULT: %s (%d/%d scenarios)\n", verdict, passed, len(results)))
	return b.String()
}
