package classify

import (
	"fmt"
	"strings"
)

// titles for human-readable output; the wire format keeps the enum values.
var failureTitles = map[FailureType]string{
	FailurePureOOM: "Pure OOM (memory exhaustion)",
	FailurePureGC:  "Pure GC pressure",
	FailureMixed:   "Mixed GC/OOM (GC thrashing)",
	FailureUnknown: "Unknown",
}

// FormatDiagnosis renders a diagnosis as a terminal-friendly report.
func FormatDiagnosis(d Diagnosis) string {
	var b strings.Builder

	b.WriteString("=== Executor Loss Diagnosis ===\n")
	title := failureTitles[d.FailureType]
	if title == "" {
		title = string(d.FailureType)
	}
	b.WriteString(fmt.Sprintf("Failure type: %s\n", title))
	b.WriteString(fmt.Sprintf("Confidence:   %s\n", d.Confidence))

	if len(d.Evidence) > 0 {
		b.WriteString("\n--- Evidence ---\n")
		for _, ev := range d.Evidence {
			b.WriteString(fmt.Sprintf("  - %s\n", ev))
		}
	}
	if len(d.Recommendations) > 0 {
		b.WriteString("\n--- Recommendations ---\n")
		for i, rec := range d.Recommendations {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	}
	if d.FailureType == FailureUnknown {
		b.WriteString("\nNo GC or OOM markers found in either log.\n")
	}

	return b.String()
}
