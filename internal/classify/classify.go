// Package classify decides why a Spark executor was lost: memory
// exhaustion, GC pressure, or GC thrashing that ends in OOM. The decision
// is a pure function of the driver and executor log texts.
package classify

import "sparkrca/internal/indicators"

// FailureType is the diagnosed root-cause category.
type FailureType string

const (
	FailurePureOOM FailureType = "pure_oom"
	FailurePureGC  FailureType = "pure_gc"
	FailureMixed   FailureType = "mixed_gc_oom"
	FailureUnknown FailureType = "unknown"
)

// Confidence grades how unambiguous the evidence is.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Diagnosis is the classifier verdict: category, confidence, the evidence
// trail that supports it, and remediation steps in priority order.
type Diagnosis struct {
	FailureType     FailureType `json:"failure_type"`
	Confidence      Confidence  `json:"confidence"`
	Evidence        []string    `json:"key_evidence"`
	Recommendations []string    `json:"recommendations"`
}

// gcOverheadLead opens the evidence trail when the JVM itself reported GC
// thrashing. It outranks every other signal.
const gcOverheadLead = "GC overhead limit exceeded - GC thrashing due to insufficient memory"

var (
	recsMixedHigh = []string{
		"Increase executor memory (primary fix)",
		"Reduce memory.storageFraction to limit caching",
		"Consider GC tuning: -XX:+UseG1GC",
		"Monitor GC logs with -XX:+PrintGCDetails",
	}
	recsPureOOM = []string{
		"Increase executor-memory",
		"Add spark.yarn.executor.memoryOverhead",
		"Use MEMORY_AND_DISK storage instead of MEMORY_ONLY",
		"Increase partition count to reduce per-partition data",
	}
	recsPureGC = []string{
		"Tune GC: use G1GC instead of ParallelGC",
		"Increase executor memory to reduce GC pressure",
		"Reduce spark.memory.fraction to leave more heap for GC",
		"Monitor with: -XX:+PrintGCDetails -XX:+PrintGCTimeStamps",
	}
	recsMixedMedium = []string{
		"Increase executor memory (addresses both issues)",
		"Tune GC settings",
		"Reduce caching pressure",
	}
)

// Classify derives indicator records from both logs and applies the
// precedence rules. It is total and deterministic; with no evidence on
// either side it returns unknown/low with empty lists.
//
// Precedence: "GC overhead limit exceeded" in the executor log is the
// JVM's own verdict of GC thrashing, so it short-circuits ahead of the
// generic both-present rule, which would also land on mixed but with
// lower confidence.
func Classify(driverLog, executorLog string) Diagnosis {
	execGC := indicators.SearchGC(executorLog)
	gc := mergeGC(indicators.SearchGC(driverLog), execGC)
	oom := mergeOOM(indicators.SearchOOM(driverLog), indicators.SearchOOM(executorLog))

	gcEvidence := formatGCEvidence(gc)
	oomEvidence := formatOOMEvidence(oom)

	if execGC.GCOverheadExceeded {
		ev := make([]string, 0, 1+len(gcEvidence)+len(oomEvidence))
		ev = append(ev, gcOverheadLead)
		ev = append(ev, gcEvidence...)
		ev = append(ev, oomEvidence...)
		return Diagnosis{
			FailureType:     FailureMixed,
			Confidence:      ConfidenceHigh,
			Evidence:        ev,
			Recommendations: recsMixedHigh,
		}
	}

	gcPresent := gc.FullGCEvents > 0 || gc.HeartbeatTimeout || gc.StuckInGC || gc.GCWarnings > 0
	oomPresent := oom.HeapSpaceOOM || oom.ContainerKilled || oom.MemoryLimitExceeded || oom.FreeMemoryZero

	switch {
	case oomPresent && !gcPresent:
		return Diagnosis{
			FailureType:     FailurePureOOM,
			Confidence:      ConfidenceHigh,
			Evidence:        oomEvidence,
			Recommendations: recsPureOOM,
		}
	case gcPresent && !oomPresent:
		return Diagnosis{
			FailureType:     FailurePureGC,
			Confidence:      ConfidenceHigh,
			Evidence:        gcEvidence,
			Recommendations: recsPureGC,
		}
	case gcPresent && oomPresent:
		return Diagnosis{
			FailureType:     FailureMixed,
			Confidence:      ConfidenceMedium,
			Evidence:        append(append([]string{}, gcEvidence...), oomEvidence...),
			Recommendations: recsMixedMedium,
		}
	default:
		return Diagnosis{
			FailureType: FailureUnknown,
			Confidence:  ConfidenceLow,
		}
	}
}
