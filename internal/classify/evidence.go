package classify

import (
	"fmt"

	"sparkrca/internal/indicators"
)

// mergeGC folds the driver-side and executor-side GC records into one
// combined view. Counts add, booleans or, and the duration stats are
// recomputed over the concatenated samples (driver first, file order
// preserved within each log).
func mergeGC(a, b indicators.GCIndicators) indicators.GCIndicators {
	out := indicators.GCIndicators{
		FullGCEvents:       a.FullGCEvents + b.FullGCEvents,
		GCWarnings:         a.GCWarnings + b.GCWarnings,
		HeartbeatTimeout:   a.HeartbeatTimeout || b.HeartbeatTimeout,
		GCOverheadExceeded: a.GCOverheadExceeded || b.GCOverheadExceeded,
		StuckInGC:          a.StuckInGC || b.StuckInGC,
	}
	if n := len(a.GCEventDurationsMS) + len(b.GCEventDurationsMS); n > 0 {
		out.GCEventDurationsMS = make([]int, 0, n)
		out.GCEventDurationsMS = append(out.GCEventDurationsMS, a.GCEventDurationsMS...)
		out.GCEventDurationsMS = append(out.GCEventDurationsMS, b.GCEventDurationsMS...)
		sum := 0
		for _, ms := range out.GCEventDurationsMS {
			if ms > out.MaxGCDurationMS {
				out.MaxGCDurationMS = ms
			}
			sum += ms
		}
		out.AvgGCDurationMS = float64(sum) / float64(n)
	}
	return out
}

// mergeOOM folds two OOM records. The first non-empty usage line wins so
// a single diagnosis reports one usage snapshot.
func mergeOOM(a, b indicators.OOMIndicators) indicators.OOMIndicators {
	usage := a.MemoryUsageLine
	if usage == "" {
		usage = b.MemoryUsageLine
	}
	return indicators.OOMIndicators{
		HeapSpaceOOM:        a.HeapSpaceOOM || b.HeapSpaceOOM,
		ContainerKilled:     a.ContainerKilled || b.ContainerKilled,
		MemoryLimitExceeded: a.MemoryLimitExceeded || b.MemoryLimitExceeded,
		NotEnoughSpace:      a.NotEnoughSpace + b.NotEnoughSpace,
		FreeMemoryZero:      a.FreeMemoryZero || b.FreeMemoryZero,
		MemoryUsageLine:     usage,
	}
}

// formatGCEvidence renders the GC record as human-readable evidence
// strings in a fixed detection order, independent of where the markers
// appeared in the input.
func formatGCEvidence(gc indicators.GCIndicators) []string {
	var ev []string
	if gc.FullGCEvents > 0 {
		ev = append(ev, fmt.Sprintf("%d Full GC events detected", gc.FullGCEvents))
		if len(gc.GCEventDurationsMS) > 0 {
			ev = append(ev, fmt.Sprintf("Max GC pause: %dms, Avg: %.0fms",
				gc.MaxGCDurationMS, gc.AvgGCDurationMS))
		}
	}
	if gc.HeartbeatTimeout {
		ev = append(ev, "Heartbeat timeout (classic GC symptom)")
	}
	if gc.StuckInGC {
		ev = append(ev, "Executor stuck in GC")
	}
	if gc.GCWarnings > 0 {
		ev = append(ev, "GC time threshold exceeded")
	}
	return ev
}

// formatOOMEvidence renders the OOM record in a fixed detection order.
func formatOOMEvidence(oom indicators.OOMIndicators) []string {
	var ev []string
	if oom.HeapSpaceOOM {
		ev = append(ev, "Java heap space OOM")
	}
	if oom.ContainerKilled {
		ev = append(ev, "Container killed by YARN")
	}
	if oom.FreeMemoryZero {
		ev = append(ev, "Memory exhausted (0 free)")
	}
	if oom.MemoryLimitExceeded {
		ev = append(ev, "Physical memory limit exceeded")
	}
	return ev
}
