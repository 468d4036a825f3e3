// Package indicators extracts structured GC and OOM evidence from raw
// Spark driver and executor log text. Extraction is total: any text,
// including the empty string, yields a well-formed record.
package indicators

import (
	"strconv"
	"strings"
)

// Substring markers for GC pressure. These match what Spark and the JVM
// actually emit; extraction is marker-based, not line-format-based.
const (
	markerFullGC     = "Full GC event"
	markerFullGCTook = "Full GC event took"
	markerGCWarning  = "GC time exceeded"
	markerGCOverhead = "GC overhead limit exceeded"
	markerStuckInGC  = "stuck in GC"
)

// GCIndicators summarizes garbage-collection evidence found in one log.
type GCIndicators struct {
	FullGCEvents       int     `json:"full_gc_events"`
	GCWarnings         int     `json:"gc_warnings"`
	HeartbeatTimeout   bool    `json:"heartbeat_timeout"`
	GCOverheadExceeded bool    `json:"gc_overhead"`
	StuckInGC          bool    `json:"stuck_in_gc"`
	GCEventDurationsMS []int   `json:"gc_event_times_ms"`
	MaxGCDurationMS    int     `json:"max_gc_time_ms"`
	AvgGCDurationMS    float64 `json:"avg_gc_time_ms"`
}

// SearchGC scans log text for GC pressure indicators. It never fails;
// text with no markers yields the zero record.
func SearchGC(text string) GCIndicators {
	lower := strings.ToLower(text)
	ind := GCIndicators{
		FullGCEvents:       strings.Count(text, markerFullGC),
		GCWarnings:         strings.Count(text, markerGCWarning),
		HeartbeatTimeout:   strings.Contains(lower, "heartbeat") && strings.Contains(lower, "timeout"),
		GCOverheadExceeded: strings.Contains(text, markerGCOverhead),
		StuckInGC:          strings.Contains(text, markerStuckInGC),
	}

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, markerFullGCTook) {
			continue
		}
		ms, ok := parsePauseMS(line)
		if !ok {
			// Unparsable duration text. The event still counts toward
			// FullGCEvents; it just contributes no duration sample.
			continue
		}
		ind.GCEventDurationsMS = append(ind.GCEventDurationsMS, ms)
	}

	if len(ind.GCEventDurationsMS) > 0 {
		sum := 0
		for _, ms := range ind.GCEventDurationsMS {
			if ms > ind.MaxGCDurationMS {
				ind.MaxGCDurationMS = ms
			}
			sum += ms
		}
		ind.AvgGCDurationMS = float64(sum) / float64(len(ind.GCEventDurationsMS))
	}

	return ind
}

// parsePauseMS pulls the integer between "took" and the following "ms"
// out of a "Full GC event took 45000 ms" line.
func parsePauseMS(line string) (int, bool) {
	_, after, found := strings.Cut(line, "took")
	if !found {
		return 0, false
	}
	before, _, found := strings.Cut(after, "ms")
	if !found {
		return 0, false
	}
	ms, err := strconv.Atoi(strings.TrimSpace(before))
	if err != nil || ms < 0 {
		return 0, false
	}
	return ms, true
}
