package indicators

import "strings"

// Substring markers for memory exhaustion.
const (
	markerHeapSpaceOOM   = "OutOfMemoryError: Java heap space"
	markerContainerKill  = "Container killed"
	markerKilledByYARN   = "killed by YARN"
	markerMemoryLimits   = "exceeding memory limits"
	markerNotEnoughSpace = "Not enough space"
	markerFreeZeroLong   = "free 0.0 B"
	markerFreeZeroShort  = "free 0 B"
	markerCurrentUsage   = "Current usage:"
)

// OOMIndicators summarizes memory-exhaustion evidence found in one log.
type OOMIndicators struct {
	HeapSpaceOOM        bool   `json:"java_heap_space_oom"`
	ContainerKilled     bool   `json:"container_killed"`
	MemoryLimitExceeded bool   `json:"memory_exceeded"`
	NotEnoughSpace      int    `json:"not_enough_space"`
	FreeMemoryZero      bool   `json:"free_memory_zero"`
	MemoryUsageLine     string `json:"memory_usage_info,omitempty"`
}

// SearchOOM scans log text for OOM indicators. It never fails; text with
// no markers yields the zero record.
func SearchOOM(text string) OOMIndicators {
	ind := OOMIndicators{
		HeapSpaceOOM:        strings.Contains(text, markerHeapSpaceOOM),
		ContainerKilled:     strings.Contains(text, markerContainerKill) || strings.Contains(text, markerKilledByYARN),
		MemoryLimitExceeded: strings.Contains(text, markerMemoryLimits),
		NotEnoughSpace:      strings.Count(text, markerNotEnoughSpace),
		FreeMemoryZero:      strings.Contains(text, markerFreeZeroLong) || strings.Contains(text, markerFreeZeroShort),
	}

	if strings.Contains(text, markerCurrentUsage) {
		for _, line := range strings.Split(text, "\n") {
			if strings.Contains(line, markerCurrentUsage) {
				ind.MemoryUsageLine = strings.TrimSpace(line)
				break
			}
		}
	}

	return ind
}
