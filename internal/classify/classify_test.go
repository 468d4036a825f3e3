package classify

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	driverOOM = `WARN TaskSetManager: Lost task 0.0 in stage 3.0 (TID 150, executor 1): ExecutorLostFailure
ERROR TaskSchedulerImpl: Lost executor 1: Container killed by YARN for exceeding memory limits`

	executorOOM = `INFO MemoryStore: Block rdd_45_1 stored as bytes in memory (estimated size 1024.0 MB, free 0.0 B)
java.lang.OutOfMemoryError: Java heap space
FATAL Container: Container killed by YARN. Current usage: 4.2 GB of 4 GB physical memory used`

	driverGC = `ERROR TaskSchedulerImpl: Lost executor 2: Remote RPC client disassociated. Likely due to heartbeat timeout.
WARN HeartbeatReceiver: Removing executor 2 with no recent heartbeats: 150000 ms exceeds timeout 120000 ms`

	executorGC = `WARN Executor: GC time exceeded 10% threshold (12% of total time)
WARN Executor: Full GC event took 45000 ms
WARN Executor: Full GC event took 52000 ms
WARN Executor: Full GC event took 48000 ms
ERROR CoarseGrainedExecutorBackend: Cannot send heartbeat to driver, executor appears to be stuck in GC`

	executorMixed = `WARN Executor: Full GC event took 35000 ms
WARN Executor: Full GC event took 42000 ms
java.lang.OutOfMemoryError: GC overhead limit exceeded
FATAL Container: Process killed by YARN for exceeding memory limits`
)

// BDD: Given "GC overhead limit exceeded" in the executor log, When classified,
// Then the verdict is mixed_gc_oom/high regardless of any other markers.
func TestClassify_GCOverheadShortCircuits(t *testing.T) {
	cases := []struct {
		name        string
		driverLog   string
		executorLog string
	}{
		{"overhead alone", "", "java.lang.OutOfMemoryError: GC overhead limit exceeded"},
		{"overhead plus full OOM evidence", driverOOM, executorMixed},
		{"overhead plus full GC evidence", driverGC, executorGC + "\nGC overhead limit exceeded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.driverLog, tc.executorLog)
			if d.FailureType != FailureMixed {
				t.Errorf("FailureType: got %s want %s", d.FailureType, FailureMixed)
			}
			if d.Confidence != ConfidenceHigh {
				t.Errorf("Confidence: got %s want %s", d.Confidence, ConfidenceHigh)
			}
			if len(d.Evidence) == 0 || d.Evidence[0] != gcOverheadLead {
				t.Errorf("Evidence[0]: got %v want lead phrase %q", d.Evidence, gcOverheadLead)
			}
			if diff := cmp.Diff(recsMixedHigh, d.Recommendations); diff != "" {
				t.Errorf("Recommendations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Overhead in the driver log does not trigger the short circuit; only the
// executor's own JVM message counts.
func TestClassify_DriverOverheadDoesNotShortCircuit(t *testing.T) {
	d := Classify("GC overhead limit exceeded", "")
	if d.Confidence == ConfidenceHigh && d.FailureType == FailureMixed {
		t.Errorf("driver-side overhead must not produce the high-confidence mixed verdict, got %+v", d)
	}
}

func TestClassify_PureOOM(t *testing.T) {
	d := Classify(driverOOM, executorOOM)

	if d.FailureType != FailurePureOOM {
		t.Fatalf("FailureType: got %s want %s", d.FailureType, FailurePureOOM)
	}
	if d.Confidence != ConfidenceHigh {
		t.Errorf("Confidence: got %s want %s", d.Confidence, ConfidenceHigh)
	}
	wantEvidence := []string{
		"Java heap space OOM",
		"Container killed by YARN",
		"Memory exhausted (0 free)",
		"Physical memory limit exceeded",
	}
	if diff := cmp.Diff(wantEvidence, d.Evidence); diff != "" {
		t.Errorf("Evidence mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recsPureOOM, d.Recommendations); diff != "" {
		t.Errorf("Recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_PureGC(t *testing.T) {
	d := Classify(driverGC, executorGC)

	if d.FailureType != FailurePureGC {
		t.Fatalf("FailureType: got %s want %s", d.FailureType, FailurePureGC)
	}
	if d.Confidence != ConfidenceHigh {
		t.Errorf("Confidence: got %s want %s", d.Confidence, ConfidenceHigh)
	}
	wantEvidence := []string{
		"3 Full GC events detected",
		"Max GC pause: 52000ms, Avg: 48333ms",
		"Heartbeat timeout (classic GC symptom)",
		"Executor stuck in GC",
		"GC time threshold exceeded",
	}
	if diff := cmp.Diff(wantEvidence, d.Evidence); diff != "" {
		t.Errorf("Evidence mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recsPureGC, d.Recommendations); diff != "" {
		t.Errorf("Recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_BothPresentWithoutOverheadIsMediumMixed(t *testing.T) {
	// GC evidence and OOM evidence, but no "GC overhead limit exceeded".
	d := Classify(driverOOM, executorGC)

	if d.FailureType != FailureMixed {
		t.Fatalf("FailureType: got %s want %s", d.FailureType, FailureMixed)
	}
	if d.Confidence != ConfidenceMedium {
		t.Errorf("Confidence: got %s want %s", d.Confidence, ConfidenceMedium)
	}
	// GC evidence strictly precedes OOM evidence.
	joined := strings.Join(d.Evidence, "|")
	if gcIdx, oomIdx := strings.Index(joined, "Full GC events"), strings.Index(joined, "Container killed"); gcIdx == -1 || oomIdx == -1 || gcIdx > oomIdx {
		t.Errorf("evidence ordering wrong: %v", d.Evidence)
	}
	if diff := cmp.Diff(recsMixedMedium, d.Recommendations); diff != "" {
		t.Errorf("Recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_EmptyLogsAreUnknown(t *testing.T) {
	d := Classify("", "")

	want := Diagnosis{FailureType: FailureUnknown, Confidence: ConfidenceLow}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Diagnosis mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := [][2]string{
		{driverOOM, executorOOM},
		{driverGC, executorGC},
		{driverOOM, executorMixed},
		{"", ""},
	}
	for _, in := range inputs {
		a, err := json.Marshal(Classify(in[0], in[1]))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		b, err := json.Marshal(Classify(in[0], in[1]))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(a) != string(b) {
			t.Errorf("Classify not byte-identical:\n%s\n%s", a, b)
		}
	}
}

func TestFormatDiagnosis(t *testing.T) {
	out := FormatDiagnosis(Classify(driverGC, executorGC))
	for _, want := range []string{"Pure GC pressure", "high", "52000ms", "G1GC"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	unknown := FormatDiagnosis(Classify("", ""))
	if !strings.Contains(unknown, "No GC or OOM markers") {
		t.Errorf("unknown report missing hint:\n%s", unknown)
	}
}
