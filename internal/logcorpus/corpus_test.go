package logcorpus

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_LoadsEmbeddedScenarios(t *testing.T) {
	corpus := Default()

	want := []string{"gc", "mixed", "oom"}
	if diff := cmp.Diff(want, corpus.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}

	for _, name := range want {
		s := corpus.Scenario(name)
		if s == nil {
			t.Fatalf("Scenario(%q) = nil", name)
		}
		if s.FailureType == "" || s.Confidence == "" {
			t.Errorf("scenario %q missing ground truth: %+v", name, s)
		}
		if s.DriverLog == "" {
			t.Errorf("scenario %q has empty driver log", name)
		}
		if len(s.Executors) == 0 {
			t.Errorf("scenario %q has no executor logs", name)
		}
	}
}

func TestCorpus_FixtureMarkers(t *testing.T) {
	corpus := Default()

	cases := []struct {
		key    string
		marker string
	}{
		{"oom_driver", "Container killed by YARN for exceeding memory limits"},
		{"oom_executor", "OutOfMemoryError: Java heap space"},
		{"gc_driver", "heartbeat timeout"},
		{"gc_executor", "Full GC event took 52000 ms"},
		{"mixed_executor", "GC overhead limit exceeded"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			log := corpus.GetLog(tc.key)
			if !strings.Contains(log, tc.marker) {
				t.Errorf("GetLog(%q) missing marker %q:\n%s", tc.key, tc.marker, log)
			}
		})
	}
}

// BDD: Given an unknown lookup key, When fetched, Then the result is an
// inspectable "not found" text, never an error.
func TestCorpus_UnknownKeysReturnSentinel(t *testing.T) {
	corpus := Default()

	for _, key := range []string{"nope_driver", "oom_banana", "plainkey", ""} {
		if got := corpus.GetLog(key); !strings.Contains(got, "not found") {
			t.Errorf("GetLog(%q): missing sentinel, got %q", key, got)
		}
	}
	if got := corpus.DriverLog("nope"); !strings.Contains(got, "not found") {
		t.Errorf("DriverLog: missing sentinel, got %q", got)
	}
	if got := corpus.ExecutorLog(99, "gc"); !strings.Contains(got, "not found") {
		t.Errorf("ExecutorLog unknown id: missing sentinel, got %q", got)
	}
	if got := corpus.ExecutorLog(1, "nope"); !strings.Contains(got, "not found") {
		t.Errorf("ExecutorLog unknown scenario: missing sentinel, got %q", got)
	}
}

func TestCorpus_SplitAndFlatAccessAgree(t *testing.T) {
	corpus := Default()
	s := corpus.Scenario("gc")

	if got, want := corpus.GetLog("gc_driver"), s.DriverLog; got != want {
		t.Error("gc_driver flat key disagrees with DriverLog")
	}
	if got, want := corpus.GetLog("gc_executor"), corpus.ExecutorLog(s.PrimaryExecutor(), "gc"); got != want {
		t.Error("gc_executor flat key disagrees with ExecutorLog(primary)")
	}
}

// The corpus is injected data, not package state: an arbitrary table must
// work through the same API.
func TestNew_InjectedCorpus(t *testing.T) {
	corpus := New(&Scenario{
		Name:        "custom",
		FailureType: "pure_gc",
		DriverLog:   "driver text",
		Executors:   map[int]string{7: "executor text"},
	})

	if got := corpus.DriverLog("custom"); got != "driver text" {
		t.Errorf("DriverLog: got %q", got)
	}
	if got := corpus.ExecutorLog(7, "custom"); got != "executor text" {
		t.Errorf("ExecutorLog: got %q", got)
	}
	if got := corpus.Scenario("custom").PrimaryExecutor(); got != 7 {
		t.Errorf("PrimaryExecutor: got %d want 7", got)
	}
	if got := corpus.GetLog("custom_executor"); got != "executor text" {
		t.Errorf("GetLog flat: got %q", got)
	}
}

func TestLoadScenario_UnknownName(t *testing.T) {
	_, err := LoadScenario("does-not-exist")
	if err == nil {
		t.Fatal("expected error for unknown scenario")
	}
	if !strings.Contains(err.Error(), "available") {
		t.Errorf("error should list available scenarios: %v", err)
	}
}
