package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrProvider == "" || AttrOutcome == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
	if OutcomeOK == OutcomeFailed || OutcomeEmpty == OutcomeFailed {
		t.Fatalf("expected distinct team outcomes")
	}
}
