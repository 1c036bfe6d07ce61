package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParsePlanID tests plan ID parsing
func TestParsePlanID(t *testing.T) {
	tests := []struct {
		input    string
		expected PlanID
		hasError bool
	}{
		{"plan-123", PlanID("plan-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParsePlanID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestFingerprintDeterminism tests that identical parts hash identically and
// that the part separator cannot be forged by adjacent content.
func TestFingerprintDeterminism(t *testing.T) {
	a := NewFingerprint([]string{"col", "1", "2"})
	b := NewFingerprint([]string{"col", "1", "2"})
	if !a.Equals(b) {
		t.Error("Expected identical parts to produce identical fingerprints")
	}

	c := NewFingerprint([]string{"col", "12"})
	d := NewFingerprint([]string{"col1", "2"})
	if c.Equals(d) {
		t.Error("Expected different part boundaries to produce different fingerprints")
	}
}
