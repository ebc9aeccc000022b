// ABOUTME: Tests for the host tool's melody parsing
// ABOUTME: Covers well-formed specs and malformed pair rejection
package main

import (
	"testing"
)

func TestParseMelody(t *testing.T) {
	frequencies, durations, err := parseMelody("440:200, 660:200,880:400")
	if err != nil {
		t.Fatalf("parseMelody failed: %v", err)
	}

	wantF := []int{440, 660, 880}
	wantD := []int{200, 200, 400}
	for i := range wantF {
		if frequencies[i] != wantF[i] || durations[i] != wantD[i] {
			t.Errorf("pair %d = %d:%d, want %d:%d", i, frequencies[i], durations[i], wantF[i], wantD[i])
		}
	}
}

func TestParseMelodyRejectsMalformed(t *testing.T) {
	for _, spec := range []string{"440", "440:abc", "abc:200", "440:200:50", ""} {
		if _, _, err := parseMelody(spec); err == nil {
			t.Errorf("spec %q should fail", spec)
		}
	}
}
